package weaver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile_AllTen(t *testing.T) {
	p := DefaultProfile()
	for _, s := range Stats {
		assert.Equal(t, AttributeDefault, p.Get(s), s.String())
	}
}

func TestProfile_GetSet(t *testing.T) {
	p := Profile{Strength: 15, Dexterity: 12}
	assert.Equal(t, 15, p.Get(Strength))
	assert.Equal(t, 12, p.Get(Dexterity))

	for i, s := range Stats {
		p.Set(s, i)
	}
	for i, s := range Stats {
		assert.Equal(t, i, p.Get(s))
	}
	assert.Equal(t, 9, p.Luck)
}

func TestProfile_UnknownStat(t *testing.T) {
	p := DefaultProfile()
	p.Set(Stat(200), 99)
	assert.Equal(t, DefaultProfile(), p)
	assert.Zero(t, p.Get(Stat(200)))
}

func TestParseStat(t *testing.T) {
	for _, s := range Stats {
		got, err := ParseStat(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStat("  LUCK ")
	require.NoError(t, err)
	assert.Equal(t, Luck, got)

	_, err = ParseStat("agility")
	assert.ErrorIs(t, err, ErrUnknownStat)
}

func TestStates_Clamp(t *testing.T) {
	s := States{Damaged: 1.5, Enhanced: -0.5, Blessed: 0.25, Adapted: math.NaN(), Stressed: math.Inf(1)}
	s.Clamp()

	assert.Equal(t, 1.0, s.Damaged)
	assert.Equal(t, 0.0, s.Enhanced)
	assert.Equal(t, 0.25, s.Blessed)
	assert.Equal(t, 0.0, s.Adapted)
	assert.Equal(t, 1.0, s.Stressed)
}

func TestStates_ClampIdempotent(t *testing.T) {
	inputs := []States{
		{},
		{Damaged: 1.5, Enhanced: -0.5},
		{Corrupted: 0.3, Neglected: 2, Experienced: -9, Connected: 0.999, Prestigious: 1},
	}
	for _, in := range inputs {
		once := in.Clamped()
		twice := once.Clamped()
		assert.Equal(t, once, twice)
		for _, v := range once.Negative() {
			assert.True(t, v >= 0 && v <= 1)
		}
		for _, v := range once.Positive() {
			assert.True(t, v >= 0 && v <= 1)
		}
	}
}

func TestStates_DefaultZero(t *testing.T) {
	var s States
	assert.Equal(t, [4]float64{}, s.Negative())
	assert.Equal(t, [6]float64{}, s.Positive())
}
