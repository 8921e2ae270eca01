// Package tapestry owns every thread in a session, allocates their ids and
// answers identity and spatial lookups.
//
// A Tapestry is not safe for concurrent use. It is owned by the single
// dispatch path; other goroutines hand it work through loom.Post.
package tapestry

import (
	"iter"

	"github.com/omnivirtus/vitalis/internal/core/models"
)

// Tapestry is the entity store.
type Tapestry struct {
	threads map[models.ThreadID]*models.Thread
	// order holds ids by first insertion; it fixes iteration and FindAt tie-breaks.
	order  []models.ThreadID
	nextID models.ThreadID
}

func New() *Tapestry {
	return &Tapestry{
		threads: make(map[models.ThreadID]*models.Thread),
		nextID:  1,
	}
}

// NextID returns the next unused id and advances the counter by one.
func (t *Tapestry) NextID() models.ThreadID {
	id := t.nextID
	t.nextID++
	return id
}

// Add stores thread under its own id and returns that id. An existing thread
// with the same id is replaced but keeps its original iteration slot.
func (t *Tapestry) Add(thread models.Thread) models.ThreadID {
	stored := thread.Clone()
	if _, exists := t.threads[stored.ID]; !exists {
		t.order = append(t.order, stored.ID)
	}
	t.threads[stored.ID] = &stored
	return stored.ID
}

// Spawn allocates an id, builds a thread around it and stores it.
func (t *Tapestry) Spawn(kind models.Kind, position *models.Position, configure ...func(*models.Thread)) models.ThreadID {
	thread := models.NewThread(t.NextID(), kind, position)
	for _, fn := range configure {
		fn(&thread)
	}
	return t.Add(thread)
}

// Get returns a copy of the thread with the given id.
func (t *Tapestry) Get(id models.ThreadID) (models.Thread, bool) {
	thread, ok := t.threads[id]
	if !ok {
		return models.Thread{}, false
	}
	return thread.Clone(), true
}

// Mutate runs fn against the stored thread in place. It reports false, without
// calling fn, when the id is unknown. fn must not change the thread's ID.
func (t *Tapestry) Mutate(id models.ThreadID, fn func(*models.Thread)) bool {
	thread, ok := t.threads[id]
	if !ok {
		return false
	}
	fn(thread)
	return true
}

// FindAt returns the first thread, in insertion order, positioned at p.
//
// This is a linear scan over every thread. If the world grows past a few
// thousand threads it should be backed by a position index with the same
// first-inserted-wins rule.
func (t *Tapestry) FindAt(p models.Position) (models.Thread, bool) {
	for _, id := range t.order {
		if thread := t.threads[id]; thread.At(p) {
			return thread.Clone(), true
		}
	}
	return models.Thread{}, false
}

// All yields copies of every thread in insertion order.
func (t *Tapestry) All() iter.Seq[models.Thread] {
	return func(yield func(models.Thread) bool) {
		for _, id := range t.order {
			if !yield(t.threads[id].Clone()) {
				return
			}
		}
	}
}

// Len is the number of stored threads.
func (t *Tapestry) Len() int {
	return len(t.threads)
}
