// Package patterns turns key events into domain commands.
//
// Translate is a pure function of (Mode, Key). Mode.Apply folds a command
// into the input state machine; movement and quit are applied by the loom.
package patterns
