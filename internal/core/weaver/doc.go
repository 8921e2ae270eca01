// Package weaver holds the arithmetic every thread interaction goes through:
// the ten-attribute Profile, the ten temporal States, and opposed-roll contests.
//
// Nothing here touches process-global randomness. Contests draw from a Dice
// supplied by the caller, so a seeded source reproduces every outcome.
package weaver
