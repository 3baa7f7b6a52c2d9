// Package motivation serves a small rotating pool of motivational quotes.
package motivation

import "math/rand/v2"

var quotes = []string{
	"Discipline beats motivation.",
	"Small steps every day.",
	"Your body can do it. Convince your mind.",
	"Progress, not perfection.",
	"No pain, no gain.",
	"The only bad workout is the one that didn't happen.",
	"Push yourself, because no one else is going to do it for you.",
}

// Pick returns a random quote from the pool.
func Pick() string {
	return quotes[rand.IntN(len(quotes))]
}

// All returns the full quote pool in fixed order.
func All() []string {
	out := make([]string, len(quotes))
	copy(out, quotes)
	return out
}
