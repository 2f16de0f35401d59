// meta/meta.go
package meta

// ROWS and COLS define the default board shape.
const ROWS = 3
const COLS = 3

// EvaluateSize is the side of the largest board checked line by line;
// bigger boards are scanned with windows of this size.
const EvaluateSize = 4

// GAMES defines the default number of matches per run.
const GAMES = 1000

// SEED defines the default random policy seed. 0 picks a time-based seed.
const SEED = 0

// TRACE_DEPTH is the deepest search tree column rendered in tree traces.
const TRACE_DEPTH = 9
