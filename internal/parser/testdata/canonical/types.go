package canonical

import "time"

//destructure:derive Destructure,DestructureRef,Mutation
type Book struct {
	ID          string
	Name        string
	PublishedAt time.Time
	author      string `destructure:"skip"`
}

//destructure:derive Destructure
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Unmarked carries no derive marker and is only picked up by force-derive.
type Unmarked struct {
	X, Y int
}
