// Package canonical holds scanner fixtures for the end-to-end tests.
package canonical

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Book is the full-surface fixture: every derivation, one skipped field,
// one field typed from a version-suffixed import.
//
//destructure:derive Destructure,DestructureRef,Mutation
type Book struct {
	id          string
	name        string
	publishedAt time.Time
	meta        *yaml.Node
	author      string `destructure:"skip"`
}

// Pair checks generic parameter propagation.
//
//destructure:derive Destructure
type Pair[K comparable, V any] struct {
	key   K
	value V
}

// Unmarked has no derive marker; it is only picked up under force-derive.
type Unmarked struct {
	x int
	y int
}
