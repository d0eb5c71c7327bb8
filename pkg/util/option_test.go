package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOption(t *testing.T) {
	some := Some(42)
	none := None[int]()

	assert.True(t, some.HasValue())
	assert.False(t, some.IsEmpty())
	assert.Equal(t, 42, some.Unwrap())
	//
	assert.False(t, none.HasValue())
	assert.True(t, none.IsEmpty())
	//
	value, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, value)
	//
	value, ok = none.Get()
	assert.False(t, ok)
	assert.Zero(t, value)
}

func TestOptionUnwrapPanics(t *testing.T) {
	assert.Panics(t, func() {
		None[string]().Unwrap()
	})
}

func TestOptionComparable(t *testing.T) {
	// Options over comparable types are comparable, so structs holding them
	// remain usable as map keys.
	assert.Equal(t, Some("x"), Some("x"))
	assert.NotEqual(t, Some("x"), Some("y"))
	assert.NotEqual(t, Some(""), None[string]())
}
