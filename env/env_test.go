package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/env"
)

func TestSetAndGet(t *testing.T) {
	e := env.New()
	e.Set("base", content.New(2))

	v, ok := e.Get("base")
	require.True(t, ok)
	n, ok := content.Get[int](v)
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestGetMissingKey(t *testing.T) {
	e := env.New()
	_, ok := e.Get("missing")
	assert.False(t, ok)
}

func TestSetAfterFreezePanics(t *testing.T) {
	e := env.New()
	e.Freeze()
	assert.Panics(t, func() {
		e.Set("x", content.New(1))
	})
}

func TestFrozenEnvStillReadable(t *testing.T) {
	e := env.New()
	e.Set("k", content.New("v"))
	e.Freeze()

	v, ok := e.Get("k")
	require.True(t, ok)
	s, _ := content.Get[string](v)
	assert.Equal(t, "v", s)
}
