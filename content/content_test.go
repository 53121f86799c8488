package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagrs-dev/dagrs/content"
)

func TestGetWrongTypeIsAbsent(t *testing.T) {
	c := content.New(42)
	_, ok := content.Get[string](c)
	assert.False(t, ok)

	v, ok := content.Get[int](c)
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestEmptyContent(t *testing.T) {
	var c content.Content
	assert.True(t, c.Empty())
	_, ok := content.Get[int](c)
	assert.False(t, ok)
}

func TestTakeClears(t *testing.T) {
	c := content.New("hello")
	v, ok := content.Take[string](&c)
	require.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.True(t, c.Empty())
}

type cloneable struct{ n int }

func (c cloneable) Clone() any { return cloneable{n: c.n} }

func TestCloneUsesClonerWhenPresent(t *testing.T) {
	c := content.New(cloneable{n: 7})
	clone := c.Clone()
	v, ok := content.Get[cloneable](clone)
	require.True(t, ok)
	assert.Equal(t, 7, v.n)
}

func TestCloneFallsBackToShallowCopy(t *testing.T) {
	c := content.New(99)
	clone := c.Clone()
	v, ok := content.Get[int](clone)
	require.True(t, ok)
	assert.Equal(t, 99, v)
}
