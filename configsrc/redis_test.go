package configsrc_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagrs-dev/dagrs/configsrc"
)

func TestRedisLoad(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	require.NoError(t, mr.Set("graphs:main", "dagrs: {}"))

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	src := configsrc.NewRedisWithClient(client, "graphs:main")
	b, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dagrs: {}", string(b))
}

func TestRedisLoadMissing(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	src := configsrc.NewRedisWithClient(client, "graphs:absent")
	_, err = src.Load(context.Background())
	assert.ErrorIs(t, err, configsrc.ErrNotFound)
}
