package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFailsWhenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := New(ctx,
		WithAddress("127.0.0.1:1"),
		WithDialTimeout(100*time.Millisecond),
	)

	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestKeyPrefix(t *testing.T) {
	c := &Cache{prefix: "staging:"}
	assert.Equal(t, "staging:scoring:result:abc", c.key("scoring:result:abc"))
	assert.Equal(t, "x", (&Cache{}).key("x"))
}
