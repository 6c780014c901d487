package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(Options{Addr: mr.Addr(), DialTimeout: time.Second, PoolSize: 2})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewClientRefusesUnreachable(t *testing.T) {
	_, err := NewClient(Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	assert.Error(t, err)
}
