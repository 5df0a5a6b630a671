package db

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestConnectRedisEmptyURL(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, client == nil)
}

func TestConnectRedisUnreachable(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "redis://127.0.0.1:1/0")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, client == nil)
}

func TestCloseRedisNil(t *testing.T) {
	CloseRedis(nil)
}
