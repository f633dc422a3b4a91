package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectRejectsInvalidURL(t *testing.T) {
	_, err := Connect("not-a-redis-url")
	assert.ErrorContains(t, err, "invalid redis url")
}

func TestConnectFailsWhenUnreachable(t *testing.T) {
	_, err := Connect("redis://127.0.0.1:1/0")
	assert.ErrorContains(t, err, "redis ping failed")
}
