package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresBrokers(t *testing.T) {
	p, err := New(Config{}, nil)
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers("a:9092, b:9092,,"))
	assert.Nil(t, splitBrokers(" , "))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("localhost:9092")
	assert.Equal(t, "localhost:9092", cfg.Brokers)
	assert.Equal(t, "all", cfg.Acks)
	assert.Equal(t, 3, cfg.Retries)
}
