package mongo

import (
	"testing"
	"time"

	"portfolio-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptionsDisableRetries(t *testing.T) {
	opts := clientOptions(config.MongoDBConfig{
		URI:      "mongodb://localhost:27017",
		PoolSize: 20,
		Timeout:  3 * time.Second,
	})

	require.NotNil(t, opts.RetryReads)
	require.NotNil(t, opts.RetryWrites)
	assert.False(t, *opts.RetryReads)
	assert.False(t, *opts.RetryWrites)

	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(20), *opts.MaxPoolSize)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 3*time.Second, *opts.ServerSelectionTimeout)
}
