package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBToleratesMissingRedis(t *testing.T) {
	// InitDB hands out a nil Redis client when the cache is unreachable at
	// startup; lifecycle methods must not assume it exists.
	db := &DB{}

	assert.NoError(t, db.Close())
	assert.NoError(t, db.HealthCheck(context.Background()))
	assert.Nil(t, db.GetRedisClient())
}
