package cache

import (
	"testing"

	"career_advisor/internal/platform/config"

	"github.com/stretchr/testify/assert"
)

// Redis holds only derived data; an unreachable server must disable
// caching, not abort startup.
func TestConnectRedis_UnreachableLeavesCachingDisabled(t *testing.T) {
	config.AppConfig = &config.Config{
		// Reserved port, nothing listens here.
		RedisAddr: "127.0.0.1:1",
	}

	ConnectRedis()
	assert.Nil(t, RDB)

	// Shutdown path tolerates the disabled cache.
	CloseRedis()
}
