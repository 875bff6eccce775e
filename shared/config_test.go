package shared

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseJSONC(t *testing.T) {
	src := []byte(`{
		// comments are fine
		"log_level": "Info",
		"service_port": 8080,
		"db_file": "ripple.db", // trailing commas too
	}`)
	var cfg Config
	err := parseJSONC(src, &cfg)
	assert.Nil(t, err)
	cfg.applyDefaults()
	assert.Equal(t, "Info", cfg.LogLevel)
	assert.Equal(t, uint(8080), cfg.ServicePort)
	assert.Equal(t, DriverSqlite, cfg.DbDriver)
	assert.Equal(t, "UTC", cfg.DefaultTimeZone)
	assert.Equal(t, 10, cfg.WriteBurst)
}
