package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "go-commerce-api", cfg.AppName)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, "products", cfg.ESProductsIndex)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_NAME", "shop")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "shopdb")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg := Load()
	assert.Equal(t, "shop", cfg.AppName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Contains(t, cfg.PostgresDSN(), "db.internal")
	assert.Contains(t, cfg.PostgresDSN(), "/shopdb?")
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")
	t.Setenv("DB_MAX_CONNS", "lots")

	cfg := Load()
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
}

func TestCSVHelpers(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200,http://es2:9200")

	cfg := Load()
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}
