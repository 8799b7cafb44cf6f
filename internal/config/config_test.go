package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writeConfigs(t,
		"address: ':8080'\njwt_ttl_seconds: 600\nbcrypt_cost: 10\nlog_level: debug\nallowed_origins:\n  - 'http://localhost:8081'\n",
		"jwt_key: 'secret'\npg:\n  host: localhost\n  port: 5432\n  user: u\n  password: p\n  dbname: palaver\n",
	)

	cfg := MustLoad(dir)

	assert.Equal(t, ":8080", cfg.Public.Address)
	assert.Equal(t, 10*time.Minute, cfg.JwtTTL())
	assert.Equal(t, "secret", cfg.JwtKey())
	assert.Equal(t, "palaver", cfg.Private.Pg.Dbname)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.Public.AllowedOrigins)
}

func TestMustLoadMissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for missing config folder, got none")
		}
	}()

	_ = MustLoad(t.TempDir())
}

func TestJwtTTLDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 30*time.Minute, cfg.JwtTTL())
}
