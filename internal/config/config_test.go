package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "restaurant"
password = "secret"
dbname = "reservations"

[auth]
jwt_secret = "test-secret"

[[auth.users]]
username = "admin"
password_hash = "$2a$10$abcdefghijklmnopqrstuv"
role = "Admin"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "reservation.created", cfg.RabbitMQ.Queue)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	require.Len(t, cfg.Auth.Users, 1)
	assert.Equal(t, "Admin", cfg.Auth.Users[0].Role)
	assert.Equal(t,
		"host=localhost port=5432 user=restaurant password=secret dbname=reservations sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "reservations"
password = "from-file"

[auth]
jwt_secret = "file-secret"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing jwt secret",
			content: `
[database]
host = "localhost"
dbname = "reservations"
`,
		},
		{
			name: "no credentials",
			content: `
[database]
host = "localhost"
dbname = "reservations"
[auth]
jwt_secret = "s"
[[auth.users]]
username = "admin"
role = "Admin"
`,
		},
		{
			name: "hash and plain password together",
			content: `
[database]
host = "localhost"
dbname = "reservations"
[auth]
jwt_secret = "s"
[[auth.users]]
username = "admin"
password_hash = "x"
password = "admin123"
role = "Admin"
`,
		},
		{
			name: "unknown role",
			content: `
[database]
host = "localhost"
dbname = "reservations"
[auth]
jwt_secret = "s"
[[auth.users]]
username = "chef"
password_hash = "x"
role = "Chef"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_HashesPlainPasswords(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "reservations"

[auth]
jwt_secret = "s"

[[auth.users]]
username = "staff"
password = "staff123"
role = "Staff"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Auth.Users, 1)
	u := cfg.Auth.Users[0]
	assert.Empty(t, u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("staff123")))
}

func TestLoad_ShippedConfigAllowsLogin(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.toml"))
	require.NoError(t, err)

	want := map[string]string{"admin": "admin123", "staff": "staff123"}
	require.Len(t, cfg.Auth.Users, len(want))
	for _, u := range cfg.Auth.Users {
		password, ok := want[u.Username]
		require.True(t, ok, "unexpected account %s", u.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)), u.Username)
	}
}
