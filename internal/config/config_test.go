package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:           "development",
		DBType:        "file",
		FileProfiles:  "data/profiles.json",
		FileResources: "data/resources.json",
		AuthMode:      "local",
		AuthToken:     "MOCK-TOKEN",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cases := map[string]func(c *Config){
		"unknown backend":      func(c *Config) { c.DBType = "mongo" },
		"postgres without dsn": func(c *Config) { c.DBType = "postgres" },
		"bad env":              func(c *Config) { c.Env = "qa" },
		"local in production":  func(c *Config) { c.Env = "production" },
		"jwt without secret":   func(c *Config) { c.AuthMode = "jwt" },
		"remote without url":   func(c *Config) { c.AuthMode = "remote" },
		"unknown auth":         func(c *Config) { c.AuthMode = "oauth" },
	}
	for name, mutate := range cases {
		c := validConfig()
		mutate(c)
		assert.Error(t, c.Validate(), name)
	}

	c := validConfig()
	c.Env = "production"
	c.AuthMode = "jwt"
	c.JWTSecret = "s3cret"
	assert.NoError(t, c.Validate())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/shammah")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "staging", c.Env)
	assert.Equal(t, "postgres", c.DBType)
	assert.Equal(t, ":8088", c.Addr)
	assert.Equal(t, "3s", c.RequestTimeout.String())

	t.Setenv("AUTH_MODE", "jwt")
	_, err = FromEnv()
	assert.Error(t, err)
}
