package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Dr. Anna Weber", CleanString("  Dr. Anna Weber\t"))
	assert.Equal(t, "anna@example.com", CleanString(" Anna@Example.COM ", true))
	assert.Empty(t, CleanString("   "))
}

func TestNewConfigDefaults(t *testing.T) {
	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "DEV", conf.Env)
	assert.True(t, conf.Debug)
	assert.Equal(t, ":8000", conf.Server.Addr)
	assert.Equal(t, "https://my.living-apps.de", conf.LivingApps.BaseURL)
	assert.Equal(t, 30*time.Second, conf.LivingApps.Timeout)
	assert.True(t, conf.LivingApps.EnableRestProxy)
	assert.NotEmpty(t, conf.LivingApps.CoursesAppID)
}

func TestNewConfigEnvOverride(t *testing.T) {
	t.Setenv("DEV_SERVERADDR", ":9999")
	t.Setenv("DEV_LIVINGAPPSTOKEN", "secret-token")
	t.Setenv("DEV_LIVINGAPPSBASEURL", "https://my.living-apps.de/")

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", conf.Server.Addr)
	assert.Equal(t, "secret-token", conf.LivingApps.Token)
	// trailing slash is normalized away
	assert.Equal(t, "https://my.living-apps.de", conf.LivingApps.BaseURL)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(nil, FieldError{Field: "name", Error: "this field is required"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, vErr.Error())
	assert.Len(t, vErr.Fields, 1)
}
