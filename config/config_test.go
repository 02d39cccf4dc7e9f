package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"PORT": "5000", "EMPTY": ""}

	require.Equal(t, "5000", GetString(c, "PORT", "8080"))
	require.Equal(t, "", GetString(c, "EMPTY", "fallback"), "a set-but-empty value wins over the default")
	require.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
	require.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"TIMEOUT": "300", "BAD": "many"}

	require.Equal(t, 300, GetInt(c, "TIMEOUT", 180))
	require.Equal(t, 180, GetInt(c, "BAD", 180))
	require.Equal(t, 180, GetInt(c, "MISSING", 180))
	require.Equal(t, 180, GetInt(nil, "TIMEOUT", 180))
}

func TestGetBool(t *testing.T) {
	c := map[string]string{"SSL": "true", "OFF": "0", "BAD": "yep"}

	require.True(t, GetBool(c, "SSL", false))
	require.False(t, GetBool(c, "OFF", true))
	require.True(t, GetBool(c, "BAD", true))
	require.False(t, GetBool(c, "MISSING", false))
}

func TestSplit(t *testing.T) {
	key, value := split("MONGODB_URI=mongodb://localhost:27017/app?x=1")
	require.Equal(t, "MONGODB_URI", key)
	require.Equal(t, "mongodb://localhost:27017/app?x=1", value, "only the first '=' splits")

	key, value = split("NOVALUE")
	require.Equal(t, "NOVALUE", key)
	require.Equal(t, "", value)
}
