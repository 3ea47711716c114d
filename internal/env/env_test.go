package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")

	assert.Equal(t, "hello", GetString("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetString("TEST_STRING_MISSING", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")

	assert.Equal(t, 42, GetInt("TEST_INT", 1))
	assert.Equal(t, 1, GetInt("TEST_INT_BAD", 1))
	assert.Equal(t, 1, GetInt("TEST_INT_MISSING", 1))
}

func TestGetBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")

	assert.True(t, GetBool("TEST_BOOL", false))
	assert.False(t, GetBool("TEST_BOOL_MISSING", false))
}

func TestGetFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.05")
	t.Setenv("TEST_FLOAT_BAD", "cheap")

	assert.InDelta(t, 0.05, GetFloat("TEST_FLOAT", 0.5), 1e-9)
	assert.InDelta(t, 0.5, GetFloat("TEST_FLOAT_BAD", 0.5), 1e-9)
	assert.InDelta(t, 0.5, GetFloat("TEST_FLOAT_MISSING", 0.5), 1e-9)
}
