package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// envDefault applies only to unset variables, so unset them (t.Setenv
	// first, so the original values are restored after the test).
	for _, key := range []string{"LOX_NO_COLOR", "LOX_PROMPT", "LOX_HISTORY_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	assert.False(t, cfg.NoColor)
	assert.Equal(t, "> ", cfg.Prompt)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("LOX_NO_COLOR", "true")
	t.Setenv("LOX_PROMPT", "lox> ")

	cfg := Load()
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "lox> ", cfg.Prompt)
}
