// Package config holds the environment-variable-driven defaults for the lox
// CLI, so a deployment can fix the prompt, disable color, or redirect REPL
// history without touching flags.
package config

import "github.com/caarlos0/env/v6"

// CLI is populated from the process environment once at startup. Fields
// without a matching env var keep their default.
type CLI struct {
	NoColor     bool   `env:"LOX_NO_COLOR" envDefault:"false"`
	Prompt      string `env:"LOX_PROMPT" envDefault:"> "`
	HistoryFile string `env:"LOX_HISTORY_FILE" envDefault:""`
}

// Load reads CLI from the environment, falling back to the struct tag
// defaults on any parse failure rather than aborting startup.
func Load() *CLI {
	cfg := &CLI{}
	if err := env.Parse(cfg); err != nil {
		return &CLI{Prompt: "> "}
	}
	return cfg
}
