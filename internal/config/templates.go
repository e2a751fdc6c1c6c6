package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# CloudEx Trader configuration

[api]
# Base URL of the CloudEx exchange API.
base_url = "https://ift401-cloudex.onrender.com"
timeout_seconds = 15

[trading]
# Fee charged per order, as a percentage of shares x price.
fee_percent = 0.5
# Keystroke debounce for symbol suggestions, in milliseconds.
suggest_debounce_ms = 300
# How long a success banner stays on screen before auto-clearing.
banner_ttl_ms = 1400

[ui]
color_enabled = true
date_format = "2006-01-02"

[logging]
level = "info"
console = true
file = true
`

// writeTemplate creates a commented config.toml so a first run leaves the
// user something to edit. Existing files are never overwritten.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0600)
}
