// Package config handles Filedger configuration: a flat key=value file
// with defaults, validation, and round-trip load/save.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config holds all Filedger settings.
type Config struct {
	// DataDir is the root directory for the registry database, blob store,
	// and key files.
	DataDir string

	// Network selects the address format for owner identities:
	// "mainnet", "testnet", or "regtest".
	Network string

	// GatewayURL is the public gateway base URL used to resolve content
	// pointers that are not available locally.
	GatewayURL string

	// DNSUpstream is the recursive resolver (host:port) used for
	// DNSSEC-validated DNSLink lookups.
	DNSUpstream string

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string

	// LogFile is the log output path; empty means stderr.
	LogFile string
}

// DefaultConfig returns the default configuration.
// DataDir defaults to ~/.filedger.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:     filepath.Join(home, ".filedger"),
		Network:     "mainnet",
		GatewayURL:  "https://ipfs.io",
		DNSUpstream: "8.8.8.8:53",
		LogLevel:    "info",
		LogFile:     "",
	}
}

// ConfigPath returns the configuration file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads a configuration file in key=value format.
// Blank lines and lines starting with '#' are ignored. Unknown keys are
// skipped for forward compatibility; missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "gateway":
			cfg.GatewayURL = value
		case "dns_upstream":
			cfg.DNSUpstream = value
		case "loglevel":
			cfg.LogLevel = value
		case "logfile":
			cfg.LogFile = value
		default:
			// Unknown keys are ignored so older binaries can read newer files.
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration in key=value format.
// The parent directory is created if it does not exist.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	entries := map[string]string{
		"datadir":      cfg.DataDir,
		"network":      cfg.Network,
		"gateway":      cfg.GatewayURL,
		"dns_upstream": cfg.DNSUpstream,
		"loglevel":     cfg.LogLevel,
		"logfile":      cfg.LogFile,
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("# Filedger configuration\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, entries[k])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
