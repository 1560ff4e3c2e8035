package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/tanema/typify/src/lerrors"
)

// Environment variables that override the configuration file.
const (
	EnvLinterURL = "TYPIFY_LINTER_URL"
	EnvUserAgent = "TYPIFY_USER_AGENT"
	EnvLinter    = "TYPIFY_LINTER"
)

type (
	// Config is the project configuration read from .typify.toml.
	Config struct {
		// Path is the file the configuration was read from, empty for defaults.
		Path   string       `toml:"-"`
		Linter LinterConfig `toml:"linter"`
		Typify TypifyConfig `toml:"typify"`
		Docs   DocsConfig   `toml:"docs"`
	}
	// LinterConfig configures the remote linter.
	LinterConfig struct {
		Enabled   bool   `toml:"enabled"`
		URL       string `toml:"url"`
		UserAgent string `toml:"user_agent"`
		Timeout   string `toml:"timeout"`
	}
	// TypifyConfig tunes the typify pass and how files are written.
	TypifyConfig struct {
		Disallowed   []string `toml:"disallowed"`
		Backup       bool     `toml:"backup"`
		BackupFormat string   `toml:"backup_format"`
		MemoSize     int      `toml:"memo_size"`
	}
	// DocsConfig lists extra documentation files merged over the builtins.
	DocsConfig struct {
		Files []string `toml:"files"`
	}
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Linter: LinterConfig{Enabled: true, Timeout: "20s"},
		Typify: TypifyConfig{
			Disallowed:   []string{"plot", "hline", "void"},
			BackupFormat: "%Y%m%d%H%M%S",
		},
	}
}

// Load reads an optional .env file, then the nearest configuration file
// walking up from dir, and finally applies environment overrides.
func Load(dir string) (*Config, error) {
	_ = godotenv.Load()
	path, ok, err := Find(dir)
	if err != nil {
		return nil, &lerrors.Error{Kind: lerrors.ConfigErr, Filename: dir, Err: err}
	}
	cfg := Default()
	if ok {
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, &lerrors.Error{Kind: lerrors.ConfigErr, Filename: cfg.Path, Err: err}
	}
	return cfg, nil
}

// Find looks for the configuration file in dir and each of its parents.
func Find(dir string) (string, bool, error) {
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, CONFIGFILE)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadFile decodes a configuration file over the defaults. Relative docs
// files are resolved against the directory of the configuration file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, &lerrors.Error{Kind: lerrors.ConfigErr, Filename: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &lerrors.Error{Kind: lerrors.ConfigErr, Filename: path, Err: fmt.Errorf("unknown key %q", undecoded[0].String())}
	}
	cfg.Path = path
	for i, file := range cfg.Docs.Files {
		if !filepath.IsAbs(file) {
			cfg.Docs.Files[i] = filepath.Join(filepath.Dir(path), file)
		}
	}
	if _, err := cfg.LinterTimeout(); err != nil {
		return nil, &lerrors.Error{Kind: lerrors.ConfigErr, Filename: path, Err: err}
	}
	return cfg, nil
}

// LinterTimeout parses the configured linter timeout. An empty timeout means
// the linter default.
func (cfg *Config) LinterTimeout() (time.Duration, error) {
	if strings.TrimSpace(cfg.Linter.Timeout) == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(cfg.Linter.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid [linter].timeout: %w", err)
	}
	return timeout, nil
}

func (cfg *Config) applyEnv() error {
	if url := strings.TrimSpace(os.Getenv(EnvLinterURL)); url != "" {
		cfg.Linter.URL = url
	}
	if agent := strings.TrimSpace(os.Getenv(EnvUserAgent)); agent != "" {
		cfg.Linter.UserAgent = agent
	}
	if raw := strings.TrimSpace(os.Getenv(EnvLinter)); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLinter, err)
		}
		cfg.Linter.Enabled = enabled
	}
	return nil
}
