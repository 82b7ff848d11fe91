package skipgram

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "config.json"
	envPrefix         = "SKIPGRAM_"
)

// LoadConfig loads configuration from path or the default config.json. A missing
// file yields defaults. .yaml and .yml files are decoded as YAML, anything else as JSON.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk in the format implied by the extension.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ApplyEnv overrides fields from SKIPGRAM_* variables using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(envPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = n
		return nil
	}
	str("DATA_PATH", &c.DataPath)
	str("VOCAB_PATH", &c.VocabPath)
	str("TARGET_DIR", &c.TargetDir)
	str("VOCAB_SHEET", &c.Reader.VocabSheet)
	if err := num("VOCAB_SIZE", &c.VocabSize); err != nil {
		return err
	}
	if err := num("BATCH_SIZE", &c.BatchSize); err != nil {
		return err
	}
	if v, ok := lookup(envPrefix + "UNKNOWN_POLICY"); ok && strings.TrimSpace(v) != "" {
		p, err := ParseUnknownCodePolicy(v)
		if err != nil {
			return fmt.Errorf("%sUNKNOWN_POLICY: %w", envPrefix, err)
		}
		c.UnknownPolicy = p
	}
	return nil
}

// Validate reports settings that cannot produce a run.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, c.BatchSize)
	}
	if c.VocabSize < 0 {
		return fmt.Errorf("vocab size must be >= 0, got %d", c.VocabSize)
	}
	if _, err := ParseUnknownCodePolicy(string(c.UnknownPolicy)); err != nil {
		return err
	}
	if strings.TrimSpace(c.TargetDir) == "" {
		return errors.New("target dir is required")
	}
	return nil
}
