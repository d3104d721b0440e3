package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromTOML parses a configuration from TOML bytes. Keys that do not map to
// a Config field are rejected.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		// Rule settings are free-form; everything else must be known.
		for _, key := range undecoded {
			if len(key) > 0 && key[0] == "rules" {
				continue
			}
			return nil, fmt.Errorf("parse toml: unknown key %q", key.String())
		}
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]any)
	}

	return cfg, nil
}
