package configloader

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdstyle/pkg/config"
)

// EnvPrefix is the prefix for all mdstyle environment variables.
const EnvPrefix = "MDSTYLE_"

// envSetter applies one environment value to a config.
type envSetter func(cfg *config.Config, value string) error

// envSetters maps variable names (without prefix) to config fields. List
// values are comma-separated.
var envSetters = map[string]envSetter{
	"TAB_SIZE":   func(cfg *config.Config, v string) error { return setInt(&cfg.TabSize, v) },
	"WRAP_WIDTH": func(cfg *config.Config, v string) error { return setInt(&cfg.WrapWidth, v) },
	"JOBS":       func(cfg *config.Config, v string) error { return setInt(&cfg.Jobs, v) },
	"DISABLED":   func(cfg *config.Config, v string) error { cfg.Disabled = splitList(v); return nil },
	"IGNORE":     func(cfg *config.Config, v string) error { cfg.Ignore = splitList(v); return nil },
	"FLAVOR":     func(cfg *config.Config, v string) error { cfg.Flavor = strings.ToLower(v); return nil },
	"FORMAT": func(cfg *config.Config, v string) error {
		format, err := config.ParseOutputFormat(v)
		cfg.Format = format
		return err
	},
	"RULE_FORMAT": func(cfg *config.Config, v string) error {
		format, err := config.ParseRuleFormat(v)
		cfg.RuleFormat = format
		return err
	},
	"EXTERNAL_EXECUTABLE": func(cfg *config.Config, v string) error { cfg.External.Executable = v; return nil },
	"EXTERNAL_TIMEOUT": func(cfg *config.Config, v string) error {
		timeout, err := time.ParseDuration(v)
		cfg.External.Timeout = timeout
		return err
	},
}

// LoadFromEnv applies MDSTYLE_* overrides to cfg. The first malformed value
// is returned as a *ValidationError naming the variable.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.LookupEnv)
}

func loadFromEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedKeys(envSetters) {
		name := EnvPrefix + suffix
		value, ok := lookup(name)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := envSetters[suffix](cfg, strings.TrimSpace(value)); err != nil {
			return &ValidationError{Field: name, Value: value, Message: err.Error()}
		}
	}
	return nil
}

func setInt(dst *int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
