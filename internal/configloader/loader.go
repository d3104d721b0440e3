// Package configloader discovers, layers, validates and compiles mdstyle
// configuration.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdstyle/internal/logging"
	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// configFilePermissions is the file mode for written configuration files.
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Registry resolves rule keys. Nil means lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Plan is Config compiled against the registry.
	Plan *lint.Plan

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources and
// compiles it into a plan. Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDSTYLE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdstyle.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdstyle/config.yaml)
//  6. Defaults
//
// Field errors are returned as *ValidationError, rule errors as
// *lint.ConfigError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		path string
		skip bool
	}{
		{paths.User, opts.IgnoreUserConfig},
		{paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{opts.ExplicitPath, false},
	}
	for _, layer := range layers {
		if layer.path == "" || layer.skip {
			continue
		}

		layerCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, err
		}
		normalizeRuleKeys(layerCfg, registry)
		cfg = merge(cfg, layerCfg)

		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfigFile, layer.path)
	}

	if paths.Project == "" && paths.Markdownlint != "" && opts.ExplicitPath == "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s but no %s; run 'mdstyle migrate' to import it", filepath.Base(paths.Markdownlint), ProjectConfigFiles[0]))
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
	}

	if opts.CLIConfig != nil {
		cli := opts.CLIConfig.Clone()
		normalizeRuleKeys(cli, registry)
		cfg = merge(cfg, cli)
	}

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	plan, err := lint.Compile(registry, cfg)
	if err != nil {
		return nil, err
	}

	result.Config = cfg
	result.Plan = plan
	return result, nil
}

// LoadFile reads one config file. Files ending in .toml are parsed as TOML,
// everything else as YAML.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg *config.Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = config.FromTOML(content)
	} else {
		cfg, err = config.FromYAML(content)
	}
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return cfg, nil
}

// ErrConfigExists is returned by WriteFile when path exists and overwrite
// is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteFile writes content to path, refusing to replace an existing file
// unless overwrite is set.
func WriteFile(path string, content []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, configFilePermissions)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
