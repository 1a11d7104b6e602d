package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tailscale/hujson"

	"github.com/KrishRVH/word-frequency-counter/pkg/freqcount"
)

// cliOptions holds every knob the CLI exposes, gathered from flags and
// optionally overridden by a config file before a counter is opened.
type cliOptions struct {
	maxTokenLen      int
	byteBudget       uint64
	staticRegionSize uint64
	hashSeed         uint32
	format           string
	outPath          string
}

// configFile is the shape accepted by --config. Fields mirror cliOptions
// and are all optional; a present field overrides the corresponding flag
// only when that flag itself was left at its default.
type configFile struct {
	MaxTokenLen      *int    `json:"max_token_len"`
	ByteBudget       *uint64 `json:"byte_budget"`
	StaticRegionSize *uint64 `json:"static_region_size"`
	HashSeed         *uint32 `json:"hash_seed"`
	Format           *string `json:"format"`
}

// loadConfigFile reads a JSON-with-comments tuning file, standardizing it
// to plain JSON before unmarshaling - the same two-step hujson.Standardize
// then json.Unmarshal sequence used elsewhere for operator-editable config.
func loadConfigFile(path string) (configFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		return configFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return configFile{}, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	var cfg configFile

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return configFile{}, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return cfg, nil
}

// mergeConfigFile layers fileOpts over opts, preferring values already set
// by command-line flags so --config is strictly a set of defaults.
func mergeConfigFile(opts cliOptions, fileOpts configFile) cliOptions {
	if opts.maxTokenLen == 0 && fileOpts.MaxTokenLen != nil {
		opts.maxTokenLen = *fileOpts.MaxTokenLen
	}

	if opts.byteBudget == 0 && fileOpts.ByteBudget != nil {
		opts.byteBudget = *fileOpts.ByteBudget
	}

	if opts.staticRegionSize == 0 && fileOpts.StaticRegionSize != nil {
		opts.staticRegionSize = *fileOpts.StaticRegionSize
	}

	if opts.hashSeed == 0 && fileOpts.HashSeed != nil {
		opts.hashSeed = *fileOpts.HashSeed
	}

	if opts.format == "text" && fileOpts.Format != nil {
		opts.format = *fileOpts.Format
	}

	return opts
}

// resolveByteBudget returns the explicit flag value when the caller set
// --byte-budget, else falls back to a parseable BYTE_BUDGET environment
// variable, else flagValue unchanged (0, meaning unlimited, unless a
// --config file supplied a budget).
func resolveByteBudget(flagValue uint64, flagWasSet bool) uint64 {
	if flagWasSet {
		return flagValue
	}

	if env := os.Getenv("BYTE_BUDGET"); env != "" {
		if parsed, err := strconv.ParseUint(env, 10, 64); err == nil {
			return parsed
		}
	}

	return flagValue
}

// openCounter constructs a freqcount.Counter from the resolved options,
// allocating a static region when requested.
func (o cliOptions) openCounter() (*freqcount.Counter, error) {
	cfg := freqcount.Config{
		ByteBudget: o.byteBudget,
		HashSeed:   o.hashSeed,
	}

	if o.staticRegionSize > 0 {
		cfg.StaticRegion = make([]byte, o.staticRegionSize)
	}

	return freqcount.OpenWithConfig(o.maxTokenLen, cfg)
}
