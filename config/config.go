// Package config reads scripter settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/akalin/scripter/textenc"
)

// Environment variable names.
const (
	EncodingEnv          = "SCRIPTER_ENCODING"
	SuffixEnv            = "SCRIPTER_SUFFIX"
	UniversalNewlinesEnv = "SCRIPTER_UNIVERSAL_NEWLINES"
	DebugEnv             = "SCRIPTER_DEBUG"
)

// SuffixDefault is the value used for Config.Suffix if SuffixEnv is
// unset.
const SuffixDefault = ".py"

// Config holds the settings of the scripter command.
type Config struct {
	Encoding          string
	Suffix            string
	UniversalNewlines bool
	Debug             bool
}

// Load reads envFile (if it exists) into the process environment
// without overriding variables that are already set, then builds a
// Config from the environment. A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to read variables.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		Encoding: textenc.DefaultEncoding,
		Suffix:   SuffixDefault,
	}
	if v, ok := lookup(EncodingEnv); ok && strings.TrimSpace(v) != "" {
		cfg.Encoding = strings.TrimSpace(v)
	}
	if _, err := textenc.Lookup(cfg.Encoding); err != nil {
		return Config{}, fmt.Errorf("%s: %w", EncodingEnv, err)
	}
	if v, ok := lookup(SuffixEnv); ok {
		cfg.Suffix = strings.TrimSpace(v)
	}

	var err error
	if cfg.UniversalNewlines, err = lookupBool(lookup, UniversalNewlinesEnv); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = lookupBool(lookup, DebugEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func lookupBool(lookup func(string) (string, bool), name string) (bool, error) {
	v, ok := lookup(name)
	if !ok || strings.TrimSpace(v) == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}
