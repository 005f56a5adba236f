package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// layers lists the files that make up a config, later layers override
// earlier ones: deckbox.json5 then deckbox.local.json5.
func layers(name string) []string {
	ext := filepath.Ext(name)
	return []string{name, strings.TrimSuffix(name, ext) + ".local" + ext}
}

func decodeLayer[T any](path string) (out T, found bool, err error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(contents) == 0) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if err := json5.Unmarshal(contents, &out); err != nil {
		return out, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, true, nil
}

func mergeLayers[T any](name string, base T) (T, bool, error) {
	foundAny := false
	for i, path := range layers(name) {
		layer, found, err := decodeLayer[T](path)
		if err != nil {
			return base, false, err
		}
		if !found {
			continue
		}
		if err := mergo.Merge(&base, layer, mergo.WithOverride); err != nil {
			return base, false, fmt.Errorf("merge %s: %w", path, err)
		}
		if i > 0 {
			slog.Info("merging config with local overrides", "local", path)
		}
		foundAny = true
	}
	return base, foundAny, nil
}

// ReadConfig reads `name` (json5) and merges `<name>.local.<ext>` over it.
// os.ErrNotExist is returned only when neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var zero T
	out, found, err := mergeLayers(name, zero)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, os.ErrNotExist
	}
	return out, nil
}

// ReadWithDefaults is ReadConfig layered over defaults, missing files are not
// an error. Zero values in a file never clear a default.
func ReadWithDefaults[T any](name string, defaults T) (T, error) {
	out, found, err := mergeLayers(name, defaults)
	if err != nil {
		return defaults, err
	}
	if !found {
		slog.Info("no config file found, using defaults", "path", name)
	}
	return out, nil
}

// FindRecursively walks up from the working directory and returns the first
// path where either layer of `name` exists.
func FindRecursively(name string) (string, error) {
	current, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(current, name)
		for _, path := range layers(candidate) {
			if _, err := os.Stat(path); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", os.ErrNotExist
		}
		current = parent
	}
}
