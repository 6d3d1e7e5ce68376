package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Settings struct {
	Path    string            `toml:"-"`
	Repo    string            `toml:"repo"`
	Repos   map[string]string `toml:"repos"`
	Catalog CatalogSettings   `toml:"catalog"`
}

type CatalogSettings struct {
	Output string `toml:"output"`
	Format string `toml:"format"`
}

var formats = map[string]bool{"": true, "csv": true, "yaml": true, "yml": true}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog", "config.toml"), nil
}

// Load reads settings from path. An empty path means the default location,
// where a missing file is not an error.
func Load(path string) (Settings, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Settings{}, nil
		}
		path = defaultPath
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Settings{Path: path}, nil
		}
		return Settings{}, err
	}
	settings, err := Parse(contents)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	settings.Path = path
	return settings, nil
}

func Parse(contents []byte) (Settings, error) {
	var settings Settings
	if err := toml.Unmarshal(contents, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) Validate() error {
	if !formats[strings.ToLower(strings.TrimSpace(s.Catalog.Format))] {
		return fmt.Errorf("catalog.format %q must be csv or yaml", s.Catalog.Format)
	}
	for name, path := range s.Repos {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("repos.%s has no path", name)
		}
	}
	return nil
}

// RepoPath returns the checkout path for the named repo, falling back to
// the configured default. It returns "" when no repo is selected.
func (s Settings) RepoPath(override string) (string, error) {
	name := strings.TrimSpace(override)
	if name == "" {
		name = strings.TrimSpace(s.Repo)
	}
	if name == "" {
		return "", nil
	}
	path, ok := s.Repos[name]
	if !ok {
		return "", fmt.Errorf("unknown repo %q", name)
	}
	return expandHome(path)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("cannot expand ~ without a home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
