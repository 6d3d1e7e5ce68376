package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	manifestFile   = "manifest.json"
	configTemplate = "conf.yaml.example"
	e2eMarker      = "pytest.mark.e2e"
	testPattern    = "**/test_*.py"
)

// Layout maps integration names to files inside an integrations checkout.
type Layout struct {
	Root string
}

func New(root string) Layout {
	return Layout{Root: root}
}

func (l Layout) Dir(name string) string {
	return filepath.Join(l.Root, name)
}

func (l Layout) PackageDir(name string) string {
	return filepath.Join(l.Root, name, "datadog_checks", name)
}

func (l Layout) DataDir(name string) string {
	return filepath.Join(l.PackageDir(name), "data")
}

func (l Layout) ConfigFile(name string) string {
	return filepath.Join(l.DataDir(name), configTemplate)
}

func (l Layout) CheckFile(name string) string {
	return filepath.Join(l.PackageDir(name), name+".py")
}

func (l Layout) AssetsDir(name string) string {
	return filepath.Join(l.Root, name, "assets")
}

func (l Layout) TestDir(name string) string {
	return filepath.Join(l.Root, name, "tests")
}

// ValidIntegrations lists every top-level directory that ships a manifest,
// sorted by name.
func (l Layout) ValidIntegrations() ([]string, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		// Stat follows symlinked checkouts, which DirEntry.IsDir does not.
		dir, err := os.Stat(filepath.Join(l.Root, entry.Name()))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if !dir.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(l.Root, entry.Name(), manifestFile))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// HasE2E reports whether any test module under the integration's tests
// directory is marked for end-to-end runs.
func (l Layout) HasE2E(name string) (bool, error) {
	testDir := l.TestDir(name)
	info, err := os.Stat(testDir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}

	matches, err := doublestar.Glob(os.DirFS(testDir), testPattern)
	if err != nil {
		return false, fmt.Errorf("glob %s: %w", testPattern, err)
	}
	sort.Strings(matches)
	for _, match := range matches {
		full := filepath.Join(testDir, filepath.FromSlash(match))
		fi, err := os.Stat(full)
		if err != nil {
			return false, err
		}
		if fi.IsDir() {
			continue
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return false, err
		}
		if strings.Contains(string(data), e2eMarker) {
			return true, nil
		}
	}
	return false, nil
}

// FindRoot walks up from start until it reaches a directory holding at
// least one integration. It returns start when none is found.
func FindRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for {
		if isIntegrationsRoot(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func isIntegrationsRoot(dir string) bool {
	matches, err := doublestar.Glob(os.DirFS(dir), "*/"+manifestFile)
	if err != nil {
		return false
	}
	return len(matches) > 0
}
