package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

const appName = "rbfix"

var (
	// projectConfigNames are tried in order in every directory of the upward
	// search.
	projectConfigNames = []string{".rbfix.yml", ".rbfix.yaml", "rbfix.yml", "rbfix.yaml"}

	// globalConfigNames are tried in the system and user config directories.
	globalConfigNames = []string{"config.yml", "config.yaml"}

	vcsMarkers = []string{".git", ".hg", ".svn"}
)

// ConfigPaths lists the config files found for a run. Empty fields mean no
// file was found at that level.
type ConfigPaths struct {
	System   string // /etc/rbfix/config.yml
	User     string // $XDG_CONFIG_HOME/rbfix/config.yml
	Project  string // nearest .rbfix.yml at or above the working directory
	Explicit string // --config
}

// DiscoverPaths looks for system, user, and project config files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), globalConfigNames),
		User:    firstFile(userConfigDir(), globalConfigNames),
		Project: project,
	}, nil
}

// FindProjectConfig walks from startDir (default: the working directory)
// towards the root and returns the first project config it sees. The walk
// ends after a VCS root or the home directory has been checked.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if path := firstFile(dir, projectConfigNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || slices.ContainsFunc(vcsMarkers, func(m string) bool {
			return isDir(filepath.Join(dir, m))
		}) {
			return "", nil
		}
		dir = parent
	}
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appName)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
