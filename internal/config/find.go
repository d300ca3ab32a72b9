package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Origins reported by Find.
const (
	OriginExplicit = "explicit"
	OriginUpward   = "cwd-up"
	OriginXDG      = "xdg"
	OriginHome     = "home"
)

var (
	projectNames = []string{".todomark.yaml", ".todomark.yml", ".todomark.toml", ".todomark.json"}
	xdgNames     = []string{"config.yaml", "config.yml", "config.toml", "config.json"}
)

type searchStep struct {
	dir    string
	names  []string
	origin string
}

// Find locates the config file. An explicit path wins; otherwise the
// directories from startDir up to the root are searched, then the XDG
// config dir, then the home directory. The second result names the origin.
func Find(startDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		path, err := checkExplicit(explicit)
		if err != nil {
			return "", "", err
		}
		return path, OriginExplicit, nil
	}

	steps, err := searchPlan(startDir, xdgHome, home)
	if err != nil {
		return "", "", err
	}
	for _, step := range steps {
		for _, name := range step.names {
			candidate := filepath.Join(step.dir, name)
			if isRegularFile(candidate) {
				return candidate, step.origin, nil
			}
		}
	}
	return "", "", nil
}

func checkExplicit(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("config path %q is a directory", abs)
	}
	return abs, nil
}

func searchPlan(startDir, xdgHome, home string) ([]searchStep, error) {
	start := strings.TrimSpace(startDir)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	var steps []searchStep
	for {
		steps = append(steps, searchStep{dir: dir, names: projectNames, origin: OriginUpward})
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := strings.TrimSpace(home)
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		steps = append(steps, searchStep{dir: filepath.Join(xdgRoot, "todomark"), names: xdgNames, origin: OriginXDG})
	}
	if homeDir != "" {
		steps = append(steps, searchStep{dir: homeDir, names: projectNames, origin: OriginHome})
	}
	return steps, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
