package config

import (
	"os"
	"path/filepath"
)

// Sources records where the effective settings came from.
type Sources struct {
	File       string
	FileOrigin string
	Dotenv     string
}

// Request gathers the inputs of LoadSettings. Flags holds command-line
// values and has the highest precedence.
type Request struct {
	StartDir string
	Explicit string
	XDGHome  string
	Home     string
	Getenv   func(string) string
	Flags    Config
}

// LoadSettings layers defaults, the config file, the environment (with an
// optional .env in StartDir) and flags, then validates the result.
func LoadSettings(req Request) (Settings, Sources, error) {
	var src Sources
	getenv := req.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	startDir := req.StartDir
	if startDir == "" {
		startDir = "."
	}
	dotenv := filepath.Join(startDir, ".env")
	layered, err := WithDotenv(dotenv, getenv)
	if err != nil {
		return Settings{}, src, err
	}
	if _, statErr := os.Stat(dotenv); statErr == nil {
		src.Dotenv = dotenv
	}

	explicit := req.Explicit
	if explicit == "" {
		explicit = layered(EnvPrefix + "CONFIG")
	}
	path, origin, err := Find(startDir, explicit, req.XDGHome, req.Home)
	if err != nil {
		return Settings{}, src, err
	}
	src.File, src.FileOrigin = path, origin

	fileCfg, err := Load(path)
	if err != nil {
		return Settings{}, src, err
	}
	envCfg, err := FromEnv(layered)
	if err != nil {
		return Settings{}, src, err
	}
	merged := Merge(Defaults(), fileCfg, envCfg, req.Flags)
	settings, err := Normalize(merged)
	if err != nil {
		return Settings{}, src, err
	}
	return settings, src, nil
}
