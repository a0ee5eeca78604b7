// Package commands implements the excerpt CLI commands.
package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/excerpt/internal/core/config"
)

const appDirName = "excerpt"

// Flags carries the global flag values shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config
}

// DefaultConfigPath is the XDG config location for the config file.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appDirName, "config.yaml")
}

// DefaultDataDir is the XDG data location for sessions and annotations.
func DefaultDataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), appDirName)
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback)
}
