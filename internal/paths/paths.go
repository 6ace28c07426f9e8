// Package paths resolves the on-disk locations feeportal reads from and logs to.
package paths

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the user config and state dirs.
const AppName = "feeportal"

// LocalConfigName is the per-project config file looked up in the working directory.
const LocalConfigName = ".feeportal.yaml"

// userConfigDir is overridable in tests.
var userConfigDir = os.UserConfigDir

// ConfigDir returns ~/.config/feeportal (or the platform equivalent).
// It returns "" when the user config dir cannot be determined.
func ConfigDir() string {
	base, err := userConfigDir()
	if err != nil || base == "" {
		return ""
	}
	return filepath.Join(base, AppName)
}

// ConfigCandidates lists config files in lookup order: the working directory
// first, then the user config dir.
func ConfigCandidates(workDir string) []string {
	if workDir == "" {
		workDir = "."
	}
	candidates := []string{filepath.Join(filepath.Clean(workDir), LocalConfigName)}
	if dir := ConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.yaml"))
	}
	return candidates
}

// ResolveConfigFile returns explicit when set, otherwise the first existing
// candidate. It returns "" when no config file exists.
func ResolveConfigFile(explicit, workDir string) string {
	if explicit != "" {
		return filepath.Clean(explicit)
	}
	for _, c := range ConfigCandidates(workDir) {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// DefaultLogPath is where debug logs go when log.path is unset.
func DefaultLogPath() string {
	if dir := ConfigDir(); dir != "" {
		return filepath.Join(dir, "debug.log")
	}
	return "feeportal-debug.log"
}
