package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "tagserve"

// PathResolver finds config and pool files relative to the executable, the
// working directory and the platform config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", execDir, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the appropriate config directory for the platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, ".config", AppName)
	}
}

// ConfigDir returns the platform config directory.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// FindPoolFile resolves a pool file. An empty name searches for pool.toml,
// pool.yaml and pool.txt. Absolute paths are taken as is; relative ones are
// tried against the working directory, the executable directory and the
// config directory, in that order.
func (pr *PathResolver) FindPoolFile(name string) (string, error) {
	if name != "" && filepath.IsAbs(name) {
		if FileExists(name) {
			return name, nil
		}
		return "", os.ErrNotExist
	}

	names := []string{name}
	if name == "" {
		names = []string{"pool.toml", "pool.yaml", "pool.yml", "pool.txt"}
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	dirs = append(dirs, pr.executableDir, pr.configDir)

	for _, dir := range dirs {
		for _, n := range names {
			candidate := filepath.Join(dir, n)
			if FileExists(candidate) {
				log.Debugf("Found pool file: %s", candidate)
				return candidate, nil
			}
			log.Debugf("Pool file candidate not found: %s", candidate)
		}
	}
	return "", os.ErrNotExist
}
