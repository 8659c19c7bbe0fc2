package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/codeview/internal/core/config"
	"github.com/colonyops/codeview/internal/core/git"
	"github.com/colonyops/codeview/internal/core/version"
	"github.com/colonyops/codeview/pkg/executil"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "codeview", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "codeview")
}

// executor runs every external command of the CLI.
var executor executil.Executor = &executil.RealExecutor{}

func (f *Flags) git() *git.Executor {
	return git.NewExecutor(f.Config.GitPath, executor)
}

func (f *Flags) loader() *version.Loader {
	return version.NewLoader(f.git(), f.Config.Tree)
}

// resultFile resolves the configured linter result file. Relative paths are
// relative to the config file.
func (f *Flags) resultFile() string {
	p := f.Config.Linter.ResultFile
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(f.ConfigPath), p)
}

// repoDir returns the absolute repository directory from the first argument,
// defaulting to the working directory.
func repoDir(arg string) (string, error) {
	if arg == "" {
		arg = "."
	}
	return filepath.Abs(arg)
}
