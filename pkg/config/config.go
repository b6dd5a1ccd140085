// Package config resolves defaults for the ucfprep commands. Precedence is
// command-line flag, then environment (optionally seeded from a .env file),
// then the built-in defaults below.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/kerbaras/ucfprep/pkg/integrations"
)

// Default values
const (
	DefaultDownloadDir = "UCF101"
	DefaultSourceDir   = "datasets/UCF101/test"
	DefaultFileList    = "datasets/UCF101/TestList100.txt"
	DefaultTargetDir   = "datasets/UCF101/test-101"
	DefaultRoot        = "."
	DefaultFold        = 1
	DefaultLedger      = "ucfprep.db"
)

// Environment variable names
const (
	EnvDownloadDir = "UCFPREP_DOWNLOAD_DIR"
	EnvSourceDir   = "UCFPREP_SOURCE_DIR"
	EnvFileList    = "UCFPREP_FILE_LIST"
	EnvTargetDir   = "UCFPREP_TARGET_DIR"
	EnvRoot        = "UCFPREP_ROOT"
	EnvFold        = "UCFPREP_FOLD"
	EnvLedger      = "UCFPREP_LEDGER"
	EnvWget        = "UCFPREP_WGET"
	EnvUnrar       = "UCFPREP_UNRAR"
	EnvUnzip       = "UCFPREP_UNZIP"
)

type Config struct {
	DownloadDir string
	SourceDir   string
	FileList    string
	TargetDir   string
	Root        string
	Fold        int
	Ledger      string

	Wget  string
	Unrar string
	Unzip string
}

func Defaults() Config {
	return Config{
		DownloadDir: DefaultDownloadDir,
		SourceDir:   DefaultSourceDir,
		FileList:    DefaultFileList,
		TargetDir:   DefaultTargetDir,
		Root:        DefaultRoot,
		Fold:        DefaultFold,
		Ledger:      DefaultLedger,
		Wget:        integrations.WgetCommand,
		Unrar:       integrations.UnrarCommand,
		Unzip:       integrations.UnzipCommand,
	}
}

// Load reads envFile when it exists (it never overrides variables already
// set in the environment) and applies the environment over the defaults.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv applies the variables returned by lookup over the defaults.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()

	vars := map[string]*string{
		EnvDownloadDir: &cfg.DownloadDir,
		EnvSourceDir:   &cfg.SourceDir,
		EnvFileList:    &cfg.FileList,
		EnvTargetDir:   &cfg.TargetDir,
		EnvRoot:        &cfg.Root,
		EnvLedger:      &cfg.Ledger,
		EnvWget:        &cfg.Wget,
		EnvUnrar:       &cfg.Unrar,
		EnvUnzip:       &cfg.Unzip,
	}
	for name, dst := range vars {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvFold); ok && v != "" {
		fold, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid fold %q: %w", EnvFold, v, err)
		}
		cfg.Fold = fold
	}

	return cfg, nil
}
