package integrations

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-multierror"
)

// Default binary names.
const (
	WgetCommand  = "wget"
	UnrarCommand = "unrar"
	UnzipCommand = "unzip"
)

// wget flags
const (
	WgetNoCheckCertificate = "--no-check-certificate"
	WgetContinue           = "-c"
	WgetPrefix             = "-P"
)

// Wget downloads with GNU wget, resuming partial files and skipping TLS
// certificate validation.
type Wget struct {
	Binary string
	runner Runner
}

func NewWget(runner Runner) *Wget {
	return &Wget{Binary: WgetCommand, runner: runner}
}

func (w *Wget) Download(ctx context.Context, url, dir string) error {
	return w.runner.Run(ctx, &Command{
		Name: w.Binary,
		Args: []string{WgetNoCheckCertificate, WgetContinue, WgetPrefix, dir, url},
	})
}

// Unrar extracts RAR archives, keeping the stored paths.
type Unrar struct {
	Binary string
	runner Runner
}

func NewUnrar(runner Runner) *Unrar {
	return &Unrar{Binary: UnrarCommand, runner: runner}
}

func (u *Unrar) Extract(ctx context.Context, archive, dir string) error {
	return u.runner.Run(ctx, &Command{
		Name: u.Binary,
		Args: []string{"x", "-idq", archive, dir},
	})
}

// Unzip extracts ZIP archives quietly.
type Unzip struct {
	Binary string
	runner Runner
}

func NewUnzip(runner Runner) *Unzip {
	return &Unzip{Binary: UnzipCommand, runner: runner}
}

func (u *Unzip) Extract(ctx context.Context, archive, dir string) error {
	return u.runner.Run(ctx, &Command{
		Name: u.Binary,
		Args: []string{"-q", archive, "-d", dir},
	})
}

// LookupTools checks that every named binary is on PATH and reports all the
// missing ones at once.
func LookupTools(names ...string) error {
	var result *multierror.Error
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s not found: %w", name, err))
		}
	}
	return result.ErrorOrNil()
}
