package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kerbaras/ucfprep/pkg/manifest"
	"go.uber.org/zap"
)

// CopyReport summarises a Copy.
type CopyReport struct {
	RunID   string
	Copied  []string
	Missing []string
	Skipped []string
	Bytes   int64
}

// Copier copies the files named by a manifest from one tree to another.
type Copier struct {
	opts Options
}

func NewCopier(opts Options) *Copier {
	return &Copier{opts: opts}
}

// Copy reads the manifest at listPath and copies every listed file from
// sourceDir to the same relative path under targetDir. Files that do not
// exist are reported and skipped; an unreadable manifest or a failing copy
// aborts. Copying again overwrites the previous result.
func (c *Copier) Copy(ctx context.Context, sourceDir, listPath, targetDir string) (report *CopyReport, err error) {
	rec := c.opts.begin("subset")
	report = &CopyReport{RunID: rec.RunID()}
	defer func() { rec.finish(report.Bytes, err) }()

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return report, fmt.Errorf("subset: %w", err)
	}

	entries, err := manifest.ReadFile(listPath, manifest.PathOnly)
	if err != nil {
		return report, fmt.Errorf("subset: %w", err)
	}
	rec.logger.Debug("manifest loaded", zap.String("path", listPath), zap.Int("entries", len(entries)))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("subset: %w", err)
		}

		src := filepath.Join(sourceDir, entry.Path)
		dst := filepath.Join(targetDir, entry.Path)

		info, statErr := os.Stat(src)
		if statErr != nil {
			report.Missing = append(report.Missing, src)
			rec.emit(Event{Kind: KindCopy, Source: src, Target: dst, Status: StatusMissing,
				Detail: fmt.Sprintf("file does not exist (line %d)", entry.Line)})
			continue
		}
		if info.IsDir() {
			report.Skipped = append(report.Skipped, src)
			rec.emit(Event{Kind: KindCopy, Source: src, Target: dst, Status: StatusSkipped,
				Detail: "is a directory"})
			continue
		}

		if err := copyFile(src, dst); err != nil {
			return report, fmt.Errorf("subset: copy %s: %w", src, err)
		}
		report.Copied = append(report.Copied, dst)
		report.Bytes += info.Size()
		rec.emit(Event{Kind: KindCopy, Source: src, Target: dst, Status: StatusOK})
	}

	return report, nil
}
