package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/kerbaras/ucfprep/pkg/manifest"
	"github.com/kerbaras/ucfprep/pkg/sources"
	"go.uber.org/zap"
)

// ErrMissingDirectory is returned when root lacks the extracted dataset or
// its split lists. Nothing has been moved when it is returned.
var ErrMissingDirectory = errors.New("required directory not found")

// SplitReport summarises a Split.
type SplitReport struct {
	RunID string
	Fold  sources.Fold
	// Train and Test count the files actually moved.
	Train         int
	Test          int
	Missing       []string
	RemovedDirs   []string
	SourceRemoved bool
	// Problems collects everything that went wrong without stopping the run.
	Problems error
}

// Splitter moves the videos of one fold into train/ and test/ and prunes the
// source tree.
type Splitter struct {
	opts Options
}

func NewSplitter(opts Options) *Splitter {
	return &Splitter{opts: opts}
}

// Split expects root to hold UCF-101/ and ucfTrainTestlist/. It moves every
// file of the fold's train list to root/train and of its test list to
// root/test, keeping relative paths, then removes the directories of
// UCF-101 left empty and finally UCF-101 itself if it is empty.
func (s *Splitter) Split(ctx context.Context, root string, fold sources.Fold) (report *SplitReport, err error) {
	report = &SplitReport{Fold: fold}

	datasetDir := filepath.Join(root, sources.DatasetDir)
	listDir := filepath.Join(root, sources.ListDir)
	for _, dir := range []string{datasetDir, listDir} {
		if err := requireDir(dir); err != nil {
			return report, fmt.Errorf("split: %w", err)
		}
	}

	trainEntries, err := manifest.ReadFile(filepath.Join(listDir, fold.TrainList()), manifest.Labeled)
	if err != nil {
		return report, fmt.Errorf("split: %w", err)
	}
	testEntries, err := manifest.ReadFile(filepath.Join(listDir, fold.TestList()), manifest.PathOnly)
	if err != nil {
		return report, fmt.Errorf("split: %w", err)
	}

	rec := s.opts.begin("split")
	report.RunID = rec.RunID()
	defer func() { rec.finish(0, err) }()

	rec.logger.Info("splitting",
		zap.Int("fold", int(fold)),
		zap.Int("train", len(trainEntries)),
		zap.Int("test", len(testEntries)),
	)

	var problems *multierror.Error
	report.Train, err = s.moveAll(ctx, rec, root, trainEntries, sources.TrainDir, report, &problems)
	if err != nil {
		return report, err
	}
	report.Test, err = s.moveAll(ctx, rec, root, testEntries, sources.TestDir, report, &problems)
	if err != nil {
		return report, err
	}

	removed, pruneErr := removeEmptyDirs(datasetDir)
	report.RemovedDirs = removed
	for _, dir := range removed {
		rec.emit(Event{Kind: KindRemoveDir, Source: dir, Status: StatusOK})
	}
	if pruneErr != nil {
		problems = multierror.Append(problems, pruneErr)
	}

	if err := os.Remove(datasetDir); err != nil {
		problems = multierror.Append(problems, fmt.Errorf("%s not empty or could not be removed: %w", datasetDir, err))
		rec.emit(Event{Kind: KindRemoveDir, Source: datasetDir, Status: StatusSkipped,
			Detail: "not empty or could not be removed", Err: err})
	} else {
		report.SourceRemoved = true
		report.RemovedDirs = append(report.RemovedDirs, datasetDir)
		rec.emit(Event{Kind: KindRemoveDir, Source: datasetDir, Status: StatusOK})
	}

	report.Problems = problems.ErrorOrNil()
	return report, nil
}

func (s *Splitter) moveAll(ctx context.Context, rec *recorder, root string, entries []manifest.Entry, split string, report *SplitReport, problems **multierror.Error) (int, error) {
	moved := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return moved, fmt.Errorf("split: %w", err)
		}

		src := filepath.Join(root, sources.DatasetDir, entry.Path)
		dst := filepath.Join(root, split, entry.Path)

		if _, err := os.Lstat(src); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return moved, fmt.Errorf("split: %w", err)
			}
			report.Missing = append(report.Missing, src)
			*problems = multierror.Append(*problems, fmt.Errorf("%s: %w", src, os.ErrNotExist))
			rec.emit(Event{Kind: KindMove, Source: src, Target: dst, Status: StatusMissing,
				Detail: fmt.Sprintf("listed in %s line %d but not found", split, entry.Line)})
			continue
		}

		if err := moveFile(src, dst); err != nil {
			return moved, fmt.Errorf("split: move %s: %w", src, err)
		}
		moved++
		rec.emit(Event{Kind: KindMove, Source: src, Target: dst, Status: StatusOK})
	}
	return moved, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingDirectory, dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMissingDirectory, dir)
	}
	return nil
}
