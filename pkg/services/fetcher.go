package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kerbaras/ucfprep/pkg/integrations"
	"github.com/kerbaras/ucfprep/pkg/sources"
	"go.uber.org/zap"
)

// FetchOptions configures a Fetcher.
type FetchOptions struct {
	Options
	// Strict turns a non-zero exit of wget, unrar or unzip into a fatal
	// error. By default the failure is reported and the run goes on.
	Strict bool
	// Retries re-runs a failed download; wget -c resumes the partial file.
	Retries int
	// RetryInterval is the first backoff delay. Zero uses the library default.
	RetryInterval time.Duration
}

// FetchReport summarises a Fetch.
type FetchReport struct {
	Dir        string
	RunID      string
	Downloaded []string
	Extracted  []string
	Missing    []string
	Failed     []string
	// Bytes is the total size of the archives present after download.
	Bytes int64
}

// Fetcher downloads archives and unpacks them next to themselves.
type Fetcher struct {
	downloader integrations.Downloader
	extractors map[sources.Format]integrations.Extractor
	opts       FetchOptions
}

// NewFetcher creates a Fetcher. extractors maps each archive format to the
// tool that unpacks it; archives of other formats are downloaded only.
func NewFetcher(downloader integrations.Downloader, extractors map[sources.Format]integrations.Extractor, opts FetchOptions) *Fetcher {
	return &Fetcher{
		downloader: downloader,
		extractors: extractors,
		opts:       opts,
	}
}

// Fetch downloads every archive into dir, in order, and extracts each one
// that is present afterwards. A missing file after download only skips its
// extraction. Tools that cannot be started abort the run.
func (f *Fetcher) Fetch(ctx context.Context, dir string, archives []sources.Archive) (report *FetchReport, err error) {
	rec := f.opts.begin("fetch")
	report = &FetchReport{Dir: dir, RunID: rec.RunID()}
	defer func() { rec.finish(report.Bytes, err) }()

	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("fetch: %w", err)
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return report, fmt.Errorf("fetch: %w", err)
		}

		localPath := filepath.Join(dir, archive.LocalName())
		rec.logger.Info("downloading", zap.String("url", archive.URL), zap.String("dir", dir))
		started := time.Now()
		if err := f.download(ctx, rec, archive.URL, dir); err != nil {
			if !f.tolerate(err) {
				return report, fmt.Errorf("fetch: download %s: %w", archive.URL, err)
			}
			report.Failed = append(report.Failed, archive.URL)
			rec.emit(Event{Kind: KindDownload, Source: archive.URL, Target: localPath, Status: StatusFailed, Err: err})
		} else {
			report.Downloaded = append(report.Downloaded, localPath)
			rec.emit(Event{Kind: KindDownload, Source: archive.URL, Target: localPath, Status: StatusOK})
		}
		rec.logger.Debug("download finished", zap.String("url", archive.URL), zap.Duration("took", time.Since(started)))

		info, statErr := os.Stat(localPath)
		if statErr != nil {
			report.Missing = append(report.Missing, localPath)
			rec.emit(Event{Kind: KindExtract, Source: localPath, Target: dir, Status: StatusMissing,
				Detail: "not found, skipping extraction"})
			continue
		}
		report.Bytes += info.Size()

		format := sources.FormatOf(localPath)
		extractor, ok := f.extractors[format]
		if !ok {
			rec.emit(Event{Kind: KindExtract, Source: localPath, Target: dir, Status: StatusSkipped,
				Detail: "no extractor for this file type"})
			continue
		}

		rec.logger.Info("extracting", zap.String("archive", localPath), zap.String("format", string(format)))
		if err := extractor.Extract(ctx, localPath, dir); err != nil {
			if !f.tolerate(err) {
				return report, fmt.Errorf("fetch: extract %s: %w", localPath, err)
			}
			report.Failed = append(report.Failed, localPath)
			rec.emit(Event{Kind: KindExtract, Source: localPath, Target: dir, Status: StatusFailed, Err: err})
			continue
		}
		report.Extracted = append(report.Extracted, localPath)
		rec.emit(Event{Kind: KindExtract, Source: localPath, Target: dir, Status: StatusOK})
	}

	return report, nil
}

// tolerate reports whether a tool error should be recorded and skipped.
func (f *Fetcher) tolerate(err error) bool {
	return integrations.IsExitError(err) && !f.opts.Strict
}

func (f *Fetcher) download(ctx context.Context, rec *recorder, url, dir string) error {
	if f.opts.Retries <= 0 {
		return f.downloader.Download(ctx, url, dir)
	}

	op := func() error {
		err := f.downloader.Download(ctx, url, dir)
		if err != nil && !integrations.IsExitError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	exp := backoff.NewExponentialBackOff()
	if f.opts.RetryInterval > 0 {
		exp.InitialInterval = f.opts.RetryInterval
	}
	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(f.opts.Retries)), ctx)

	return backoff.RetryNotify(op, b, func(err error, wait time.Duration) {
		rec.logger.Warn("download failed, retrying",
			zap.String("url", url), zap.Duration("wait", wait), zap.Error(err))
	})
}
