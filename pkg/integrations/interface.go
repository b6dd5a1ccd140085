package integrations

import "context"

// Runner executes an external command and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, command *Command) error
}

// Downloader fetches url into dir.
type Downloader interface {
	Download(ctx context.Context, url, dir string) error
}

// Extractor unpacks archive into dir.
type Extractor interface {
	Extract(ctx context.Context, archive, dir string) error
}
