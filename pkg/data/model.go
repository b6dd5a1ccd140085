package data

import "time"

type Run struct {
	ID         string
	Tool       string // "fetch", "subset", "split"
	Args       string
	Status     string // "running", "completed", "partial", "error"
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Skipped    int
	Bytes      int64
}

// Finished reports whether the run has ended, successfully or not.
func (r *Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Duration is the wall time of a finished run, or zero.
func (r *Run) Duration() time.Duration {
	if !r.Finished() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

type Operation struct {
	ID     int64
	RunID  string
	Kind   string // "download", "extract", "copy", "move", "rmdir"
	Source string
	Target string
	Status string // "ok", "missing", "failed", "skipped"
	Detail string
	At     time.Time
}
