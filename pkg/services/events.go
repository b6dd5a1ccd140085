package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/kerbaras/ucfprep/pkg/data"
	"github.com/kerbaras/ucfprep/pkg/utils"
	"go.uber.org/zap"
)

// Event kinds
const (
	KindDownload  = "download"
	KindExtract   = "extract"
	KindCopy      = "copy"
	KindMove      = "move"
	KindRemoveDir = "rmdir"
)

// Event statuses
const (
	StatusOK      = "ok"
	StatusMissing = "missing"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Run statuses
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunPartial   = "partial"
	RunError     = "error"
)

// Event reports one step of a tool: a download, an extraction, a copied or
// moved file, a removed directory.
type Event struct {
	Kind   string
	Source string
	Target string
	Status string
	Detail string
	Err    error
}

// Ledger is the subset of the run repository the tools write to.
type Ledger interface {
	SaveRun(run *data.Run) error
	UpdateRun(run *data.Run) error
	SaveOperation(op *data.Operation) error
}

// Options are shared by every tool. All fields are optional.
type Options struct {
	Logger *zap.Logger
	Ledger Ledger
	// OnEvent is called synchronously for every step.
	OnEvent func(Event)
	// Args is stored with the run in the ledger.
	Args string
}

// recorder fans events out to the callback and the ledger and keeps the
// run's counters.
type recorder struct {
	opts   Options
	logger *zap.Logger
	run    *data.Run
}

func (o Options) begin(tool string) *recorder {
	r := &recorder{opts: o, logger: utils.OrNop(o.Logger).With(zap.String("tool", tool))}
	if o.Ledger == nil {
		return r
	}

	r.run = &data.Run{
		ID:        uuid.NewString(),
		Tool:      tool,
		Args:      o.Args,
		Status:    RunRunning,
		StartedAt: time.Now(),
	}
	if err := o.Ledger.SaveRun(r.run); err != nil {
		r.logger.Warn("ledger disabled for this run", zap.Error(err))
		r.run = nil
	}
	return r
}

// RunID is empty when no ledger is attached.
func (r *recorder) RunID() string {
	if r.run == nil {
		return ""
	}
	return r.run.ID
}

func (r *recorder) emit(ev Event) {
	detail := ev.Detail
	if detail == "" && ev.Err != nil {
		detail = ev.Err.Error()
	}
	r.logger.Debug("event",
		zap.String("kind", ev.Kind),
		zap.String("status", ev.Status),
		zap.String("source", ev.Source),
		zap.String("target", ev.Target),
		zap.String("detail", detail),
	)

	if r.opts.OnEvent != nil {
		r.opts.OnEvent(ev)
	}

	if r.run == nil {
		return
	}
	if ev.Status == StatusOK {
		r.run.Processed++
	} else {
		r.run.Skipped++
	}
	op := &data.Operation{
		RunID:  r.run.ID,
		Kind:   ev.Kind,
		Source: ev.Source,
		Target: ev.Target,
		Status: ev.Status,
		Detail: detail,
		At:     time.Now(),
	}
	if err := r.opts.Ledger.SaveOperation(op); err != nil {
		r.logger.Warn("failed to record operation", zap.Error(err))
	}
}

// finish closes the run: error when err is set, partial when any step was
// not ok, completed otherwise.
func (r *recorder) finish(bytes int64, err error) {
	if r.run == nil {
		return
	}
	r.run.FinishedAt = time.Now()
	r.run.Bytes = bytes
	switch {
	case err != nil:
		r.run.Status = RunError
	case r.run.Skipped > 0:
		r.run.Status = RunPartial
	default:
		r.run.Status = RunCompleted
	}
	if err := r.opts.Ledger.UpdateRun(r.run); err != nil {
		r.logger.Warn("failed to record run result", zap.Error(err))
	}
}
