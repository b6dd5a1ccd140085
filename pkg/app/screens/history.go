package screens

import "github.com/kerbaras/ucfprep/pkg/data"

// History is the part of the run ledger the browser reads and prunes.
type History interface {
	ListRuns(limit int) ([]*data.Run, error)
	GetRun(id string) (*data.Run, error)
	GetOperations(runID string) ([]*data.Operation, error)
	CountOperations(runID string) (map[string]int, error)
	DeleteRun(id string) error
}

type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}
