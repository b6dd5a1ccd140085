package services

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kerbaras/ucfprep/pkg/data"
)

// Mock implementations for testing

type mockLedger struct {
	mu         sync.Mutex
	runs       []*data.Run
	operations []*data.Operation
	updates    int

	saveRunFunc       func(run *data.Run) error
	updateRunFunc     func(run *data.Run) error
	saveOperationFunc func(op *data.Operation) error
}

func (m *mockLedger) SaveRun(run *data.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveRunFunc != nil {
		if err := m.saveRunFunc(run); err != nil {
			return err
		}
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockLedger) UpdateRun(run *data.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.updateRunFunc != nil {
		return m.updateRunFunc(run)
	}
	return nil
}

func (m *mockLedger) SaveOperation(op *data.Operation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveOperationFunc != nil {
		if err := m.saveOperationFunc(op); err != nil {
			return err
		}
	}
	m.operations = append(m.operations, op)
	return nil
}

// eventLog collects events passed to Options.OnEvent.
type eventLog struct {
	events []Event
}

func (l *eventLog) add(ev Event) {
	l.events = append(l.events, ev)
}

func (l *eventLog) withStatus(status string) []Event {
	var out []Event
	for _, ev := range l.events {
		if ev.Status == status {
			out = append(out, ev)
		}
	}
	return out
}

// Test helpers

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(b)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
