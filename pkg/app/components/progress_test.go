package components

import (
	"strings"
	"testing"

	"github.com/kerbaras/ucfprep/pkg/services"
)

func TestNewProgressTracker(t *testing.T) {
	tracker := NewProgressTracker(80)

	if tracker == nil {
		t.Fatal("Expected tracker to be created")
	}

	if tracker.width != 80 {
		t.Errorf("Expected width 80, got %d", tracker.width)
	}

	if tracker.total != 0 {
		t.Errorf("Expected 0 events, got %d", tracker.total)
	}
}

func TestUpdate(t *testing.T) {
	tracker := NewProgressTracker(80)

	tracker.Update(services.Event{Kind: services.KindCopy, Status: services.StatusOK})
	tracker.Update(services.Event{Kind: services.KindCopy, Status: services.StatusOK})
	tracker.Update(services.Event{Kind: services.KindCopy, Status: services.StatusMissing})

	if tracker.total != 3 {
		t.Errorf("Expected 3 events, got %d", tracker.total)
	}

	if tracker.Count(services.StatusOK) != 2 {
		t.Errorf("Expected 2 ok, got %d", tracker.Count(services.StatusOK))
	}

	if tracker.Count(services.StatusMissing) != 1 {
		t.Errorf("Expected 1 missing, got %d", tracker.Count(services.StatusMissing))
	}
}

func TestViewEmpty(t *testing.T) {
	tracker := NewProgressTracker(80)

	view := tracker.View()

	if !strings.Contains(view, "nothing to do") {
		t.Errorf("Expected empty view message, got: %s", view)
	}
}

func TestViewWithProgress(t *testing.T) {
	tracker := NewProgressTracker(20)

	for i := 0; i < 1500; i++ {
		tracker.Update(services.Event{Kind: services.KindMove, Status: services.StatusOK})
	}
	tracker.Update(services.Event{Kind: services.KindMove, Status: services.StatusMissing})

	view := tracker.View()

	if !strings.Contains(view, "1,500 ok") {
		t.Errorf("Expected grouped ok count in view, got: %s", view)
	}

	if !strings.Contains(view, "1 missing") {
		t.Errorf("Expected missing count in view, got: %s", view)
	}

	if !strings.Contains(view, "█") {
		t.Error("Expected progress bar in view")
	}
}

func TestEventLineOK(t *testing.T) {
	line := EventLine(services.Event{
		Kind:   services.KindMove,
		Source: "UCF-101/Archery/a.avi",
		Target: "train/Archery/a.avi",
		Status: services.StatusOK,
	})

	if !strings.Contains(line, "✅") {
		t.Error("Expected ok icon")
	}

	if !strings.Contains(line, "Moved UCF-101/Archery/a.avi → train/Archery/a.avi") {
		t.Errorf("Unexpected line: %s", line)
	}
}

func TestEventLineMissing(t *testing.T) {
	line := EventLine(services.Event{
		Kind:   services.KindCopy,
		Source: "test/a.avi",
		Target: "test-101/a.avi",
		Status: services.StatusMissing,
		Detail: "file does not exist (line 3)",
	})

	if !strings.Contains(line, "copy missing: test/a.avi") {
		t.Errorf("Expected kind and status, got: %s", line)
	}

	if !strings.Contains(line, "(file does not exist (line 3))") {
		t.Errorf("Expected detail, got: %s", line)
	}
}

func TestEventLineDetailAlreadyHoldsError(t *testing.T) {
	err := &testError{"wget: exit status 4"}
	line := EventLine(services.Event{
		Kind:   services.KindDownload,
		Source: "https://example.org/UCF101.rar",
		Status: services.StatusFailed,
		Detail: err.Error(),
		Err:    err,
	})

	if strings.Count(line, "exit status 4") != 1 {
		t.Errorf("Expected error text once, got: %s", line)
	}
}

func TestEventLineWithError(t *testing.T) {
	line := EventLine(services.Event{
		Kind:   services.KindDownload,
		Source: "https://example.org/UCF101.rar",
		Status: services.StatusFailed,
		Err:    &testError{"exit status 8"},
	})

	if !strings.Contains(line, "❌") {
		t.Error("Expected failure icon")
	}

	if !strings.Contains(line, "exit status 8") {
		t.Errorf("Expected error details, got: %s", line)
	}
}

func TestEventLineSourceOnly(t *testing.T) {
	line := EventLine(services.Event{
		Kind:   services.KindRemoveDir,
		Source: "UCF-101/Archery",
		Status: services.StatusOK,
	})

	if strings.Contains(line, "→") {
		t.Errorf("Expected no target arrow, got: %s", line)
	}

	if !strings.Contains(line, "Removed UCF-101/Archery") {
		t.Errorf("Unexpected line: %s", line)
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := renderProgressBar(50, 100, 20)

	if strings.Count(bar, "█")+strings.Count(bar, "░") != 20 {
		t.Errorf("Expected 20 bar cells, got: %s", bar)
	}
}

func TestRenderProgressBarZeroTotal(t *testing.T) {
	bar := renderProgressBar(0, 0, 20)

	if bar != "" {
		t.Errorf("Expected empty string for zero total, got: %s", bar)
	}
}

func TestRenderProgressBarFull(t *testing.T) {
	bar := renderProgressBar(100, 100, 20)

	if strings.Count(bar, "█") != 20 {
		t.Errorf("Expected 20 filled chars, got %d", strings.Count(bar, "█"))
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
