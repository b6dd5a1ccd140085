package services

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type copyFixture struct {
	sourceDir string
	targetDir string
	listPath  string
}

func newCopyFixture(t *testing.T, files map[string]string, list ...string) copyFixture {
	t.Helper()
	base := t.TempDir()
	f := copyFixture{
		sourceDir: filepath.Join(base, "test"),
		targetDir: filepath.Join(base, "test-101"),
		listPath:  filepath.Join(base, "TestList100.txt"),
	}
	for rel, content := range files {
		writeFile(t, filepath.Join(f.sourceDir, rel), content)
	}
	writeFile(t, f.listPath, strings.Join(list, "\n")+"\n")
	return f
}

func TestCopy_PreservesStructureContentAndTimes(t *testing.T) {
	rel := "ApplyEyeMakeup/v_ApplyEyeMakeup_g08_c01.avi"
	f := newCopyFixture(t, map[string]string{rel: "video-bytes"}, rel)

	mtime := time.Date(2012, 11, 5, 8, 30, 0, 0, time.UTC)
	src := filepath.Join(f.sourceDir, rel)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	report, err := NewCopier(Options{}).Copy(context.Background(), f.sourceDir, f.listPath, f.targetDir)
	require.NoError(t, err)

	dst := filepath.Join(f.targetDir, rel)
	assert.Equal(t, "video-bytes", readFile(t, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v, want %v", info.ModTime(), mtime)

	assert.Equal(t, []string{dst}, report.Copied)
	assert.Equal(t, int64(len("video-bytes")), report.Bytes)
}

func TestCopy_MissingFilesAreSkipped(t *testing.T) {
	f := newCopyFixture(t,
		map[string]string{"A/a.avi": "a", "C/c.avi": "c"},
		"A/a.avi", "", "B/missing.avi", "   ", "C/c.avi",
	)

	log := &eventLog{}
	report, err := NewCopier(Options{OnEvent: log.add}).Copy(context.Background(), f.sourceDir, f.listPath, f.targetDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(f.targetDir, "A/a.avi"))
	assert.FileExists(t, filepath.Join(f.targetDir, "C/c.avi"))
	assert.NoFileExists(t, filepath.Join(f.targetDir, "B/missing.avi"))
	assert.NoDirExists(t, filepath.Join(f.targetDir, "B"))

	assert.Len(t, report.Copied, 2)
	require.Len(t, report.Missing, 1)
	assert.Equal(t, filepath.Join(f.sourceDir, "B/missing.avi"), report.Missing[0])

	missing := log.withStatus(StatusMissing)
	require.Len(t, missing, 1)
	assert.Contains(t, missing[0].Detail, "line 3")
}

func TestCopy_IsIdempotent(t *testing.T) {
	f := newCopyFixture(t, map[string]string{"A/a.avi": "a", "B/b.avi": "bb"}, "A/a.avi", "B/b.avi")
	copier := NewCopier(Options{})

	first, err := copier.Copy(context.Background(), f.sourceDir, f.listPath, f.targetDir)
	require.NoError(t, err)
	second, err := copier.Copy(context.Background(), f.sourceDir, f.listPath, f.targetDir)
	require.NoError(t, err)

	assert.Equal(t, first.Copied, second.Copied)
	assert.Equal(t, "a", readFile(t, filepath.Join(f.targetDir, "A/a.avi")))
	assert.Equal(t, "bb", readFile(t, filepath.Join(f.targetDir, "B/b.avi")))
}

func TestCopy_OverwritesStaleTarget(t *testing.T) {
	f := newCopyFixture(t, map[string]string{"A/a.avi": "fresh"}, "A/a.avi")
	writeFile(t, filepath.Join(f.targetDir, "A/a.avi"), "stale and longer")

	_, err := NewCopier(Options{}).Copy(context.Background(), f.sourceDir, f.listPath, f.targetDir)
	require.NoError(t, err)
	assert.Equal(t, "fresh", readFile(t, filepath.Join(f.targetDir, "A/a.avi")))
}

func TestCopy_DirectoryEntryIsSkipped(t *testing.T) {
	f := newCopyFixture(t, map[string]string{"A/a.avi": "a"}, "A")

	log := &eventLog{}
	report, err := NewCopier(Options{OnEvent: log.add}).Copy(context.Background(), f.sourceDir, f.listPath, f.targetDir)
	require.NoError(t, err)
	assert.Empty(t, report.Copied)
	assert.Len(t, report.Skipped, 1)
	assert.Len(t, log.withStatus(StatusSkipped), 1)
}

func TestCopy_MissingManifestIsFatal(t *testing.T) {
	base := t.TempDir()
	_, err := NewCopier(Options{}).Copy(context.Background(), base, filepath.Join(base, "nope.txt"), filepath.Join(base, "out"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, strings.HasPrefix(err.Error(), "subset:"))
}

func TestCopy_CreatesTargetEvenWhenNothingCopied(t *testing.T) {
	f := newCopyFixture(t, nil, "A/none.avi")

	_, err := NewCopier(Options{}).Copy(context.Background(), f.sourceDir, f.listPath, f.targetDir)
	require.NoError(t, err)
	assert.DirExists(t, f.targetDir)
}

func TestCopy_RecordsRun(t *testing.T) {
	f := newCopyFixture(t, map[string]string{"A/a.avi": "a"}, "A/a.avi", "B/b.avi")
	ledger := &mockLedger{}

	report, err := NewCopier(Options{Ledger: ledger}).Copy(context.Background(), f.sourceDir, f.listPath, f.targetDir)
	require.NoError(t, err)

	require.Len(t, ledger.runs, 1)
	run := ledger.runs[0]
	assert.Equal(t, report.RunID, run.ID)
	assert.Equal(t, "subset", run.Tool)
	assert.Equal(t, RunPartial, run.Status)
	assert.Equal(t, int64(1), run.Bytes)
	require.Len(t, ledger.operations, 2)
	assert.Equal(t, KindCopy, ledger.operations[0].Kind)
	assert.Equal(t, StatusMissing, ledger.operations[1].Status)
}

func TestCopy_CancelledContext(t *testing.T) {
	f := newCopyFixture(t, map[string]string{"A/a.avi": "a"}, "A/a.avi")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCopier(Options{}).Copy(ctx, f.sourceDir, f.listPath, f.targetDir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(f.targetDir, "A/a.avi"))
}

func TestCopy_FollowsSymlinkedSource(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	base := t.TempDir()
	sourceDir := filepath.Join(base, "test")
	targetDir := filepath.Join(base, "out", "deep")
	listPath := filepath.Join(base, "list.txt")

	stored := filepath.Join(base, "store", "x.avi")
	writeFile(t, stored, "real-bytes")
	mtime := time.Date(2013, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(stored, mtime, mtime))

	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "A"), 0o755))
	require.NoError(t, os.Symlink("../../store/x.avi", filepath.Join(sourceDir, "A", "x.avi")))
	writeFile(t, listPath, "A/x.avi\n")

	report, err := NewCopier(Options{}).Copy(context.Background(), sourceDir, listPath, targetDir)
	require.NoError(t, err)
	require.Len(t, report.Copied, 1)

	dst := filepath.Join(targetDir, "A", "x.avi")
	info, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "target mode %v", info.Mode())
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v, want %v", info.ModTime(), mtime)
	assert.Equal(t, "real-bytes", readFile(t, dst))
	assert.Equal(t, int64(len("real-bytes")), report.Bytes)
}
