package watch

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"speedread/internal/errors"
	"speedread/internal/mimetype"
	"speedread/pkg/testutils"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := New(mimetype.Default(), nil)
	require.NoError(t, err, "New watcher creation failed")
	require.NoError(t, w.AddDirectory(dir))
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	return w, dir
}

// waitFor drains arrivals until one for path satisfies match
func waitFor(t *testing.T, w *Watcher, path string, match func(Arrival) bool) Arrival {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case a, ok := <-w.Arrivals():
			require.True(t, ok, "arrival channel closed unexpectedly")
			if a.Path == path && match(a) {
				return a
			}
		case <-timeout:
			t.Fatalf("timeout waiting for arrival of %s", path)
		}
	}
}

func TestWatcherDeliversTextArrival(t *testing.T) {
	w, dir := newTestWatcher(t)
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "book.txt")
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"book.txt": "one two three"})

	a := waitFor(t, w, path, func(a Arrival) bool {
		return a.Op.Has(fsnotify.Create) || a.Op.Has(fsnotify.Write)
	})
	assert.Equal(t, "book.txt", a.File.Name)
	assert.Equal(t, "text/plain", a.File.MIME)
	assert.False(t, a.Timestamp.IsZero())

	rc, err := a.File.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	// The arrival may have been seen before the write completed
	assert.Contains(t, []string{"", "one two three"}, string(data))
}

func TestWatcherClassifiesOtherFiles(t *testing.T) {
	w, dir := newTestWatcher(t)
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	a := waitFor(t, w, path, func(Arrival) bool { return true })
	assert.Equal(t, mimetype.Unknown, a.File.MIME)
}

func TestWatcherIgnoresDirectories(t *testing.T) {
	w, dir := newTestWatcher(t)
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	marker := filepath.Join(dir, "marker.txt")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0644))

	timeout := time.After(3 * time.Second)
	for {
		select {
		case a := <-w.Arrivals():
			require.NotEqual(t, filepath.Join(dir, "sub"), a.Path, "directory should not arrive")
			if a.Path == marker {
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for marker")
		}
	}
}

func TestWatcherLifecycle(t *testing.T) {
	w, err := New(mimetype.Default(), nil)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, w.AddDirectory(dir))
	require.NoError(t, w.AddDirectory(dir))
	assert.Equal(t, []string{dir}, w.GetDirectories(), "duplicate directories are not recorded twice")

	assert.False(t, w.IsRunning())
	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())
	assert.Error(t, w.Start(), "second start should fail")

	w.Stop()
	assert.False(t, w.IsRunning())
	_, ok := <-w.Arrivals()
	assert.False(t, ok, "arrivals closed after stop")
	w.Stop()
}

func TestAddDirectoryErrors(t *testing.T) {
	w, err := New(mimetype.Default(), nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.AddDirectory(filepath.Join(t.TempDir(), "missing")))

	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	err = w.AddDirectory(file)
	require.Error(t, err)
	assert.Equal(t, file+" is not a directory", err.Error())

	var appErr *errors.ApplicationError
	assert.True(t, errors.As(err, &appErr))
}

func TestFileFromPath(t *testing.T) {
	f := FileFromPath("/tmp/inbox/Notes.TXT", mimetype.Default())
	assert.Equal(t, "Notes.TXT", f.Name)
	assert.Equal(t, "text/plain", f.MIME)
	require.NotNil(t, f.Open)
}
