package loader

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"speedread/internal/errors"
	"speedread/internal/log"
	"speedread/internal/reader"
	"speedread/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ reader.Loader = (*Loader)(nil)

func newTestLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	opts = append([]Option{WithLogger(log.NewLogger(log.WithOutput(io.Discard)))}, opts...)
	return New(ctx, opts...)
}

func bytesFile(name string, data []byte) reader.File {
	return reader.File{
		Name: name,
		MIME: reader.PlainText,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func wait(t *testing.T, p reader.Pending) (string, error) {
	t.Helper()
	h, ok := p.(*Handle)
	require.True(t, ok)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.Wait(ctx)
}

func TestLoadValidText(t *testing.T) {
	l := newTestLoader(t)
	text, err := wait(t, l.Load(bytesFile("a.txt", []byte("a b\nc"))))
	require.NoError(t, err)
	assert.Equal(t, "a b\nc", text)
}

func TestPollEventuallyCompletes(t *testing.T) {
	l := newTestLoader(t)
	p := l.Load(bytesFile("a.txt", []byte("hello world")))

	require.Eventually(t, func() bool {
		_, done, _ := p.Poll()
		return done
	}, 5*time.Second, time.Millisecond)

	text, done, err := p.Poll()
	assert.True(t, done, "result stays available after completion")
	assert.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestLoadInvalidUTF8(t *testing.T) {
	l := newTestLoader(t)
	_, err := wait(t, l.Load(bytesFile("bad.txt", []byte{'o', 'k', ' ', 0xff, 0xfe})))

	require.Error(t, err)
	assert.True(t, errors.IsDecodeError(err))
	assert.Contains(t, err.Error(), "bad.txt")
	assert.Contains(t, err.Error(), "offset 3")
}

func TestDecode(t *testing.T) {
	text, err := Decode("x", []byte("Перетащите"))
	require.NoError(t, err)
	assert.Equal(t, "Перетащите", text)

	text, err = Decode("x", []byte("� is fine"))
	require.NoError(t, err)
	assert.Equal(t, "� is fine", text)

	_, err = Decode("x", []byte{0xc3})
	assert.True(t, errors.IsDecodeError(err))
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"book.txt": "one two three"})

	l := newTestLoader(t)
	text, err := wait(t, l.Load(reader.File{
		Name: "book.txt",
		MIME: reader.PlainText,
		Open: OpenPath(filepath.Join(dir, "book.txt")),
	}))
	require.NoError(t, err)
	assert.Equal(t, "one two three", text)
}

func TestLoadMissingFile(t *testing.T) {
	l := newTestLoader(t)
	_, err := wait(t, l.Load(reader.File{
		Name: "missing.txt",
		MIME: reader.PlainText,
		Open: OpenPath(filepath.Join(t.TempDir(), "missing.txt")),
	}))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
}

func TestLoadPermissionDenied(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping test when running as root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.txt")
	require.NoError(t, os.WriteFile(path, []byte("secret"), 0000))

	l := newTestLoader(t)
	_, err := wait(t, l.Load(reader.File{Name: "locked.txt", MIME: reader.PlainText, Open: OpenPath(path)}))
	require.Error(t, err)
	assert.Equal(t, errors.FileAccessDenied, errors.KindOf(err))
}

func TestLoadWithoutOpener(t *testing.T) {
	l := newTestLoader(t)
	_, err := wait(t, l.Load(reader.File{Name: "ghost.txt", MIME: reader.PlainText}))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestMaxSize(t *testing.T) {
	l := newTestLoader(t, WithMaxSize(5))
	text, err := wait(t, l.Load(bytesFile("big.txt", []byte(strings.Repeat("a", 100)))))
	require.NoError(t, err)
	assert.Equal(t, "aaaaa", text)
}

func TestMaxSizeSplitsMultiByteCharacter(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int64
		data    string
		want    string
	}{
		{"euro cut after one byte", 4, "aaa€", "aaa"},
		{"euro cut after two bytes", 5, "aaa€", "aaa"},
		{"euro fits exactly", 6, "aaa€", "aaa€"},
		{"four byte rune cut", 3, "a😀", "a"},
		{"ascii at cap", 3, "abcdef", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoader(t, WithMaxSize(tt.maxSize))
			text, err := wait(t, l.Load(bytesFile("big.txt", []byte(tt.data))))
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestMaxSizeKeepsInvalidTail(t *testing.T) {
	// A stray continuation byte is not a cut character and still fails.
	l := newTestLoader(t, WithMaxSize(3))
	_, err := wait(t, l.Load(bytesFile("bad.txt", []byte{'a', 'b', 0x80, 'c'})))
	assert.True(t, errors.IsDecodeError(err))
}

// blockingReader returns data only after release is closed.
type blockingReader struct {
	release chan struct{}
}

func (b *blockingReader) Read(p []byte) (int, error) {
	<-b.release
	return 0, io.EOF
}

func TestCancelStopsLoad(t *testing.T) {
	l := newTestLoader(t)
	br := &blockingReader{release: make(chan struct{})}
	p := l.Load(reader.File{
		Name: "slow.txt",
		MIME: reader.PlainText,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(br), nil },
	})

	_, done, _ := p.Poll()
	assert.False(t, done)

	p.Cancel()
	close(br.release)

	_, err := wait(t, p)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParentContextCancelsLoads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New(ctx, WithLogger(log.NewLogger(log.WithOutput(io.Discard))))
	cancel()

	_, err := wait(t, l.Load(bytesFile("a.txt", []byte("a"))))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFixtureDocuments(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestDocuments(t, dir)

	tests := []struct {
		name string
		want string
	}{
		{"short.txt", "the quick brown fox"},
		{"lines.txt", "one two\nthree\n\nfour"},
		{"empty.txt", ""},
	}
	l := newTestLoader(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := wait(t, l.Load(reader.File{
				Name: tt.name,
				MIME: reader.PlainText,
				Open: OpenPath(filepath.Join(dir, tt.name)),
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}
