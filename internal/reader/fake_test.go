package reader

import (
	"io"
	"strings"
)

type fakePending struct {
	text      string
	err       error
	done      bool
	cancelled bool
}

func (p *fakePending) Poll() (string, bool, error) { return p.text, p.done, p.err }
func (p *fakePending) Cancel()                     { p.cancelled = true }

func (p *fakePending) finish(text string) { p.text, p.done = text, true }
func (p *fakePending) fail(err error)     { p.err, p.done = err, true }

type fakeLoader struct {
	files []File
	loads []*fakePending
}

func (l *fakeLoader) Load(f File) Pending {
	p := &fakePending{}
	l.files = append(l.files, f)
	l.loads = append(l.loads, p)
	return p
}

func (l *fakeLoader) last() *fakePending {
	return l.loads[len(l.loads)-1]
}

func textFile(name, content string) File {
	return File{
		Name: name,
		MIME: PlainText,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}
