// Package mimetype assigns media types to file names using glob patterns,
// for drop sources that deliver a path without a declared type.
package mimetype

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Unknown is reported for names no pattern matches
const Unknown = "application/octet-stream"

// DefaultPatterns maps media types to file name patterns.
func DefaultPatterns() map[string][]string {
	return map[string][]string{
		"text/plain": {"*.txt", "*.text"},
	}
}

type rule struct {
	mediaType string
	pattern   string
	matcher   glob.Glob
}

// Classifier matches base names, case-insensitively, against compiled
// patterns.
type Classifier struct {
	rules []rule
}

// New compiles patterns. Media types are tried in lexical order and
// patterns in the order given.
func New(patterns map[string][]string) (*Classifier, error) {
	types := make([]string, 0, len(patterns))
	for t := range patterns {
		types = append(types, t)
	}
	sort.Strings(types)

	c := &Classifier{}
	for _, t := range types {
		for _, p := range patterns[t] {
			g, err := glob.Compile(strings.ToLower(p))
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q for %s: %w", p, t, err)
			}
			c.rules = append(c.rules, rule{mediaType: t, pattern: p, matcher: g})
		}
	}
	return c, nil
}

// Default returns a classifier for DefaultPatterns
func Default() *Classifier {
	c, err := New(DefaultPatterns())
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the media type for name and whether a pattern matched.
func (c *Classifier) Lookup(name string) (string, bool) {
	base := strings.ToLower(filepath.Base(name))
	for _, r := range c.rules {
		if r.matcher.Match(base) {
			return r.mediaType, true
		}
	}
	return "", false
}

// Classify returns the media type of a dropped file. A declared type wins;
// name patterns only type files whose source declared nothing useful.
func (c *Classifier) Classify(name, declared string) string {
	if declared != "" && declared != Unknown {
		return declared
	}
	if t, ok := c.Lookup(name); ok {
		return t
	}
	return Unknown
}
