// Package goldie wraps golden file assertions so fixtures compare equal on every platform.
package goldie

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// New returns a golden file tester reading fixtures from ./testdata.
func New(t *testing.T) *goldie.Goldie {
	t.Helper()

	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ClassicDiff),
	)
}

func Assert(t *testing.T, name string, actual []byte) {
	t.Helper()

	New(t).Assert(t, name, normalize(actual))
}

func normalize(actual []byte) []byte {
	return bytes.ReplaceAll(actual, []byte("\r\n"), []byte("\n"))
}
