package testutil

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// hexLineBytes is the number of encoded bytes per golden file line.
const hexLineBytes = 16

// HexLines renders data as lowercase hex, hexLineBytes bytes per line, each
// line terminated by a newline. Binary output stays diffable this way.
func HexLines(data []byte) []byte {
	var sb strings.Builder
	for len(data) > 0 {
		n := min(hexLineBytes, len(data))
		sb.WriteString(hex.EncodeToString(data[:n]))
		sb.WriteByte('\n')
		data = data[n:]
	}
	return []byte(sb.String())
}

// AssertGoldenHex compares data, rendered with HexLines, against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/... -update
func AssertGoldenHex(t *testing.T, name string, data []byte) {
	t.Helper()
	AssertGolden(t, name, HexLines(data))
}

// AssertGolden compares data byte for byte against
// testdata/golden/{name}.golden.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
