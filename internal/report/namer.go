package report

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// DefaultMaxNameLength is the file name bound used by a zero Namer.
const DefaultMaxNameLength = 180

// digestLen is the number of hex characters of the SHA-256 suffix.
const digestLen = 8

// unsafeChars matches everything outside word characters, hyphen, period and space.
var unsafeChars = regexp.MustCompile(`[^\w\-. ]`)

// Namer derives result file names from a workflow label, a context label and the
// command line. Names are deterministic, contain no path separators and never
// exceed MaxLength bytes.
type Namer struct {
	MaxLength int
}

// Sanitize replaces every character outside the safe set with an underscore.
func Sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// Name returns the result file name for the given components.
//
// Names longer than MaxLength keep their leading part and end with an underscore
// and the first 8 hex digits of the SHA-256 of the full untruncated name, so two
// long names sharing a prefix still map to different files.
func (n Namer) Name(workflow, context, command string) string {
	name := Sanitize(workflow) + "_" + Sanitize(context) + "_" + Sanitize(command)
	return n.shorten(name)
}

func (n Namer) shorten(name string) string {
	max := n.MaxLength
	if max <= 0 {
		max = DefaultMaxNameLength
	}
	if len(name) <= max {
		return name
	}
	sum := sha256.Sum256([]byte(name))
	digest := hex.EncodeToString(sum[:])[:digestLen]
	keep := max - digestLen - 1
	if keep < 0 {
		return digest[:max]
	}
	return name[:keep] + "_" + digest
}
