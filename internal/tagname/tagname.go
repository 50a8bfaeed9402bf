package tagname

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"
)

// ErrMalformedName marks filenames that do not split into the expected
// number of dash-delimited segments.
var ErrMalformedName = errors.New("malformed tagged filename")

const fieldCount = 5

// Record holds the five field values extracted from one tagged filename.
// Records are transient: parsed per source file and discarded once the
// destination path is derived.
type Record struct {
	// Original is the source filename the record was parsed from.
	Original string

	O string
	F string
	L string
	P string
	A string
}

// Parse splits name on '-' and strips the leading tag character from each
// field. The fifth segment is additionally cut at its first '.' so the
// extension never leaks into the A field. Segments beyond the fifth are
// ignored.
func Parse(name string) (Record, error) {
	parts := strings.Split(name, "-")
	if len(parts) < fieldCount {
		return Record{}, fmt.Errorf("%w: %q yields %d segment(s), need %d", ErrMalformedName, name, len(parts), fieldCount)
	}
	last, _, _ := strings.Cut(parts[4], ".")
	return Record{
		Original: name,
		O:        stripTag(parts[0]),
		F:        stripTag(parts[1]),
		L:        stripTag(parts[2]),
		P:        stripTag(parts[3]),
		A:        stripTag(last),
	}, nil
}

// RelDir returns the nested destination directory for the record,
// o<O>/f<F>/l<L>/p<P>, relative to the destination root.
func (r Record) RelDir() string {
	return path.Join("o"+r.O, "f"+r.F, "l"+r.L, "p"+r.P)
}

// DestName returns the destination filename, a<A> plus ext. The caller
// supplies the extension including its leading dot.
func (r Record) DestName(ext string) string {
	return "a" + r.A + ext
}

func stripTag(segment string) string {
	if segment == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(segment)
	return segment[size:]
}
