// pkg/substream/identifier.go
package substream

import (
	"regexp"
	"strconv"
)

// Scheme is the identifier scheme this package serves.
const Scheme = "substream"

// identifierPattern is the full identifier grammar, anchored at both ends.
// scheme://offset:length/resourceId, all three numeric fields decimal.
var identifierPattern = regexp.MustCompile(`^([A-Za-z0-9.-]+)://([0-9]+):([0-9]+)/([0-9]+)$`)

// Identifier is the parsed form of a substream path. It is produced once by
// ParseIdentifier and never mutated afterwards.
type Identifier struct {
	// Scheme is the identifier's scheme component. ParseIdentifier does not
	// check it against Scheme; that is the resolver's job.
	Scheme string

	// Offset is the absolute start of the window in the underlying resource.
	Offset int64

	// Length is the window size in bytes, always > 0.
	Length int64

	// ResourceID is the opaque registry key for the underlying resource.
	ResourceID string
}

// String reassembles the compact identifier form.
func (id *Identifier) String() string {
	return id.Scheme + "://" + strconv.FormatInt(id.Offset, 10) + ":" +
		strconv.FormatInt(id.Length, 10) + "/" + id.ResourceID
}

// ParseIdentifier parses a compact identifier string. It fails with
// ErrMalformedIdentifier when the string does not match the grammar, a
// numeric field overflows, or the length is zero.
func ParseIdentifier(raw string) (*Identifier, error) {
	m := identifierPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, NewError("parse", raw, ErrMalformedIdentifier)
	}

	offset, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return nil, NewError("parse", raw, ErrMalformedIdentifier)
	}

	length, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return nil, NewError("parse", raw, ErrMalformedIdentifier)
	}

	// A zero-length window has no addressable positions.
	if length == 0 {
		return nil, NewError("parse", raw, ErrMalformedIdentifier)
	}

	return &Identifier{
		Scheme:     m[1],
		Offset:     offset,
		Length:     length,
		ResourceID: m[4],
	}, nil
}
