package servicename

import (
	"slices"
	"strings"
)

// Name is the structured representation of a unique service identifier.
// The zero value is the empty name.
type Name struct {
	segments []string
}

// New creates a name from the given segments.
func New(segments ...string) Name {
	return Name{segments: slices.Clone(segments)}
}

// Append returns a new name with the segments added after n's own. n is left
// untouched, so a base name can be extended repeatedly.
func (n Name) Append(segments ...string) Name {
	out := make([]string, 0, len(n.segments)+len(segments))
	out = append(out, n.segments...)
	out = append(out, segments...)
	return Name{segments: out}
}

// WithSuffix returns a new name whose last segment has suffix appended to it.
func (n Name) WithSuffix(suffix string) Name {
	if len(n.segments) == 0 {
		return New(suffix)
	}
	out := slices.Clone(n.segments)
	out[len(out)-1] += suffix
	return Name{segments: out}
}

// Segments returns a copy of the name's segments.
func (n Name) Segments() []string {
	return slices.Clone(n.segments)
}

// IsZero reports whether n has no segments.
func (n Name) IsZero() bool {
	return len(n.segments) == 0
}

// Equal checks whether both names have the same segments.
func (n Name) Equal(other Name) bool {
	return slices.Equal(n.segments, other.segments)
}

// String serializes the name into its canonical dotted form.
func (n Name) String() string {
	var sb strings.Builder
	for i, segment := range n.segments {
		if i > 0 {
			sb.WriteRune('.')
		}
		if strings.ContainsAny(segment, `."`) {
			sb.WriteRune('"')
			sb.WriteString(strings.ReplaceAll(segment, `"`, `\"`))
			sb.WriteRune('"')
			continue
		}
		sb.WriteString(segment)
	}
	return sb.String()
}
