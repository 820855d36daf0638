package servicename

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single unquoted segment, e.g. `timer-service-factory$PERSISTENT`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_$:-]+$`)

// isValidSegmentName checks for undesirable but technically valid names.
func isValidSegmentName(name string) bool {
	return name != "-" && name != "$"
}

// Parse creates a Name from its canonical string representation.
func Parse(raw string) (Name, error) {
	if raw == "" {
		return Name{}, fmt.Errorf("service name cannot be empty")
	}

	segments, err := split(raw)
	if err != nil {
		return Name{}, err
	}

	for _, segment := range segments {
		if segment.quoted {
			if segment.value == "" {
				return Name{}, fmt.Errorf("service name %q contains empty quoted segment", raw)
			}
			continue
		}
		if segment.value == "" {
			return Name{}, fmt.Errorf("service name %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment.value) {
			return Name{}, fmt.Errorf("invalid service name segment format: %q", segment.value)
		}
		if !isValidSegmentName(segment.value) {
			return Name{}, fmt.Errorf("invalid service name segment: %q", segment.value)
		}
	}

	values := make([]string, len(segments))
	for i, s := range segments {
		values[i] = s.value
	}
	return New(values...), nil
}

type rawSegment struct {
	value  string
	quoted bool
}

// split breaks raw on unquoted dots, honoring `"..."` segments with `\"` escapes.
func split(raw string) ([]rawSegment, error) {
	var (
		out     []rawSegment
		current strings.Builder
		quoted  bool
		inQuote bool
	)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(raw) && raw[i+1] == '"':
			current.WriteByte('"')
			i++
		case c == '"':
			if !inQuote && current.Len() > 0 {
				return nil, fmt.Errorf("unexpected quote inside segment of %q", raw)
			}
			if inQuote && i+1 < len(raw) && raw[i+1] != '.' {
				return nil, fmt.Errorf("quoted segment must end at a separator in %q", raw)
			}
			inQuote = !inQuote
			quoted = true
		case c == '.' && !inQuote:
			out = append(out, rawSegment{value: current.String(), quoted: quoted})
			current.Reset()
			quoted = false
		default:
			current.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in %q", raw)
	}
	out = append(out, rawSegment{value: current.String(), quoted: quoted})
	return out, nil
}
