package access

import "strings"

const (
	anySegment  = "*"
	anySegments = "**"
)

type pattern struct {
	segments []string
}

func compilePattern(p string) pattern {
	return pattern{segments: splitPath(p)}
}

// splitPath drops empty segments, so "/", "" and "//" all yield no
// segments and a trailing slash is ignored.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, s := range parts {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func (p pattern) match(path []string) bool {
	return matchSegments(p.segments, path)
}

func matchSegments(pat, path []string) bool {
	for len(pat) > 0 {
		head := pat[0]

		if head == anySegments {
			rest := pat[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(path); i++ {
				if matchSegments(rest, path[i:]) {
					return true
				}
			}
			return false
		}

		if len(path) == 0 {
			return false
		}
		if head != anySegment && head != path[0] {
			return false
		}

		pat, path = pat[1:], path[1:]
	}

	return len(path) == 0
}
