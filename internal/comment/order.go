package comment

import (
	"math"
	"strconv"
	"strings"

	"github.com/griffnb/core-savior/internal/source"
)

// DefaultOrder sorts members without an explicit order last.
const DefaultOrder = math.MaxInt

// ParseOrder parses an explicit order value. Missing or malformed values
// yield (DefaultOrder, false).
func ParseOrder(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultOrder, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultOrder, false
	}
	return n, true
}

// OrderOf reads the explicit order of a declaration: the order struct tag
// first, then an @order doc line.
func OrderOf(doc source.Documentation) (int, bool) {
	if raw := ParseTags(doc.Tag).Order; raw != "" {
		if n, ok := ParseOrder(raw); ok {
			return n, true
		}
	}
	for _, line := range strings.Split(doc.Text, "\n") {
		attribute, remainder := splitAnnotation(line)
		if attribute == "@order" {
			return ParseOrder(remainder)
		}
	}
	return DefaultOrder, false
}
