package parse

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

var fieldRe = regexp.MustCompile(`(?i)^(?:photo[_-])?([a-z]+)[_-](\d+)`)

// Photo categories recognized in upload field and file names.
const (
	CategoryFixedPoint = "fixedpoint"
	CategoryChecklist  = "checklist"
)

// ParsedField holds the structured data parsed from an uploaded photo's
// field or file name.
type ParsedField struct {
	Category string
	Index    int
}

// ParseField extracts the photo category and sequence index from a raw
// field or file name such as "fixedpoint_1" or
// "checklist_2_1430_300869.jpg".
func ParseField(raw string) (ParsedField, error) {
	s := strings.TrimSpace(raw)
	// Strip any extension first so "fixedpoint_1.jpg" parses cleanly.
	if ext := path.Ext(s); ext != "" && !strings.ContainsAny(ext, " ") {
		s = strings.TrimSuffix(s, ext)
	}

	if m := fieldRe.FindStringSubmatch(s); len(m) == 3 {
		idx, err := strconv.Atoi(m[2])
		if err == nil {
			return ParsedField{Category: normalizeCategory(m[1]), Index: idx}, nil
		}
	}

	// Fallback: a bare category name with no index.
	lower := strings.ToLower(s)
	if strings.Contains(lower, CategoryChecklist) {
		return ParsedField{Category: CategoryChecklist, Index: 1}, nil
	}
	if strings.Contains(lower, CategoryFixedPoint) || strings.Contains(lower, "fixed") {
		return ParsedField{Category: CategoryFixedPoint, Index: 1}, nil
	}

	return ParsedField{}, fmt.Errorf("unable to parse photo field name: %q", raw)
}

func normalizeCategory(raw string) string {
	switch strings.ToLower(raw) {
	case "checklist", "check":
		return CategoryChecklist
	case "fixedpoint", "fixed", "point":
		return CategoryFixedPoint
	default:
		return strings.ToLower(raw)
	}
}
