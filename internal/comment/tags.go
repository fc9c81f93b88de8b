package comment

import (
	"reflect"
	"strings"
)

// TagInfo contains the documentation relevant parts of a struct tag
type TagInfo struct {
	Title       string // Display name from title tag
	Description string // From description or doc tag
	Example     string // From example tag

	Hidden    bool // Value of hidden or swaggerignore tag
	HasHidden bool // Whether either tag was present

	Required      bool     // From binding/validate tags
	AllowedValues []string // From validate:"oneof=..."
	Order         string   // Raw value of order tag
}

// ParseJSONTag parses the json struct tag and returns field name, omitempty flag, and ignore flag.
//
// Examples:
//   - `json:"first_name"` → ("first_name", false, false)
//   - `json:"count,omitempty"` → ("count", true, false)
//   - `json:"-"` → ("", false, true)
//   - `json:"-,"` → ("-", false, false)
func ParseJSONTag(tag reflect.StructTag) (name string, omitEmpty bool, ignore bool) {
	jsonTag, ok := tag.Lookup("json")
	if !ok || jsonTag == "" {
		return "", false, false
	}

	if jsonTag == "-" {
		return "", false, true
	}

	// Split by comma to separate name from options
	parts := strings.Split(jsonTag, ",")
	name = strings.TrimSpace(parts[0])

	for i := 1; i < len(parts); i++ {
		if strings.TrimSpace(parts[i]) == "omitempty" {
			omitEmpty = true
			break
		}
	}

	return name, omitEmpty, false
}

// parseValidationTags parses binding and validate struct tags.
//
// Examples:
//   - `binding:"required"` → (true, nil)
//   - `validate:"required,oneof=red green"` → (true, ["red", "green"])
func parseValidationTags(tag reflect.StructTag) (required bool, allowed []string) {
	// Combine both tags for parsing
	var rules []string
	for _, key := range []string{"binding", "validate"} {
		if v := tag.Get(key); v != "" {
			rules = append(rules, strings.Split(v, ",")...)
		}
	}

	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		switch {
		case rule == "required":
			required = true
		case strings.HasPrefix(rule, "oneof="):
			allowed = parseOneOfValues(strings.TrimPrefix(rule, "oneof="))
		}
	}

	return required, allowed
}

// parseOneOfValues parses space-separated values, handling single-quoted strings.
// Examples:
//   - "red green blue" → ["red", "green", "blue"]
//   - "'value 1' 'value 2'" → ["value 1", "value 2"]
func parseOneOfValues(input string) []string {
	var values []string
	var current strings.Builder
	inQuote := false

	for i := 0; i < len(input); i++ {
		char := input[i]

		if char == '\'' {
			inQuote = !inQuote
		} else if char == ' ' && !inQuote {
			// Space outside quotes - end current value
			if current.Len() > 0 {
				values = append(values, current.String())
				current.Reset()
			}
		} else {
			current.WriteByte(char)
		}
	}

	if current.Len() > 0 {
		values = append(values, current.String())
	}

	return values
}

// parseBoolTag reports the value of a boolean tag and whether it was present.
// A present tag with an empty value counts as true.
func parseBoolTag(tag reflect.StructTag, key string) (value bool, present bool) {
	raw, ok := tag.Lookup(key)
	if !ok {
		return false, false
	}
	raw = strings.TrimSpace(raw)
	return raw == "" || strings.EqualFold(raw, "true"), true
}

// ParseTags parses every documentation tag of a raw struct tag.
//
// Example:
//   - `json:"sku" title:"SKU" validate:"required"` →
//     TagInfo{Title: "SKU", Required: true}
func ParseTags(raw string) TagInfo {
	tag := reflect.StructTag(raw)

	info := TagInfo{
		Title:   strings.TrimSpace(tag.Get("title")),
		Example: tag.Get("example"),
		Order:   strings.TrimSpace(tag.Get("order")),
	}

	info.Description = strings.TrimSpace(tag.Get("description"))
	if info.Description == "" {
		info.Description = strings.TrimSpace(tag.Get("doc"))
	}

	if hidden, ok := parseBoolTag(tag, "hidden"); ok {
		info.Hidden, info.HasHidden = hidden, true
	}
	if ignore, ok := parseBoolTag(tag, "swaggerignore"); ok {
		info.Hidden, info.HasHidden = info.Hidden || ignore, true
	}

	info.Required, info.AllowedValues = parseValidationTags(tag)

	return info
}
