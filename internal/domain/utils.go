package domain

import (
	"strings"
)

const (
	// ARRAY represent a array value.
	ARRAY = "array"
	// OBJECT represent a object value.
	OBJECT = "object"
	// BOOLEAN represent a boolean value.
	BOOLEAN = "boolean"
	// INTEGER represent a integer value.
	INTEGER = "integer"
	// NUMBER represent a number value.
	NUMBER = "number"
	// STRING represent a string value.
	STRING = "string"
)

// PathSeparator joins field path segments.
const PathSeparator = "."

// MapKeySegment is the path segment under which map keys are expanded, so
// members of object keys never collide with members of the value.
const MapKeySegment = "[key]"

// JoinPath appends a member name to a field path.
func JoinPath(base, name string) string {
	if base == "" {
		return name
	}
	if name == "" {
		return base
	}
	return base + PathSeparator + name
}

// OrderedSet concatenates lists, dropping blanks and duplicates while keeping first-seen order.
func OrderedSet(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// IsGolangPrimitiveType checks if a type is a Go primitive type.
// This only checks for basic Go types. For extended primitives (time.Time, UUID, decimal),
// use IsExtendedPrimitiveType instead.
func IsGolangPrimitiveType(typeName string) bool {
	switch typeName {
	case "uint",
		"int",
		"uint8",
		"int8",
		"uint16",
		"int16",
		"byte",
		"uint32",
		"int32",
		"rune",
		"uint64",
		"int64",
		"uintptr",
		"float32",
		"float64",
		"bool",
		"string":
		return true
	}

	return false
}

// IsExtendedPrimitiveType checks if a type should be documented as a scalar,
// including time, UUID, decimal and raw JSON types.
func IsExtendedPrimitiveType(typeName string) bool {
	cleanType := strings.TrimPrefix(typeName, "*")

	if IsGolangPrimitiveType(cleanType) {
		return true
	}

	switch cleanType {
	case "time.Time",
		"time.Duration",
		"encoding/json.RawMessage",
		"json.RawMessage",
		"encoding/json.Number",
		"json.Number",
		"decimal.Decimal",
		"github.com/shopspring/decimal.Decimal",
		"uuid.UUID",
		"github.com/google/uuid.UUID",
		"error",
		"[]byte",
		"[]uint8":
		return true
	}

	return false
}

// JSONType maps a primitive type identity to its JSON schema type and format.
// Unknown names map to string.
func JSONType(typeName string) (jsonType string, format string) {
	cleanType := strings.TrimPrefix(typeName, "*")

	switch cleanType {
	case "int", "uint", "uintptr":
		return INTEGER, ""
	case "uint8", "int8", "uint16", "int16", "byte", "int32", "uint32", "rune":
		return INTEGER, "int32"
	case "uint64", "int64":
		return INTEGER, "int64"
	case "float32":
		return NUMBER, "float"
	case "float64", "number":
		return NUMBER, "double"
	case "decimal.Decimal", "github.com/shopspring/decimal.Decimal", "encoding/json.Number", "json.Number":
		return NUMBER, ""
	case "bool", "boolean":
		return BOOLEAN, ""
	case "time.Time":
		return STRING, "date-time"
	case "time.Duration":
		return INTEGER, "int64"
	case "uuid.UUID", "github.com/google/uuid.UUID":
		return STRING, "uuid"
	case "[]byte", "[]uint8":
		return STRING, "byte"
	case "encoding/json.RawMessage", "json.RawMessage", "any", "interface{}":
		return OBJECT, ""
	}
	return STRING, ""
}

// ShortTypeName trims the package path from a type identity,
// keeping the package name: "github.com/x/shop.Order" -> "shop.Order".
func ShortTypeName(identity string) string {
	// Only trim the path in front of the base type, leave type arguments alone
	base := identity
	rest := ""
	if i := strings.IndexByte(identity, '['); i > 0 {
		base, rest = identity[:i], identity[i:]
	}
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return base + rest
}

// BaseTypeName trims the package qualifier as well: "github.com/x/shop.Order" -> "Order".
func BaseTypeName(identity string) string {
	short := ShortTypeName(identity)
	base := short
	rest := ""
	if i := strings.IndexByte(short, '['); i > 0 {
		base, rest = short[:i], short[i:]
	}
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[i+1:]
	}
	return base + rest
}
