package comment

import "unicode"

const (
	// CamelCase is the default serialized member naming: firstName
	CamelCase = "camelcase"
	// PascalCase keeps the declared name: FirstName
	PascalCase = "pascalcase"
	// SnakeCase lowers and separates words: first_name
	SnakeCase = "snakecase"
)

// ToSnakeCase converts a name to snake_case
func ToSnakeCase(in string) string {
	var (
		runes  = []rune(in)
		length = len(runes)
		out    []rune
	)

	for idx := 0; idx < length; idx++ {
		if idx > 0 && unicode.IsUpper(runes[idx]) &&
			((idx+1 < length && unicode.IsLower(runes[idx+1])) || unicode.IsLower(runes[idx-1])) {
			out = append(out, '_')
		}

		out = append(out, unicode.ToLower(runes[idx]))
	}

	return string(out)
}

// ToLowerCamelCase converts a name to lowerCamelCase, lowering a leading acronym: "IDNumber" → "idNumber"
func ToLowerCamelCase(in string) string {
	runes := []rune(in)
	out := make([]rune, len(runes))

	for i, curr := range runes {
		if !unicode.IsUpper(curr) {
			copy(out[i:], runes[i:])
			break
		}
		// the last capital of an acronym starts the next word
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			copy(out[i:], runes[i:])
			break
		}
		out[i] = unicode.ToLower(curr)
	}

	return string(out)
}

// ApplyNamingStrategy applies the specified naming strategy to a member name
func ApplyNamingStrategy(name string, strategy string) string {
	switch strategy {
	case SnakeCase:
		return ToSnakeCase(name)
	case PascalCase:
		return name
	default:
		return ToLowerCamelCase(name)
	}
}
