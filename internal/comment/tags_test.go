package comment

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseJSONTag tests parsing JSON struct tags
func TestParseJSONTag(t *testing.T) {
	tests := []struct {
		name          string
		tag           string
		wantName      string
		wantOmitEmpty bool
		wantIgnore    bool
	}{
		{"Simple JSON tag", `json:"first_name"`, "first_name", false, false},
		{"JSON tag with omitempty", `json:"count,omitempty"`, "count", true, false},
		{"JSON tag with ignore", `json:"-"`, "", false, true},
		{"JSON dash name", `json:"-,"`, "-", false, false},
		{"JSON tag with spaces", `json:" name "`, "name", false, false},
		{"JSON tag with multiple options", `json:"value,omitempty,string"`, "value", true, false},
		{"No JSON tag", `form:"username"`, "", false, false},
		{"JSON tag with just omitempty", `json:",omitempty"`, "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, omitEmpty, ignore := ParseJSONTag(reflect.StructTag(tt.tag))
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantOmitEmpty, omitEmpty)
			assert.Equal(t, tt.wantIgnore, ignore)
		})
	}
}

func TestParseOneOfValues(t *testing.T) {
	assert.Equal(t, []string{"red", "green", "blue"}, parseOneOfValues("red green blue"))
	assert.Equal(t, []string{"value 1", "value 2"}, parseOneOfValues("'value 1' 'value 2'"))
	assert.Nil(t, parseOneOfValues(""))
}

func TestNaming(t *testing.T) {
	tests := []struct {
		in       string
		strategy string
		want     string
	}{
		{"FirstName", CamelCase, "firstName"},
		{"IDNumber", CamelCase, "idNumber"},
		{"ID", CamelCase, "id"},
		{"URL", "", "url"},
		{"FirstName", SnakeCase, "first_name"},
		{"HTTPServer", SnakeCase, "http_server"},
		{"FirstName", PascalCase, "FirstName"},
	}

	for _, tt := range tests {
		t.Run(tt.in+"/"+tt.strategy, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyNamingStrategy(tt.in, tt.strategy))
		})
	}
}
