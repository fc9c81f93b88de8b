// Package comment turns raw declaration documentation into domain.CommentInfo
// records. Doc comment annotations, Go doc prose and struct tags are combined
// with struct tags taking precedence over annotations and annotations taking
// precedence over prose.
package comment

import (
	"strconv"
	"strings"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/source"
)

const deprecatedPrefix = "Deprecated:"

// Extractor builds CommentInfo records. It holds no state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds the documentation record of one declaration. It never returns nil.
func (e *Extractor) Extract(doc source.Documentation) *domain.CommentInfo {
	info := &domain.CommentInfo{}

	prose, annotatedDescription := e.parseText(info, doc.Text)

	switch {
	case annotatedDescription != "":
		info.Description = annotatedDescription
	default:
		info.Description = prose
	}

	e.applyTags(info, ParseTags(doc.Tag))

	return info
}

// parseText walks the doc comment line by line, filling annotations into info
// and returning the remaining prose and any @description text.
func (e *Extractor) parseText(info *domain.CommentInfo, text string) (prose string, description string) {
	var (
		proseLines      []string
		descriptionBits []string
		inDeprecated    bool
	)

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)

		if line == "" {
			inDeprecated = false
			proseLines = append(proseLines, "")
			continue
		}

		if !strings.HasPrefix(line, "@") {
			if strings.HasPrefix(line, deprecatedPrefix) {
				info.Deprecated = true
				inDeprecated = true
			}
			if !inDeprecated {
				proseLines = append(proseLines, line)
			}
			continue
		}
		inDeprecated = false

		attribute, lineRemainder := splitAnnotation(line)

		switch attribute {
		case "@name", "@displayname", "@title":
			info.DisplayName = lineRemainder
		case "@description":
			descriptionBits = append(descriptionBits, lineRemainder)
		case "@example":
			info.Example = lineRemainder
		case "@hidden":
			info.Hidden = parseFlag(lineRemainder)
		case "@required":
			info.Required = parseFlag(lineRemainder)
		case "@deprecated":
			info.Deprecated = parseFlag(lineRemainder)
		case "@hiddenfields":
			info.HiddenFields = domain.OrderedSet(info.HiddenFields, parseList(lineRemainder))
		case "@onlyfields":
			info.OnlyFields = domain.OrderedSet(info.OnlyFields, parseList(lineRemainder))
		case "@hiddenrequest":
			info.HiddenRequest = domain.OrderedSet(info.HiddenRequest, parseList(lineRemainder))
		case "@onlyrequest":
			info.OnlyRequest = domain.OrderedSet(info.OnlyRequest, parseList(lineRemainder))
		case "@hiddenresponse":
			info.HiddenResponse = domain.OrderedSet(info.HiddenResponse, parseList(lineRemainder))
		case "@onlyresponse":
			info.OnlyResponse = domain.OrderedSet(info.OnlyResponse, parseList(lineRemainder))
		case "@actionname":
			info.ActionName = lineRemainder
		case "@param":
			e.parseParam(info, lineRemainder)
		default:
			if info.Tags == nil {
				info.Tags = make(map[string][]string)
			}
			key := strings.TrimPrefix(attribute, "@")
			info.Tags[key] = append(info.Tags[key], lineRemainder)
		}
	}

	return joinProse(proseLines), strings.Join(descriptionBits, "\n")
}

// parseParam parses "@param name the description"
func (e *Extractor) parseParam(info *domain.CommentInfo, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	if info.Params == nil {
		info.Params = make(map[string]string)
	}
	info.Params[fields[0]] = strings.Join(fields[1:], " ")
}

// applyTags overrides annotation values with struct tag values.
func (e *Extractor) applyTags(info *domain.CommentInfo, tags TagInfo) {
	if tags.Title != "" {
		info.DisplayName = tags.Title
	}
	if tags.Description != "" {
		info.Description = tags.Description
	}
	if tags.Example != "" {
		info.Example = tags.Example
	}
	if tags.HasHidden {
		info.Hidden = tags.Hidden
	}
	if tags.Required {
		info.Required = true
	}
	if len(tags.AllowedValues) > 0 {
		info.AllowedValues = tags.AllowedValues
	}
}

// splitAnnotation splits "@Attr rest of line" into ("@attr", "rest of line").
func splitAnnotation(line string) (attribute string, lineRemainder string) {
	allFields := strings.Fields(strings.TrimSpace(line))
	if len(allFields) == 0 {
		return "", ""
	}
	attribute = strings.ToLower(allFields[0])
	if len(allFields) > 1 {
		lineRemainder = strings.Join(allFields[1:], " ")
	}
	return attribute, lineRemainder
}

// parseFlag treats a bare annotation as true.
func parseFlag(value string) bool {
	if value == "" {
		return true
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return b
}

// parseList splits a comma and/or space separated list
func parseList(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// joinProse joins prose lines into paragraphs, dropping leading, trailing and repeated blank lines.
func joinProse(lines []string) string {
	var paragraphs []string
	var current []string
	for _, line := range lines {
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}
	return strings.Join(paragraphs, "\n\n")
}
