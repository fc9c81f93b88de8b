package gen

import (
	"fmt"
	"path"
	"strings"

	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/loader"
	"github.com/griffnb/core-savior/internal/source"
)

// target is an owner selected for generation.
type target struct {
	loader.Owner

	// FileName is unique within one build
	FileName string
}

// SelectOwners returns the owners worth documenting: interfaces, types
// annotated @controller or @api, and types with at least one @router method.
// Non-empty globs further restrict the result by type name.
func SelectOwners(idx *loader.Index, globs []string) ([]loader.Owner, error) {
	extractor := comment.NewExtractor()

	var selected []loader.Owner
	for _, owner := range idx.Owners() {
		ok, err := matchOwner(owner.Name, globs)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if isAPI(idx, extractor, owner) {
			selected = append(selected, owner)
		}
	}
	return selected, nil
}

func matchOwner(name string, globs []string) (bool, error) {
	if len(globs) == 0 {
		return true, nil
	}
	for _, glob := range globs {
		ok, err := path.Match(glob, name)
		if err != nil {
			return false, fmt.Errorf("invalid owner pattern %q: %w", glob, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func isAPI(idx *loader.Index, extractor *comment.Extractor, owner loader.Owner) bool {
	if owner.Interface {
		return true
	}

	info := extractor.Extract(idx.DocumentationFor(owner.Type))
	if _, ok := info.Tag("controller"); ok {
		return true
	}
	if _, ok := info.Tag("api"); ok {
		return true
	}

	members, err := idx.ListMembers(owner.Type)
	if err != nil {
		return false
	}
	for _, m := range members {
		if idx.MemberKind(m) != source.MemberMethod {
			continue
		}
		if _, ok := extractor.Extract(idx.DocumentationFor(m)).Tag("router"); ok {
			return true
		}
	}
	return false
}

// targets names the output file of each owner, qualifying clashing names with the package name.
func targets(owners []loader.Owner) []target {
	count := make(map[string]int)
	for _, owner := range owners {
		count[owner.Name]++
	}

	out := make([]target, 0, len(owners))
	for _, owner := range owners {
		name := owner.Name
		if count[name] > 1 {
			name = path.Base(owner.Package) + "." + name
		}
		out = append(out, target{Owner: owner, FileName: strings.ReplaceAll(name, "/", "_")})
	}
	return out
}
