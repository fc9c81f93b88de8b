// Package selector picks the members of a composite type that are eligible for
// documentation and puts them in their resolved order.
package selector

import (
	"fmt"
	"sort"

	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/source"
)

// Candidate is a member eligible for documentation.
type Candidate struct {
	Member source.MemberHandle

	// Name is the merge key
	Name string

	// Order is the explicit order, math.MaxInt when absent
	Order int

	// Explicit reports whether Order was declared
	Explicit bool

	// Position is the encounter index within ListMembers
	Position int
}

// excluded members are never documented
const excluded = source.Constructor | source.Static | source.Private

// Selector chooses members through a source.Index. It is safe for concurrent use.
type Selector struct {
	index source.Index
}

// New creates a selector.
func New(index source.Index) *Selector {
	return &Selector{index: index}
}

// Methods returns the documentable methods of owner.
func (s *Selector) Methods(owner source.TypeHandle) ([]Candidate, error) {
	return s.candidates(owner, source.MemberMethod)
}

// Fields returns the documentable fields of owner.
func (s *Selector) Fields(owner source.TypeHandle) ([]Candidate, error) {
	return s.candidates(owner, source.MemberField)
}

func (s *Selector) candidates(owner source.TypeHandle, kind source.MemberKind) ([]Candidate, error) {
	members, err := s.index.ListMembers(owner)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	var out []Candidate
	byName := make(map[string]int)

	for position, member := range members {
		if s.index.MemberKind(member) != kind {
			continue
		}
		// Generated members are documented like hand written ones
		if s.index.MemberModifiers(member)&excluded != 0 {
			continue
		}

		order, explicit := s.index.ExplicitOrderOf(member)
		if !explicit {
			order = comment.DefaultOrder
		}
		c := Candidate{
			Member:   member,
			Name:     s.index.MemberName(member),
			Order:    order,
			Explicit: explicit,
			Position: position,
		}

		if i, ok := byName[c.Name]; ok {
			// lower order wins, ties keep the first encountered
			if c.Order < out[i].Order {
				out[i] = c
			}
			continue
		}
		byName[c.Name] = len(out)
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})

	return out, nil
}

// Names returns the candidate names in order.
func Names(candidates []Candidate) []string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return names
}
