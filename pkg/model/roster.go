package model

import (
	"sort"
	"strings"

	"github.com/notjagan/typedex/pkg/typechart"
)

// Roster is the fixed, id ordered collection of every known pokemon. It is
// never modified after construction.
type Roster struct {
	pokemon []Pokemon
	byID    map[int]int
	byName  map[string]int
}

func NewRoster(pokemon []Pokemon) *Roster {
	sorted := make([]Pokemon, len(pokemon))
	copy(sorted, pokemon)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	r := &Roster{
		pokemon: sorted,
		byID:    make(map[int]int, len(sorted)),
		byName:  make(map[string]int, len(sorted)),
	}
	for i, p := range sorted {
		r.byID[p.ID] = i
		r.byName[strings.ToLower(p.Name)] = i
	}

	return r
}

func (r *Roster) Len() int {
	return len(r.pokemon)
}

// All returns a copy of the roster in id order.
func (r *Roster) All() []Pokemon {
	all := make([]Pokemon, len(r.pokemon))
	copy(all, r.pokemon)
	return all
}

// Find resolves a reference; names match case-insensitively.
func (r *Roster) Find(ref Ref) (Pokemon, bool) {
	var i int
	var ok bool
	switch ref := ref.(type) {
	case ByID:
		i, ok = r.byID[int(ref)]
	case ByName:
		i, ok = r.byName[strings.ToLower(strings.TrimSpace(string(ref)))]
	}
	if !ok {
		return Pokemon{}, false
	}

	return r.pokemon[i], true
}

// Query filters the roster. Zero fields match everything.
type Query struct {
	Name string
	Type typechart.Type
}

// Filter returns the pokemon whose name contains q.Name (ignoring case) and
// that have q.Type, in id order.
func (r *Roster) Filter(q Query) []Pokemon {
	name := strings.ToLower(q.Name)
	matches := make([]Pokemon, 0, len(r.pokemon))
	for _, p := range r.pokemon {
		if !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if q.Type != "" && !p.HasType(q.Type) {
			continue
		}
		matches = append(matches, p)
	}

	return matches
}

// Search returns up to limit pokemon whose name or display name starts with
// prefix, ordered by name.
func (r *Roster) Search(prefix string, limit int) []Pokemon {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	matches := make([]Pokemon, 0)
	for _, p := range r.pokemon {
		if strings.HasPrefix(p.Name, prefix) || strings.HasPrefix(strings.ToLower(p.DisplayName()), prefix) {
			matches = append(matches, p)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Name < matches[j].Name
	})
	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}

// Counters returns the roster members that counter target, see Counters.
func (r *Roster) Counters(target Pokemon, chart *typechart.Chart) []Pokemon {
	return Counters(target, r.pokemon, chart)
}
