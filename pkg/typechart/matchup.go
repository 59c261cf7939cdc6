package typechart

import "sort"

// Matchup is how effective a single attacking type is against a defender.
type Matchup struct {
	Type       Type       `json:"type"`
	Multiplier Multiplier `json:"multiplier"`
}

func (m Matchup) Category() Category {
	return Categorize(m.Multiplier)
}

// Matchups computes the effectiveness of every attacking type in the chart
// against a defender with the given types, most dangerous first. Ties keep
// the chart's declaration order.
func (c *Chart) Matchups(defenders ...Type) []Matchup {
	types := c.Types()
	matchups := make([]Matchup, len(types))
	for i, attack := range types {
		matchups[i] = Matchup{
			Type:       attack,
			Multiplier: c.Effectiveness(attack, defenders...),
		}
	}

	sortDescending(matchups)
	return matchups
}

// Coverage computes the effectiveness of a single attacking type against
// every type of the chart taken as a lone defender, strongest first.
func (c *Chart) Coverage(attack Type) []Matchup {
	types := c.Types()
	matchups := make([]Matchup, len(types))
	for i, defend := range types {
		matchups[i] = Matchup{
			Type:       defend,
			Multiplier: c.Lookup(attack, defend),
		}
	}

	sortDescending(matchups)
	return matchups
}

func sortDescending(matchups []Matchup) {
	sort.SliceStable(matchups, func(i, j int) bool {
		return matchups[i].Multiplier > matchups[j].Multiplier
	})
}

// Grouped splits a matchup list by category for display.
type Grouped struct {
	Weaknesses  []Matchup
	Neutral     []Matchup
	Resistances []Matchup
	Immunities  []Matchup
}

// Group buckets matchups by category, keeping their relative order.
func Group(matchups []Matchup) Grouped {
	var g Grouped
	for _, m := range matchups {
		switch m.Category() {
		case CategoryWeak:
			g.Weaknesses = append(g.Weaknesses, m)
		case CategoryResistant:
			g.Resistances = append(g.Resistances, m)
		case CategoryImmune:
			g.Immunities = append(g.Immunities, m)
		default:
			g.Neutral = append(g.Neutral, m)
		}
	}

	return g
}
