package model

import "github.com/notjagan/typedex/pkg/typechart"

// Counters returns the members of roster, other than target, that both
// withstand and threaten it:
//
//   - at least one of target's types is at most neutral against at least one
//     of the candidate's types, each candidate type taken on its own;
//   - at least one of the candidate's types hits target's full type
//     combination for 2x or more.
//
// The defensive test looks at single candidate types, not the candidate's
// combined typing. Results follow roster order.
func Counters(target Pokemon, roster []Pokemon, chart *typechart.Chart) []Pokemon {
	counters := make([]Pokemon, 0)
	for _, candidate := range roster {
		if candidate.ID == target.ID {
			continue
		}

		if withstands(candidate, target, chart) && threatens(candidate, target, chart) {
			counters = append(counters, candidate)
		}
	}

	return counters
}

func withstands(candidate, target Pokemon, chart *typechart.Chart) bool {
	for _, attack := range target.Types {
		for _, defend := range candidate.Types {
			if chart.Effectiveness(attack, defend) <= typechart.Neutral {
				return true
			}
		}
	}

	return false
}

func threatens(candidate, target Pokemon, chart *typechart.Chart) bool {
	for _, attack := range candidate.Types {
		if chart.Effectiveness(attack, target.Types...) >= 2 {
			return true
		}
	}

	return false
}
