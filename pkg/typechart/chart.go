// Package typechart resolves type effectiveness multipliers from a static
// attacking/defending matrix.
package typechart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Type is an elemental type identifier such as "fire" or "water".
type Type string

// Normalize returns the canonical (lower case, trimmed) form of the type.
func (typ Type) Normalize() Type {
	return Type(strings.ToLower(strings.TrimSpace(string(typ))))
}

// Multiplier is the damage factor of an attacking type against a defender.
type Multiplier float64

// Neutral is returned for any pair the chart does not know about.
const Neutral Multiplier = 1

// Entry is a single cell of the matrix.
type Entry struct {
	Attack Type
	Defend Type
	Factor Multiplier
}

// Chart is an immutable attacking type -> defending type -> multiplier
// matrix. The order in which attacking types were first declared is kept and
// used as the base order for matchup lists.
type Chart struct {
	entries []Entry
	types   []Type
	factors map[Type]map[Type]Multiplier
}

// NewChart builds a chart from its entries. A later entry for the same pair
// replaces an earlier one in place.
func NewChart(entries []Entry) *Chart {
	return NewChartWithTypes(nil, entries)
}

// NewChartWithTypes builds a chart whose attacking types are types, in that
// order, followed by any other attacker named by entries. A type without
// entries is still part of the chart and is neutral against everything.
func NewChartWithTypes(types []Type, entries []Entry) *Chart {
	chart := &Chart{
		entries: make([]Entry, 0, len(entries)),
		factors: make(map[Type]map[Type]Multiplier, len(types)),
	}
	for _, typ := range types {
		chart.row(typ)
	}

	index := make(map[[2]Type]int, len(entries))
	for _, e := range entries {
		chart.row(e.Attack)[e.Defend] = e.Factor

		key := [2]Type{e.Attack, e.Defend}
		if i, ok := index[key]; ok {
			chart.entries[i] = e
			continue
		}
		index[key] = len(chart.entries)
		chart.entries = append(chart.entries, e)
	}

	return chart
}

func (c *Chart) row(attack Type) map[Type]Multiplier {
	row, ok := c.factors[attack]
	if !ok {
		row = make(map[Type]Multiplier)
		c.factors[attack] = row
		c.types = append(c.types, attack)
	}

	return row
}

// Lookup returns the multiplier of attack against a single defending type.
// Pairs absent from the chart, including unknown type names, are neutral.
func (c *Chart) Lookup(attack, defend Type) Multiplier {
	if c == nil {
		return Neutral
	}

	row, ok := c.factors[attack]
	if !ok {
		return Neutral
	}

	factor, ok := row[defend]
	if !ok {
		return Neutral
	}

	return factor
}

// Effectiveness returns the combined multiplier of attack against a defender
// with the given types: the product of the single-type lookups. An empty
// defender is neutral.
func (c *Chart) Effectiveness(attack Type, defenders ...Type) Multiplier {
	multiplier := Neutral
	for _, defend := range defenders {
		multiplier *= c.Lookup(attack, defend)
	}

	return multiplier
}

// Types returns the attacking types of the chart in declaration order.
func (c *Chart) Types() []Type {
	if c == nil {
		return nil
	}

	types := make([]Type, len(c.types))
	copy(types, c.types)
	return types
}

// Has reports whether typ is an attacking type of the chart.
func (c *Chart) Has(typ Type) bool {
	if c == nil {
		return false
	}

	_, ok := c.factors[typ]
	return ok
}

var ErrUnknownType = errors.New("unknown type")

// Parse resolves user input to a type of the chart, ignoring case.
func (c *Chart) Parse(s string) (Type, error) {
	typ := Type(s).Normalize()
	if !c.Has(typ) {
		return "", fmt.Errorf("type %q: %w", s, ErrUnknownType)
	}

	return typ, nil
}

// Entries returns every cell of the chart in declaration order.
func (c *Chart) Entries() []Entry {
	if c == nil {
		return nil
	}

	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// MarshalJSON encodes the chart as nested objects, preserving the
// declaration order of both levels.
func (c *Chart) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	rows := make(map[Type][]Entry, len(c.Types()))
	for _, e := range c.Entries() {
		rows[e.Attack] = append(rows[e.Attack], e)
	}

	for i, attack := range c.Types() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attack)
		if err != nil {
			return nil, fmt.Errorf("could not encode attacking type %q: %w", attack, err)
		}
		buf.Write(key)
		buf.WriteString(":{")

		for j, e := range rows[attack] {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(e.Defend)
			if err != nil {
				return nil, fmt.Errorf("could not encode defending type %q: %w", e.Defend, err)
			}
			value, err := json.Marshal(float64(e.Factor))
			if err != nil {
				return nil, fmt.Errorf("could not encode multiplier for %q against %q: %w", attack, e.Defend, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes nested objects keyed by attacking then defending
// type. Key order is kept; type names are normalized to lower case.
func (c *Chart) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	err := expectDelim(dec, '{')
	if err != nil {
		return fmt.Errorf("could not decode chart: %w", err)
	}

	var types []Type
	var entries []Entry
	for dec.More() {
		attack, err := typeKey(dec)
		if err != nil {
			return fmt.Errorf("could not decode attacking type: %w", err)
		}
		types = append(types, attack)

		err = expectDelim(dec, '{')
		if err != nil {
			return fmt.Errorf("could not decode row for %q: %w", attack, err)
		}

		for dec.More() {
			defend, err := typeKey(dec)
			if err != nil {
				return fmt.Errorf("could not decode defending type for %q: %w", attack, err)
			}

			var factor float64
			err = dec.Decode(&factor)
			if err != nil {
				return fmt.Errorf("could not decode multiplier for %q against %q: %w", attack, defend, err)
			}

			entries = append(entries, Entry{Attack: attack, Defend: defend, Factor: Multiplier(factor)})
		}

		err = expectDelim(dec, '}')
		if err != nil {
			return fmt.Errorf("could not decode row for %q: %w", attack, err)
		}
	}

	err = expectDelim(dec, '}')
	if err != nil {
		return fmt.Errorf("could not decode chart: %w", err)
	}

	*c = *NewChartWithTypes(types, entries)
	return nil
}

var errJSONShape = errors.New("unexpected json token")

func expectDelim(dec *json.Decoder, delim json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if d, ok := tok.(json.Delim); !ok || d != delim {
		return fmt.Errorf("got %v, want %q: %w", tok, delim, errJSONShape)
	}

	return nil
}

func typeKey(dec *json.Decoder) (Type, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}

	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("got %v, want object key: %w", tok, errJSONShape)
	}

	return Type(key).Normalize(), nil
}
