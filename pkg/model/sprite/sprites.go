package sprite

type Front struct {
	Default Sprite  `json:"front_default"`
	Shiny   *Sprite `json:"front_shiny,omitempty"`
}

// Sprites mirrors the sprite document PokeAPI attaches to a pokemon.
type Sprites struct {
	Front
}

func New(front Sprite) Sprites {
	return Sprites{Front: Front{Default: front}}
}
