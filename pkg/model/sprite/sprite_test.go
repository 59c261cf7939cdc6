package sprite

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	assert.True(t, Sprite("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/25.png").IsRemote())
	assert.True(t, Sprite("http://example.com/1.png").IsRemote())
	assert.False(t, Sprite("sprites/25.png").IsRemote())
	assert.False(t, Sprite("").IsRemote())
}

func TestFilepath(t *testing.T) {
	p, err := Sprite("sprites/25.png").Filepath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, "25.png", filepath.Base(p))
}

func TestSpritesJSON(t *testing.T) {
	var s Sprites
	require.NoError(t, json.Unmarshal([]byte(`{"front_default": "a.png", "back_default": "b.png"}`), &s))
	assert.Equal(t, Sprite("a.png"), s.Front.Default)
	assert.Nil(t, s.Shiny)

	out, err := json.Marshal(New("c.png"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"front_default": "c.png"}`, string(out))
}
