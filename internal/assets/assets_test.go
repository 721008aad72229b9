package assets

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/render"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func TestLoadFSSkipsUnreadableImages(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/cards.hcl": {Data: []byte(`
image "card_back" {
  path = "cards/card_back.txt"
}

image "ace_of_spades" {
  path = "cards/ace_of_spades.txt"
}

image "king_of_hearts" {
  path = "cards/missing.txt"
}
`)},
		"assets/cards/card_back.txt":     {Data: []byte("##")},
		"assets/cards/ace_of_spades.txt": {Data: []byte("A♠")},
	}

	store, err := LoadFS(context.Background(), fsys, "assets/cards.hcl", quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"ace_of_spades", "card_back"}, store.Names())

	face, err := store.Face("ace_of_spades")
	require.NoError(t, err)
	assert.Equal(t, "A♠", string(face))

	_, err = store.Face("king_of_hearts")
	assert.ErrorIs(t, err, ErrMissingAsset)
}

func TestLoadFSManifestErrors(t *testing.T) {
	_, err := LoadFS(context.Background(), fstest.MapFS{}, "cards.hcl", quietLogger())
	assert.Error(t, err)

	bad := fstest.MapFS{"cards.hcl": {Data: []byte(`image "x" {}`)}}
	_, err = LoadFS(context.Background(), bad, "cards.hcl", quietLogger())
	assert.ErrorContains(t, err, "decode")

	dup := fstest.MapFS{"cards.hcl": {Data: []byte(`
image "x" { path = "a" }
image "x" { path = "b" }
`)}}
	_, err = LoadFS(context.Background(), dup, "cards.hcl", quietLogger())
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoadMissingManifestIsEmpty(t *testing.T) {
	store, err := Load(context.Background(), filepath.Join(t.TempDir(), "cards.hcl"), quietLogger())
	require.NoError(t, err)
	assert.Zero(t, store.Len())
}

func TestBundledManifestCoversDeck(t *testing.T) {
	manifest := filepath.Join("..", "..", "assets", "cards.hcl")
	if _, err := os.Stat(manifest); err != nil {
		t.Skip("bundled assets not present")
	}

	store, err := Load(context.Background(), manifest, quietLogger())
	require.NoError(t, err)

	d := deck.NewDeck(nil)
	for _, c := range d.Cards() {
		_, err := store.Face(c.Name())
		assert.NoError(t, err, c.Name())
	}
	_, err = store.Face(render.BackFace)
	assert.NoError(t, err)
	assert.Equal(t, deck.Size+1, store.Len())
}

func TestStoreDegradesSceneVisuals(t *testing.T) {
	store := NewStore(map[string][]byte{
		render.BackFace: []byte("##"),
		"2_of_clubs":    []byte("2♣"),
	})
	scene := render.NewScene(store, 0, 0, quietLogger())

	ok := scene.Create("2_of_clubs")
	blank := scene.Create("3_of_clubs")

	assert.False(t, ok.Blank)
	assert.True(t, blank.Blank)
}
