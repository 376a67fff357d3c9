package deck

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNewRejectsEmptyDeck(t *testing.T) {
	_, err := New([]int{}, newTestRand())
	assert.Error(t, err)
}

func TestDrawConsumesTheWholePile(t *testing.T) {
	assert := assert.New(t)

	cards := []string{"a", "b", "c", "d"}
	d, err := New(cards, newTestRand())
	require.NoError(t, err)
	assert.Equal(4, d.Len())

	seen := make(map[string]int)
	for range 4 {
		seen[d.Draw()]++
	}
	assert.Equal(0, d.Len())

	// Embaralhar muda a ordem, nunca o conteúdo.
	for _, c := range cards {
		assert.Equal(1, seen[c], "card %q should come out exactly once", c)
	}
}

func TestDrawReshufflesFromBackup(t *testing.T) {
	assert := assert.New(t)

	d, err := New([]int{1, 2, 3}, newTestRand())
	require.NoError(t, err)

	for range 3 {
		d.Draw()
	}
	assert.Equal(0, d.Len())

	// A pilha acabou mas o baralho nunca nega uma compra.
	seen := map[int]int{d.Draw(): 1}
	assert.Equal(2, d.Len())
	seen[d.Draw()]++
	seen[d.Draw()]++
	for _, n := range []int{1, 2, 3} {
		assert.Equal(1, seen[n])
	}
}

func TestPutBackGoesToTheBottom(t *testing.T) {
	assert := assert.New(t)

	d, err := New([]int{10, 20, 30}, newTestRand())
	require.NoError(t, err)

	first := d.Draw()
	d.PutBack(first)
	assert.Equal(3, d.Len())

	// A carta devolvida só volta depois das outras duas.
	d.Draw()
	d.Draw()
	assert.Equal(first, d.Draw())
}
