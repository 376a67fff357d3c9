package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bottomline/internal/game/player"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestDraftOpenCounts(t *testing.T) {
	rng := newTestRand()

	counts := map[int]int{4: 2, 5: 1, 6: 0, 7: 0}
	for playerCount, open := range counts {
		d, err := newDraft(playerCount, 0, rng)
		require.NoError(t, err)
		assert.Len(t, d.openCharacters(), open)
	}

	for _, playerCount := range []int{0, 1, 2, 3, 8, 12} {
		_, err := newDraft(playerCount, 0, rng)
		var countErr *InvalidPlayerCountError
		require.ErrorAs(t, err, &countErr)
		assert.Equal(t, playerCount, countErr.Count)
	}
}

func TestDraftCEONeverOpen(t *testing.T) {
	for seed := range uint64(256) {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		for playerCount := 4; playerCount <= 7; playerCount++ {
			d, err := newDraft(playerCount, 0, rng)
			require.NoError(t, err)
			assert.NotContains(t, d.openCharacters(), player.CEO)
		}
	}
}

func TestDraftPickFlow(t *testing.T) {
	const playerCount = 4

	d, err := newDraft(playerCount, 2, newTestRand())
	require.NoError(t, err)

	// Com 4 jogadores: 8 personagens, 2 abertos, 1 fechado, 5 na pilha.
	first, err := d.peek()
	require.NoError(t, err)
	assert.Len(t, first.Characters, 5)
	require.NotNil(t, first.Closed, "o chairman vê o personagem fechado")
	closed := *first.Closed

	// O chairman escolhe; a vez começa nele e dá a volta na mesa.
	assert.Equal(t, player.ID(2), d.appliesTo())
	require.NoError(t, d.pick(first.Characters[0]))
	assert.Equal(t, player.ID(3), d.appliesTo())

	second, err := d.peek()
	require.NoError(t, err)
	assert.Len(t, second.Characters, 4)
	assert.Nil(t, second.Closed)
	require.NoError(t, d.pick(second.Characters[0]))
	assert.Equal(t, player.ID(0), d.appliesTo())

	third, err := d.peek()
	require.NoError(t, err)
	assert.Len(t, third.Characters, 3)
	assert.ErrorIs(t, d.pick(first.Characters[0]), ErrUnavailableCharacter)
	require.NoError(t, d.pick(third.Characters[0]))

	// O último a escolher recebe o fechado de volta na lista.
	last, err := d.peek()
	require.NoError(t, err)
	assert.Len(t, last.Characters, 3)
	assert.Contains(t, last.Characters, closed)
	assert.Nil(t, last.Closed)
	require.NoError(t, d.pick(closed))

	require.True(t, d.done())
	_, err = d.peek()
	assert.ErrorIs(t, err, ErrDraftExhausted)
	assert.ErrorIs(t, d.pick(closed), ErrDraftExhausted)
}
