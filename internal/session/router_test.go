package session

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bottomline/internal/game"
	"bottomline/internal/game/card"
	"bottomline/internal/game/player"
	"bottomline/internal/network"
	"bottomline/internal/session/message"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(5, 13))
}

func testCatalog(t *testing.T) *card.Catalog {
	t.Helper()
	catalog, err := card.LoadDefault()
	require.NoError(t, err)
	return catalog
}

func lobbyState(t *testing.T, n int) *game.State {
	t.Helper()

	state := game.NewState()
	lobby, err := state.Lobby()
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := lobby.Join(fmt.Sprintf("player %d", i))
		require.NoError(t, err)
	}
	return state
}

// roundState leva um lobby de n jogadores até a rodada, com cada jogador
// escolhendo o primeiro personagem disponível.
func roundState(t *testing.T, n int) (*game.State, *card.Catalog, *rand.Rand) {
	t.Helper()

	state := lobbyState(t, n)
	catalog := testCatalog(t)
	rng := newTestRand()
	require.NoError(t, state.StartGame(catalog, rng))

	for state.Phase() == game.PhaseSelectingCharacters {
		selecting, err := state.SelectingCharacters()
		require.NoError(t, err)
		id := selecting.CurrentlySelecting()
		characters, err := selecting.SelectableCharacters(id)
		require.NoError(t, err)
		require.NoError(t, state.SelectCharacter(id, characters[0]))
	}
	require.Equal(t, game.PhaseRound, state.Phase())
	return state, catalog, rng
}

// playTurn joga o turno do jogador da vez direto na engine: compra três
// cartas, devolve uma e encerra.
func playTurn(t *testing.T, state *game.State) {
	t.Helper()

	round, err := state.Round()
	require.NoError(t, err)
	id := round.CurrentPlayer().ID()

	for _, kind := range []card.Type{card.TypeAsset, card.TypeLiability, card.TypeAsset} {
		_, err := round.DrawCard(id, kind)
		require.NoError(t, err)
	}
	_, err = round.GiveBackCard(id, len(round.CurrentPlayer().Hand())-1)
	require.NoError(t, err)

	_, err = state.EndTurn(id)
	require.NoError(t, err)
}

func request(t *testing.T, action string, payload any) network.Message {
	t.Helper()
	if payload == nil {
		return network.Message{Action: action}
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return network.Message{Action: action, Data: raw}
}

func TestUnknownActionOnlyAnswersTheActor(t *testing.T) {
	state := lobbyState(t, 4)

	fanout, direct := handleRequest(state, testCatalog(t), newTestRand(), 0, network.Message{Action: "Bogus"})

	assert.Empty(t, fanout)
	assert.Equal(t, message.ActionError, direct.Action)
}

func TestGameErrorsProduceNoFanout(t *testing.T) {
	state, catalog, rng := roundState(t, 4)
	round, err := state.Round()
	require.NoError(t, err)

	// Um jogador fora da vez tentando comprar carta.
	var outOfTurn player.ID
	for _, p := range round.Players() {
		if p.ID() != round.CurrentPlayer().ID() {
			outOfTurn = p.ID()
			break
		}
	}

	msg := request(t, message.ActionDrawCard, message.DrawCardRequest{CardType: card.TypeAsset})
	fanout, direct := handleRequest(state, catalog, rng, outOfTurn, msg)

	assert.Empty(t, fanout)
	assert.Equal(t, message.ActionError, direct.Action)
}

func TestStartGameFanoutHidesDraftSecrets(t *testing.T) {
	state := lobbyState(t, 4)

	fanout, direct := handleRequest(state, testCatalog(t), newTestRand(), 0, request(t, message.ActionStartGame, nil))
	assert.Equal(t, message.ActionYouStartedGame, direct.Action)

	selecting, err := state.SelectingCharacters()
	require.NoError(t, err)
	chairman := selecting.Chairman()
	assert.Equal(t, chairman, selecting.CurrentlySelecting())

	require.Len(t, fanout, 4)
	for id, msgs := range fanout {
		require.Len(t, msgs, 2)
		assert.Equal(t, message.ActionGameStarted, msgs[0].Action)
		assert.Equal(t, message.ActionSelecting, msgs[1].Action)

		var view message.Selecting
		require.NoError(t, json.Unmarshal(msgs[1].Data, &view))
		assert.Equal(t, chairman, view.ChairmanID)
		if id == chairman {
			// O chairman escolhe primeiro e é o único que vê a carta fechada.
			assert.NotEmpty(t, view.SelectableCharacters)
			assert.NotNil(t, view.ClosedCharacter)
		} else {
			assert.Empty(t, view.SelectableCharacters)
			assert.Nil(t, view.ClosedCharacter)
		}
	}
}

func TestSelectCharacterAdvancesTheDraftForEveryone(t *testing.T) {
	state := lobbyState(t, 4)
	catalog := testCatalog(t)
	rng := newTestRand()
	require.NoError(t, state.StartGame(catalog, rng))

	selecting, err := state.SelectingCharacters()
	require.NoError(t, err)
	first := selecting.CurrentlySelecting()
	characters, err := selecting.SelectableCharacters(first)
	require.NoError(t, err)

	msg := request(t, message.ActionSelectCharacter, message.SelectCharacterRequest{Character: characters[0]})
	fanout, direct := handleRequest(state, catalog, rng, first, msg)
	assert.Equal(t, message.ActionYouSelectedCharacter, direct.Action)

	selecting, err = state.SelectingCharacters()
	require.NoError(t, err)
	next := selecting.CurrentlySelecting()
	require.NotEqual(t, first, next)

	require.Len(t, fanout, 4)
	for id, msgs := range fanout {
		require.Len(t, msgs, 1)
		require.Equal(t, message.ActionSelectedChar, msgs[0].Action)

		var view struct {
			CurrentlyPickingID   *player.ID         `json:"currently_picking_id"`
			SelectableCharacters []player.Character `json:"selectable_characters"`
		}
		require.NoError(t, json.Unmarshal(msgs[0].Data, &view))
		require.NotNil(t, view.CurrentlyPickingID)
		assert.Equal(t, next, *view.CurrentlyPickingID)
		if id == next {
			assert.NotEmpty(t, view.SelectableCharacters)
			assert.NotContains(t, view.SelectableCharacters, characters[0])
		} else {
			assert.Empty(t, view.SelectableCharacters)
		}
	}
}

func TestDrawCardNotifiesEveryoneButTheActor(t *testing.T) {
	state, catalog, rng := roundState(t, 4)
	round, err := state.Round()
	require.NoError(t, err)
	actor := round.CurrentPlayer().ID()

	msg := request(t, message.ActionDrawCard, message.DrawCardRequest{CardType: card.TypeAsset})
	fanout, direct := handleRequest(state, catalog, rng, actor, msg)

	assert.Equal(t, message.ActionYouDrewCard, direct.Action)
	require.Len(t, fanout, 3)
	_, ok := fanout[actor]
	assert.False(t, ok)
	for _, msgs := range fanout {
		require.Len(t, msgs, 1)
		assert.Equal(t, message.ActionDrewCard, msgs[0].Action)
	}
}

func TestEndTurnBroadcastsTheNextTurnToAll(t *testing.T) {
	state, catalog, rng := roundState(t, 4)
	round, err := state.Round()
	require.NoError(t, err)
	actor := round.CurrentPlayer().ID()

	for _, kind := range []card.Type{card.TypeAsset, card.TypeLiability, card.TypeAsset} {
		_, err := round.DrawCard(actor, kind)
		require.NoError(t, err)
	}
	_, err = round.GiveBackCard(actor, len(round.CurrentPlayer().Hand())-1)
	require.NoError(t, err)

	fanout, direct := handleRequest(state, catalog, rng, actor, request(t, message.ActionEndTurn, nil))

	assert.Equal(t, message.ActionYouEndedTurn, direct.Action)
	require.Equal(t, game.PhaseRound, state.Phase())
	require.Len(t, fanout, 4)
	for _, msgs := range fanout {
		require.Len(t, msgs, 1)
		assert.Equal(t, message.ActionTurnStarts, msgs[0].Action)
	}
}

// roundWithRegulator monta uma rodada de 7 jogadores em que alguém segura o
// Regulator e avança os turnos até chegar a vez dele. O personagem fechado
// do draft pode engolir o Regulator, então tenta com outras seeds se
// preciso.
func roundWithRegulator(t *testing.T) (*game.State, *card.Catalog, *rand.Rand, player.ID) {
	t.Helper()
	catalog := testCatalog(t)

	for seed := uint64(0); seed < 32; seed++ {
		state := lobbyState(t, 7)
		rng := rand.New(rand.NewPCG(seed, seed+1))
		require.NoError(t, state.StartGame(catalog, rng))

		for state.Phase() == game.PhaseSelectingCharacters {
			selecting, err := state.SelectingCharacters()
			require.NoError(t, err)
			id := selecting.CurrentlySelecting()
			characters, err := selecting.SelectableCharacters(id)
			require.NoError(t, err)

			pick := characters[0]
			if slices.Contains(characters, player.Regulator) {
				pick = player.Regulator
			}
			require.NoError(t, state.SelectCharacter(id, pick))
		}

		round, err := state.Round()
		require.NoError(t, err)
		regulator := round.PlayerFromCharacter(player.Regulator)
		if regulator == nil {
			continue
		}

		for round.CurrentPlayer().ID() != regulator.ID() {
			playTurn(t, state)
		}
		return state, catalog, rng, regulator.ID()
	}

	t.Fatal("nenhuma seed entregou o Regulator a um jogador")
	return nil, nil, nil, 0
}

func TestSwapWithPlayerSendsTheNewHandOnlyToTheTarget(t *testing.T) {
	state, catalog, rng, regulator := roundWithRegulator(t)
	round, err := state.Round()
	require.NoError(t, err)

	var target player.ID
	for _, p := range round.Players() {
		if p.ID() != regulator {
			target = p.ID()
			break
		}
	}

	msg := request(t, message.ActionSwapWithPlayer, message.SwapWithPlayerRequest{TargetPlayerID: target})
	fanout, direct := handleRequest(state, catalog, rng, regulator, msg)

	assert.Equal(t, message.ActionYouSwapPlayer, direct.Action)
	require.Len(t, fanout, 6)
	_, ok := fanout[regulator]
	assert.False(t, ok)

	for id, msgs := range fanout {
		require.Len(t, msgs, 1)
		if id == target {
			assert.Equal(t, message.ActionRegulatorSwap, msgs[0].Action)
		} else {
			assert.Equal(t, message.ActionSwappedPlayer, msgs[0].Action)
		}
	}
}
