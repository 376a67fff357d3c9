// Package game implementa a máquina de estados de uma partida de The Bottom
// Line. Uma partida está sempre em exatamente uma de quatro fases: Lobby,
// SelectingCharacters, Round ou Results. O State guarda a fase atual e expõe
// só as transições; toda ação de jogo é um método do valor de fase obtido
// pelo acessor correspondente.
package game

import (
	"math/rand/v2"

	"bottomline/internal/game/card"
	"bottomline/internal/game/player"
)

// State é o agregado de fases. Exatamente um dos quatro ponteiros é não-nulo.
type State struct {
	lobby     *Lobby
	selecting *SelectingCharacters
	round     *Round
	results   *Results
}

// Phase identifica a fase atual de uma partida.
type Phase string

const (
	PhaseLobby               Phase = "Lobby"
	PhaseSelectingCharacters Phase = "SelectingCharacters"
	PhaseRound               Phase = "Round"
	PhaseResults             Phase = "Results"
)

// NewState cria uma partida nova. Toda partida começa no lobby vazio.
func NewState() *State {
	return &State{lobby: &Lobby{}}
}

// Phase devolve a fase atual.
func (s *State) Phase() Phase {
	switch {
	case s.selecting != nil:
		return PhaseSelectingCharacters
	case s.round != nil:
		return PhaseRound
	case s.results != nil:
		return PhaseResults
	default:
		return PhaseLobby
	}
}

// Lobby devolve a fase de lobby, ou ErrNotLobbyPhase se a partida já começou.
func (s *State) Lobby() (*Lobby, error) {
	if s.lobby == nil {
		return nil, ErrNotLobbyPhase
	}
	return s.lobby, nil
}

// SelectingCharacters devolve a fase de escolha de personagens, ou
// ErrNotSelectingCharactersPhase se a partida está em outra fase.
func (s *State) SelectingCharacters() (*SelectingCharacters, error) {
	if s.selecting == nil {
		return nil, ErrNotSelectingCharactersPhase
	}
	return s.selecting, nil
}

// Round devolve a fase de rodada, ou ErrNotRoundPhase se a partida está em
// outra fase.
func (s *State) Round() (*Round, error) {
	if s.round == nil {
		return nil, ErrNotRoundPhase
	}
	return s.round, nil
}

// Results devolve a fase de placar, ou ErrNotResultsPhase se a partida ainda
// não acabou.
func (s *State) Results() (*Results, error) {
	if s.results == nil {
		return nil, ErrNotResultsPhase
	}
	return s.results, nil
}

// StartGame inicia a partida se o lobby tiver entre 4 e 7 jogadores,
// transformando o Lobby em SelectingCharacters. Os baralhos saem do catálogo
// e são embaralhados com o rng da sala.
func (s *State) StartGame(catalog *card.Catalog, rng *rand.Rand) error {
	lobby, err := s.Lobby()
	if err != nil {
		return err
	}

	selecting, err := lobby.startGame(catalog, rng)
	if err != nil {
		return err
	}

	*s = State{selecting: selecting}
	return nil
}

// SelectCharacter registra a escolha de personagem do jogador. Se ele foi o
// último a escolher, a fase vira Round e o turno do primeiro jogador começa.
func (s *State) SelectCharacter(id player.ID, c player.Character) error {
	selecting, err := s.SelectingCharacters()
	if err != nil {
		return err
	}

	round, err := selecting.selectCharacter(id, c)
	if err != nil {
		return err
	}
	if round != nil {
		*s = State{round: round}
	}
	return nil
}

// EndTurn encerra o turno do jogador da vez. Se ele era o último da rodada, a
// fase vira SelectingCharacters (com o dono do CEO como chairman novo) ou,
// na rodada final, Results.
func (s *State) EndTurn(id player.ID) (TurnEnded, error) {
	round, err := s.Round()
	if err != nil {
		return TurnEnded{}, err
	}

	outcome, err := round.endTurn(id)
	if err != nil {
		return TurnEnded{}, err
	}

	switch {
	case outcome.selecting != nil:
		*s = State{selecting: outcome.selecting}
		return TurnEnded{}, nil
	case outcome.results != nil:
		*s = State{results: outcome.results}
		return TurnEnded{GameEnded: true}, nil
	default:
		return TurnEnded{NextPlayer: outcome.next}, nil
	}
}
