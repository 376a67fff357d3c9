package game

import (
	"errors"
	"fmt"

	"bottomline/internal/game/player"
)

// Erros de fase: cada acessor de fase devolve o erro correspondente quando o
// jogo está em outra fase. O roteador de sessão usa isso para responder "ação
// fora de hora" sem precisar conhecer a fase atual.
var (
	ErrNotLobbyPhase               = errors.New("game is not in the lobby phase")
	ErrNotSelectingCharactersPhase = errors.New("game is not in the selecting characters phase")
	ErrNotRoundPhase               = errors.New("game is not in the round phase")
	ErrNotResultsPhase             = errors.New("game is not in the results phase")
)

// Erros de legalidade dentro de uma fase.
var (
	ErrNotPlayersTurn       = errors.New("it is not this player's turn")
	ErrShouldGiveBackCard   = errors.New("player still has cards to give back")
	ErrNotChairman          = errors.New("only the chairman sees the closed character")
	ErrDraftExhausted       = errors.New("every player has already selected a character")
	ErrUnavailableCharacter = errors.New("character is not available to select")
	ErrInvalidTargetPlayer  = errors.New("invalid target player")
	ErrNotStakeholder       = errors.New("only the stakeholder can force a divest")
)

// InvalidPlayerCountError indica que a partida não pode começar (ou que um
// draft não pode ser montado) com essa quantidade de jogadores.
type InvalidPlayerCountError struct {
	Count int
}

func (e *InvalidPlayerCountError) Error() string {
	return fmt.Sprintf("invalid player count %d, the game needs 4 to 7 players", e.Count)
}

// InvalidPlayerIDError indica que o id não corresponde a nenhum jogador.
type InvalidPlayerIDError struct {
	ID player.ID
}

func (e *InvalidPlayerIDError) Error() string {
	return fmt.Sprintf("no player with id %d", int(e.ID))
}

// InvalidPlayerNameError indica que o nome não corresponde a nenhum jogador.
type InvalidPlayerNameError struct {
	Name string
}

func (e *InvalidPlayerNameError) Error() string {
	return fmt.Sprintf("no player named %q", e.Name)
}

// UsernameTakenError indica que alguém no lobby já usa esse nome.
type UsernameTakenError struct {
	Name string
}

func (e *UsernameTakenError) Error() string {
	return fmt.Sprintf("username %q is already taken", e.Name)
}
