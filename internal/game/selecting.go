package game

import (
	"math/rand/v2"

	"bottomline/internal/game/card"
	"bottomline/internal/game/deck"
	"bottomline/internal/game/player"
)

// SelectingCharacters é a fase de escolha de personagens. Os jogadores
// escolhem um a um, na ordem de mesa a partir do chairman; quando o último
// escolhe, a rodada começa.
type SelectingCharacters struct {
	players       []player.SelectingPlayer
	draft         *draft
	assets        *deck.Deck[card.Asset]
	liabilities   *deck.Deck[card.Liability]
	markets       *deck.Deck[card.MarketEvent]
	chairman      player.ID
	currentMarket card.Market
	currentEvents []card.Event
	rng           *rand.Rand
}

// Player devolve o jogador com o id pedido.
func (s *SelectingCharacters) Player(id player.ID) (*player.SelectingPlayer, error) {
	if int(id) < 0 || int(id) >= len(s.players) {
		return nil, &InvalidPlayerIDError{ID: id}
	}
	return &s.players[id], nil
}

// PlayerByName devolve o jogador com o nome pedido.
func (s *SelectingCharacters) PlayerByName(name string) (*player.SelectingPlayer, error) {
	for i := range s.players {
		if s.players[i].Name() == name {
			return &s.players[i], nil
		}
	}
	return nil, &InvalidPlayerNameError{Name: name}
}

// Players devolve todos os jogadores na ordem de id.
func (s *SelectingCharacters) Players() []player.SelectingPlayer {
	return s.players
}

// Chairman devolve o id do chairman da rodada.
func (s *SelectingCharacters) Chairman() player.ID {
	return s.chairman
}

// CurrentlySelecting devolve o id do jogador que escolhe agora.
func (s *SelectingCharacters) CurrentlySelecting() player.ID {
	return s.draft.appliesTo()
}

// CurrentMarket devolve o mercado vigente.
func (s *SelectingCharacters) CurrentMarket() *card.Market {
	return &s.currentMarket
}

// OpenCharacters devolve os personagens que ninguém pode escolher nessa
// rodada.
func (s *SelectingCharacters) OpenCharacters() []player.Character {
	return s.draft.openCharacters()
}

// TurnOrder devolve a ordem de escolha: começa no chairman e dá a volta na
// mesa.
func (s *SelectingCharacters) TurnOrder() []player.ID {
	order := make([]player.ID, 0, len(s.players))
	for i := range s.players {
		order = append(order, player.ID((int(s.chairman)+i)%len(s.players)))
	}
	return order
}

// PlayerInfo devolve a visão pública de todos os jogadores, menos o próprio.
func (s *SelectingCharacters) PlayerInfo(id player.ID) []player.PublicInfo {
	infos := make([]player.PublicInfo, 0, len(s.players))
	for i := range s.players {
		if s.players[i].ID() != id {
			infos = append(infos, s.players[i].Info())
		}
	}
	return infos
}

// playerAsCurrent valida que o jogador existe e que é a vez dele de escolher.
func (s *SelectingCharacters) playerAsCurrent(id player.ID) (*player.SelectingPlayer, error) {
	p, err := s.Player(id)
	if err != nil {
		return nil, err
	}
	if id != s.CurrentlySelecting() {
		return nil, ErrNotPlayersTurn
	}
	return p, nil
}

// SelectableCharacters devolve os personagens que o jogador pode escolher, se
// for a vez dele.
func (s *SelectingCharacters) SelectableCharacters(id player.ID) ([]player.Character, error) {
	if _, err := s.playerAsCurrent(id); err != nil {
		return nil, err
	}

	pickable, err := s.draft.peek()
	if err != nil {
		return nil, err
	}
	return pickable.Characters, nil
}

// ClosedCharacter devolve o personagem fechado, que só o chairman vê e só na
// vez dele.
func (s *SelectingCharacters) ClosedCharacter(id player.ID) (player.Character, error) {
	if _, err := s.playerAsCurrent(id); err != nil {
		return 0, err
	}

	pickable, err := s.draft.peek()
	if err != nil {
		return 0, err
	}
	if pickable.Closed == nil {
		return 0, ErrNotChairman
	}
	return *pickable.Closed, nil
}

// selectCharacter registra a escolha do jogador da vez. Quando o último
// jogador escolhe, devolve a rodada montada: o primeiro a jogar é quem ficou
// com o menor personagem, e o turno dele já começa aqui.
func (s *SelectingCharacters) selectCharacter(id player.ID, c player.Character) (*Round, error) {
	p, err := s.playerAsCurrent(id)
	if err != nil {
		return nil, err
	}

	if err := s.draft.pick(c); err != nil {
		return nil, err
	}
	if err := p.SelectCharacter(c); err != nil {
		return nil, err
	}

	if !s.draft.done() {
		return nil, nil
	}

	players := make([]player.RoundPlayer, 0, len(s.players))
	for i := range s.players {
		rp, err := player.NewRoundPlayer(s.players[i])
		if err != nil {
			return nil, err
		}
		players = append(players, rp)
	}

	first := players[0].ID()
	lowest := players[0].Character()
	for i := range players {
		if players[i].Character() < lowest {
			lowest = players[i].Character()
			first = players[i].ID()
		}
	}

	round := &Round{
		currentPlayer:  first,
		players:        players,
		assets:         s.assets,
		liabilities:    s.liabilities,
		markets:        s.markets,
		chairman:       s.chairman,
		currentMarket:  s.currentMarket,
		currentEvents:  s.currentEvents,
		openCharacters: s.draft.openCharacters(),
		rng:            s.rng,
	}

	current, err := round.Player(first)
	if err != nil {
		return nil, err
	}
	current.StartTurn(&round.currentMarket)

	return round, nil
}
