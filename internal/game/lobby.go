package game

import (
	"math/rand/v2"

	"bottomline/internal/game/card"
	"bottomline/internal/game/deck"
	"bottomline/internal/game/player"
)

// startingCash é o caixa com que cada jogador começa a partida.
const startingCash = 1

// Lobby é a fase de espera. Aqui jogadores entram e saem livremente; quando a
// mesa tem entre 4 e 7 jogadores, qualquer um pode iniciar a partida.
type Lobby struct {
	players []player.LobbyPlayer
}

// Len devolve quantos jogadores estão no lobby.
func (l *Lobby) Len() int {
	return len(l.players)
}

// Players devolve os jogadores do lobby na ordem de entrada.
func (l *Lobby) Players() []player.LobbyPlayer {
	return l.players
}

// Player devolve o jogador com o id pedido.
func (l *Lobby) Player(id player.ID) (*player.LobbyPlayer, error) {
	if int(id) < 0 || int(id) >= len(l.players) {
		return nil, &InvalidPlayerIDError{ID: id}
	}
	return &l.players[id], nil
}

// Usernames devolve os nomes dos jogadores, na ordem de entrada.
func (l *Lobby) Usernames() []string {
	names := make([]string, len(l.players))
	for i, p := range l.players {
		names[i] = p.Name()
	}
	return names
}

// Join adiciona um jogador ao lobby. O nome precisa ser único na mesa; o id
// do novo jogador é sempre o próximo índice livre.
func (l *Lobby) Join(username string) (*player.LobbyPlayer, error) {
	for _, p := range l.players {
		if p.Name() == username {
			return nil, &UsernameTakenError{Name: username}
		}
	}

	l.players = append(l.players, player.NewLobbyPlayer(player.ID(len(l.players)), username))
	return &l.players[len(l.players)-1], nil
}

// Leave remove um jogador pelo nome e informa se ele estava na mesa. Os ids
// dos jogadores restantes são reatribuídos para continuarem densos: o id
// sempre é igual ao índice na lista.
func (l *Lobby) Leave(username string) bool {
	for i, p := range l.players {
		if p.Name() == username {
			l.players = append(l.players[:i], l.players[i+1:]...)
			for j := range l.players {
				l.players[j].SetID(player.ID(j))
			}
			return true
		}
	}
	return false
}

// PlayerInfo devolve a visão pública de todos os jogadores, menos o próprio.
func (l *Lobby) PlayerInfo(id player.ID) []player.PublicInfo {
	infos := make([]player.PublicInfo, 0, len(l.players))
	for _, p := range l.players {
		if p.ID() != id {
			infos = append(infos, p.Info())
		}
	}
	return infos
}

// CanStart informa se a partida pode começar: entre 4 e 7 jogadores.
func (l *Lobby) CanStart() bool {
	return len(l.players) >= 4 && len(l.players) <= 7
}

// startGame monta a fase de escolha de personagens: embaralha os baralhos do
// catálogo, dá a cada jogador duas cartas de asset, duas de liability e o
// caixa inicial, separa a primeira carta de mercado como mercado vigente e
// inicia o draft com o jogador 0 como chairman.
func (l *Lobby) startGame(catalog *card.Catalog, rng *rand.Rand) (*SelectingCharacters, error) {
	if !l.CanStart() {
		return nil, &InvalidPlayerCountError{Count: len(l.players)}
	}

	assets, err := deck.New(catalog.Assets(), rng)
	if err != nil {
		return nil, err
	}
	liabilities, err := deck.New(catalog.Liabilities(), rng)
	if err != nil {
		return nil, err
	}

	currentMarket, rest := splitInitialMarket(catalog.MarketEvents())
	markets, err := deck.New(rest, rng)
	if err != nil {
		return nil, err
	}

	players := make([]player.SelectingPlayer, 0, len(l.players))
	for _, p := range l.players {
		dealtAssets := [2]card.Asset{assets.Draw(), assets.Draw()}
		dealtLiabilities := [2]card.Liability{liabilities.Draw(), liabilities.Draw()}
		players = append(players, player.NewSelectingPlayer(
			p.ID(), p.Name(), dealtAssets, dealtLiabilities, startingCash,
		))
	}

	chairman := player.ID(0)
	characterDraft, err := newDraft(len(players), chairman, rng)
	if err != nil {
		return nil, err
	}

	return &SelectingCharacters{
		players:       players,
		draft:         characterDraft,
		assets:        assets,
		liabilities:   liabilities,
		markets:       markets,
		chairman:      chairman,
		currentMarket: currentMarket,
		rng:           rng,
	}, nil
}

// splitInitialMarket tira a primeira carta de mercado da lista para servir de
// mercado inicial e devolve o resto, que vira o baralho de mercado/eventos. O
// catálogo garante que existe pelo menos uma carta de mercado.
func splitInitialMarket(cards []card.MarketEvent) (card.Market, []card.MarketEvent) {
	for i, me := range cards {
		if me.IsMarket() {
			return *me.Market, append(cards[:i], cards[i+1:]...)
		}
	}
	return card.Market{}, cards
}
