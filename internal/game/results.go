package game

import (
	"bottomline/internal/game/card"
	"bottomline/internal/game/player"
)

// Results é a fase de placar. Aqui cada jogador pode configurar as abilities
// de fim de jogo dos seus assets e ver a pontuação de todo mundo.
type Results struct {
	players     []player.ResultsPlayer
	finalMarket card.Market
	finalEvents []card.Event
}

// PlayerScore é a pontuação final de um jogador.
type PlayerScore struct {
	ID    player.ID `json:"id"`
	Name  string    `json:"name"`
	Score float64   `json:"score"`
}

// Player devolve o jogador com o id pedido.
func (r *Results) Player(id player.ID) (*player.ResultsPlayer, error) {
	if int(id) < 0 || int(id) >= len(r.players) {
		return nil, &InvalidPlayerIDError{ID: id}
	}
	return &r.players[id], nil
}

// PlayerByName devolve o jogador com o nome pedido.
func (r *Results) PlayerByName(name string) (*player.ResultsPlayer, error) {
	for i := range r.players {
		if r.players[i].Name() == name {
			return &r.players[i], nil
		}
	}
	return nil, &InvalidPlayerNameError{Name: name}
}

// Players devolve todos os jogadores na ordem de id.
func (r *Results) Players() []player.ResultsPlayer {
	return r.players
}

// Scores devolve a pontuação final de cada jogador na ordem de id.
func (r *Results) Scores() []PlayerScore {
	scores := make([]PlayerScore, 0, len(r.players))
	for i := range r.players {
		p := &r.players[i]
		scores = append(scores, PlayerScore{ID: p.ID(), Name: p.Name(), Score: p.Score()})
	}
	return scores
}

// PlayerInfo devolve a visão pública de todos os jogadores, menos o próprio.
func (r *Results) PlayerInfo(id player.ID) []player.PublicInfo {
	infos := make([]player.PublicInfo, 0, len(r.players))
	for i := range r.players {
		if r.players[i].ID() != id {
			infos = append(infos, r.players[i].Info())
		}
	}
	return infos
}

// FinalMarket devolve o mercado vigente no fim da partida.
func (r *Results) FinalMarket() *card.Market {
	return &r.finalMarket
}

// FinalEvents devolve os eventos que saíram ao longo da partida.
func (r *Results) FinalEvents() []card.Event {
	return r.finalEvents
}

// MinusIntoPlus aplica a ability de subir uma cor do mercado para o jogador e
// devolve o mercado pessoal resultante.
func (r *Results) MinusIntoPlus(id player.ID, color card.Color) (*card.Market, error) {
	p, err := r.Player(id)
	if err != nil {
		return nil, err
	}
	return p.MinusIntoPlus(color, &r.finalMarket), nil
}

// ToggleSilverIntoGold liga, troca ou desliga a ability de virar prata em
// ouro em um asset do jogador.
func (r *Results) ToggleSilverIntoGold(id player.ID, assetIdx int) error {
	p, err := r.Player(id)
	if err != nil {
		return err
	}
	return p.ToggleSilverIntoGold(assetIdx)
}

// ToggleChangeAssetColor liga, troca ou desliga a ability de contar um asset
// como outra cor.
func (r *Results) ToggleChangeAssetColor(id player.ID, assetIdx int, color card.Color) error {
	p, err := r.Player(id)
	if err != nil {
		return err
	}
	return p.ToggleChangeAssetColor(assetIdx, color)
}

// ConfirmAssetAbility trava a configuração atual da ability daquele asset: a
// partir daqui o jogador não consegue mais desfazer esse índice.
func (r *Results) ConfirmAssetAbility(id player.ID, assetIdx int) error {
	p, err := r.Player(id)
	if err != nil {
		return err
	}
	return p.ConfirmAssetAbility(assetIdx)
}
