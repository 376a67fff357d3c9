package player

import "bottomline/internal/game/card"

// HandCard é uma carta na mão de um jogador: ou um asset ou uma liability,
// nunca os dois.
type HandCard struct {
	Asset     *card.Asset     `json:"asset,omitempty"`
	Liability *card.Liability `json:"liability,omitempty"`
}

// AssetCard embala um asset como carta de mão.
func AssetCard(a card.Asset) HandCard {
	return HandCard{Asset: &a}
}

// LiabilityCard embala uma liability como carta de mão.
func LiabilityCard(l card.Liability) HandCard {
	return HandCard{Liability: &l}
}

// Type informa se a carta é um asset ou uma liability. É tudo que os outros
// jogadores podem ver sobre ela.
func (h HandCard) Type() card.Type {
	if h.Asset != nil {
		return card.TypeAsset
	}
	return card.TypeLiability
}

func handTypes(hand []HandCard) []card.Type {
	types := make([]card.Type, len(hand))
	for i, h := range hand {
		types[i] = h.Type()
	}
	return types
}

// PublicInfo é o que os outros jogadores enxergam de alguém: o que está na
// mesa e o tamanho/composição da mão por tipo, nunca as cartas em si.
type PublicInfo struct {
	Name        string           `json:"name"`
	ID          ID               `json:"id"`
	Hand        []card.Type      `json:"hand"`
	Assets      []card.Asset     `json:"assets"`
	Liabilities []card.Liability `json:"liabilities"`
	Cash        int              `json:"cash"`
	Character   *Character       `json:"character,omitempty"`
}
