package player

import "bottomline/internal/game/card"

// SelectingPlayer é o formato de jogador da fase de escolha de personagens.
// O jogador já tem caixa, mão e mesa, mas pode ainda não ter personagem.
type SelectingPlayer struct {
	id          ID
	name        string
	cash        int
	assets      []card.Asset
	liabilities []card.Liability
	character   *Character
	hand        []HandCard
}

// NewSelectingPlayer cria o jogador logo depois da distribuição inicial: duas
// cartas de asset, duas de liability e o caixa inicial.
func NewSelectingPlayer(id ID, name string, assets [2]card.Asset, liabilities [2]card.Liability, cash int) SelectingPlayer {
	hand := []HandCard{
		AssetCard(assets[0]),
		AssetCard(assets[1]),
		LiabilityCard(liabilities[0]),
		LiabilityCard(liabilities[1]),
	}
	return SelectingPlayer{id: id, name: name, cash: cash, hand: hand}
}

// ID devolve o id do jogador.
func (p *SelectingPlayer) ID() ID { return p.id }

// Name devolve o nome do jogador.
func (p *SelectingPlayer) Name() string { return p.name }

// Cash devolve o caixa do jogador.
func (p *SelectingPlayer) Cash() int { return p.cash }

// Assets devolve os assets comprados pelo jogador.
func (p *SelectingPlayer) Assets() []card.Asset { return p.assets }

// Liabilities devolve as liabilities emitidas pelo jogador.
func (p *SelectingPlayer) Liabilities() []card.Liability { return p.liabilities }

// Hand devolve a mão do jogador.
func (p *SelectingPlayer) Hand() []HandCard { return p.hand }

// Character devolve o personagem escolhido, se houver.
func (p *SelectingPlayer) Character() (Character, bool) {
	if p.character == nil {
		return 0, false
	}
	return *p.character, true
}

// SelectCharacter escolhe o personagem do jogador para esta rodada. Escolher
// duas vezes é erro.
func (p *SelectingPlayer) SelectCharacter(c Character) error {
	if p.character != nil {
		return ErrAlreadySelectedCharacter
	}
	p.character = &c
	return nil
}

// Info devolve a visão pública do jogador.
func (p *SelectingPlayer) Info() PublicInfo {
	return PublicInfo{
		Name:        p.name,
		ID:          p.id,
		Hand:        handTypes(p.hand),
		Assets:      p.assets,
		Liabilities: p.liabilities,
		Cash:        p.cash,
		Character:   p.character,
	}
}
