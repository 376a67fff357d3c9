package player

import (
	"bottomline/internal/game/card"
	"bottomline/internal/game/deck"
)

// RoundPlayer é o formato de jogador durante a rodada. Aqui o personagem é
// obrigatório e o jogador carrega os contadores do turno: quantas cartas
// comprou e devolveu, quanto orçamento de compra ainda tem e quais
// habilidades já usou.
type RoundPlayer struct {
	id          ID
	name        string
	cash        int
	assets      []card.Asset
	liabilities []card.Liability
	character   Character
	hand        []HandCard

	bonusDrawCards      int
	assetsToPlay        int
	playableAssets      PlayableAssets
	liabilitiesToPlay   int
	totalCardsDrawn     int
	totalCardsGivenBack int
	hasUsedAbility      bool
	turnStarted         bool
	wasFirstToSixAssets bool
}

// NewRoundPlayer converte um jogador da fase de escolha para a rodada. Falha
// se o jogador ainda não tiver personagem.
func NewRoundPlayer(p SelectingPlayer) (RoundPlayer, error) {
	character, ok := p.Character()
	if !ok {
		return RoundPlayer{}, ErrMissingCharacter
	}
	playable := character.PlayableAssets()
	return RoundPlayer{
		id:                p.id,
		name:              p.name,
		cash:              p.cash,
		assets:            p.assets,
		liabilities:       p.liabilities,
		character:         character,
		hand:              p.hand,
		assetsToPlay:      playable.Total,
		playableAssets:    playable,
		liabilitiesToPlay: character.PlayableLiabilities(),
	}, nil
}

// ToSelecting converte o jogador de volta para a fase de escolha de
// personagens, descartando o personagem e os contadores do turno.
func (p *RoundPlayer) ToSelecting() SelectingPlayer {
	return SelectingPlayer{
		id:          p.id,
		name:        p.name,
		cash:        p.cash,
		assets:      p.assets,
		liabilities: p.liabilities,
		hand:        p.hand,
	}
}

// ID devolve o id do jogador.
func (p *RoundPlayer) ID() ID { return p.id }

// Name devolve o nome do jogador.
func (p *RoundPlayer) Name() string { return p.name }

// Cash devolve o caixa do jogador.
func (p *RoundPlayer) Cash() int { return p.cash }

// Assets devolve os assets comprados pelo jogador.
func (p *RoundPlayer) Assets() []card.Asset { return p.assets }

// Liabilities devolve as liabilities emitidas pelo jogador.
func (p *RoundPlayer) Liabilities() []card.Liability { return p.liabilities }

// Character devolve o personagem do jogador.
func (p *RoundPlayer) Character() Character { return p.character }

// Hand devolve a mão do jogador.
func (p *RoundPlayer) Hand() []HandCard { return p.hand }

// HasUsedAbility informa se a habilidade do personagem já foi usada no turno.
func (p *RoundPlayer) HasUsedAbility() bool { return p.hasUsedAbility }

// WasFirstToSixAssets informa se este jogador foi o primeiro a chegar a seis assets.
func (p *RoundPlayer) WasFirstToSixAssets() bool { return p.wasFirstToSixAssets }

// MarkFirstToSixAssets registra que este jogador foi o primeiro a chegar a
// seis assets, o que dispara a rodada final.
func (p *RoundPlayer) MarkFirstToSixAssets() { p.wasFirstToSixAssets = true }

// ============================================================================
// Início de turno
// ============================================================================

// AssetBonus é o bônus de caixa pelos assets da cor do personagem.
func (p *RoundPlayer) AssetBonus() int {
	color, ok := p.character.Color()
	if !ok {
		return 0
	}
	bonus := 0
	for _, a := range p.assets {
		if a.Color == color {
			bonus++
		}
	}
	return bonus
}

// MarketConditionBonus é o ajuste de caixa pela condição de mercado da cor do
// personagem: +1, 0 ou -1.
func (p *RoundPlayer) MarketConditionBonus(market *card.Market) int {
	color, ok := p.character.Color()
	if !ok {
		return 0
	}
	return market.ColorCondition(color).Multiplier()
}

// BonusCash é o bônus de personagem colorido: assets da própria cor mais a
// condição de mercado, nunca abaixo de zero.
func (p *RoundPlayer) BonusCash(market *card.Market) int {
	if _, ok := p.character.Color(); !ok {
		return 0
	}
	bonus := p.AssetBonus() + p.MarketConditionBonus(market)
	if bonus < 0 {
		return 0
	}
	return bonus
}

// TurnCash é o total de caixa que o jogador recebe ao começar o turno: o
// caixa fixo de turno mais o bônus de personagem colorido.
func (p *RoundPlayer) TurnCash(market *card.Market) int {
	return turnStartCash + p.BonusCash(market)
}

const turnStartCash = 1

// StartTurn dá ao jogador o caixa de início de turno. A segunda chamada no
// mesmo turno não faz nada.
func (p *RoundPlayer) StartTurn(market *card.Market) {
	if p.turnStarted {
		return
	}
	p.turnStarted = true
	p.cash += p.TurnCash(market)
}

// ============================================================================
// Compras e devoluções de cartas
// ============================================================================

// CanDrawCards informa se o jogador ainda pode comprar cartas neste turno.
func (p *RoundPlayer) CanDrawCards() bool {
	return p.totalCardsDrawn < p.character.DrawsNCards()+p.bonusDrawCards
}

// ShouldGiveBackCards informa se o jogador ainda deve devolver cartas: uma a
// cada três compradas, descontando as compras bônus.
func (p *RoundPlayer) ShouldGiveBackCards() bool {
	drawn := p.totalCardsDrawn - p.bonusDrawCards
	if drawn < 0 {
		drawn = 0
	}
	return drawn/3-p.totalCardsGivenBack > 0
}

func (p *RoundPlayer) drawCard(c HandCard) {
	p.totalCardsDrawn++
	p.hand = append(p.hand, c)
}

// DrawAsset compra um asset do baralho para a mão do jogador.
func (p *RoundPlayer) DrawAsset(d *deck.Deck[card.Asset]) (card.Asset, error) {
	if !p.CanDrawCards() {
		return card.Asset{}, ErrMaximumCardsDrawn
	}
	a := d.Draw()
	p.drawCard(AssetCard(a))
	return a, nil
}

// DrawLiability compra uma liability do baralho para a mão do jogador.
func (p *RoundPlayer) DrawLiability(d *deck.Deck[card.Liability]) (card.Liability, error) {
	if !p.CanDrawCards() {
		return card.Liability{}, ErrMaximumCardsDrawn
	}
	l := d.Draw()
	p.drawCard(LiabilityCard(l))
	return l, nil
}

// GiveBackCard devolve uma carta da mão do jogador, se ele ainda deve
// devoluções. A carta devolvida é retornada para voltar ao baralho certo.
func (p *RoundPlayer) GiveBackCard(cardIdx int) (HandCard, error) {
	if !p.ShouldGiveBackCards() {
		return HandCard{}, ErrGiveBackUnnecessary
	}
	if cardIdx < 0 || cardIdx >= len(p.hand) {
		return HandCard{}, &InvalidCardIndexError{Index: cardIdx}
	}
	p.totalCardsGivenBack++
	c := p.hand[cardIdx]
	p.hand = append(p.hand[:cardIdx], p.hand[cardIdx+1:]...)
	return c, nil
}

// ============================================================================
// Jogadas
// ============================================================================

func (p *RoundPlayer) canPlayAsset(color card.Color) bool {
	return p.assetsToPlay >= p.playableAssets.ColorCost(color)
}

// CanPlayLiability informa se o jogador ainda pode emitir uma liability.
func (p *RoundPlayer) CanPlayLiability() bool {
	return p.liabilitiesToPlay > 0
}

// AssetsToPlay devolve o orçamento de compra de assets restante no turno.
func (p *RoundPlayer) AssetsToPlay() int { return p.assetsToPlay }

// LiabilitiesToPlay devolve quantas liabilities ainda podem ser emitidas.
func (p *RoundPlayer) LiabilitiesToPlay() int { return p.liabilitiesToPlay }

// PlayCard joga a carta da mão no índice dado: comprar o asset (paga o ouro,
// gasta orçamento) ou emitir a liability (recebe o ouro, gasta uma emissão).
func (p *RoundPlayer) PlayCard(cardIdx int) (HandCard, error) {
	if cardIdx < 0 || cardIdx >= len(p.hand) {
		return HandCard{}, &InvalidCardIndexError{Index: cardIdx}
	}

	c := p.hand[cardIdx]
	if c.Asset != nil {
		a := *c.Asset
		if !p.canPlayAsset(a.Color) {
			return HandCard{}, ErrExceedsMaximumAssets
		}
		if p.cash < a.GoldValue {
			return HandCard{}, &NotEnoughCashError{Cash: p.cash, Cost: a.GoldValue}
		}
		p.cash -= a.GoldValue
		p.assetsToPlay -= p.playableAssets.ColorCost(a.Color)
		p.assets = append(p.assets, a)
	} else {
		if !p.CanPlayLiability() {
			return HandCard{}, ErrExceedsMaximumLiabilities
		}
		l := *c.Liability
		p.cash += l.Value
		p.liabilitiesToPlay--
		p.liabilities = append(p.liabilities, l)
	}

	p.hand = append(p.hand[:cardIdx], p.hand[cardIdx+1:]...)
	return c, nil
}

// RedeemLiability resgata uma liability da mesa pagando o valor dela em
// caixa. Só o CFO pode, e gasta uma emissão do turno.
func (p *RoundPlayer) RedeemLiability(liabilityIdx int) (card.Liability, error) {
	if !p.character.CanRedeemLiabilities() {
		return card.Liability{}, ErrNotAllowedToRedeem
	}
	if !p.CanPlayLiability() {
		return card.Liability{}, ErrExceedsMaximumLiabilities
	}
	if liabilityIdx < 0 || liabilityIdx >= len(p.liabilities) {
		return card.Liability{}, &InvalidCardIndexError{Index: liabilityIdx}
	}
	l := p.liabilities[liabilityIdx]
	if l.Value > p.cash {
		return card.Liability{}, &NotEnoughCashError{Cash: p.cash, Cost: l.Value}
	}
	p.liabilitiesToPlay--
	p.cash -= l.Value
	p.liabilities = append(p.liabilities[:liabilityIdx], p.liabilities[liabilityIdx+1:]...)
	return l, nil
}

// ============================================================================
// Habilidades de personagem
// ============================================================================

// FireCharacter demite um personagem, se este jogador for o Shareholder e
// ainda não tiver usado a habilidade no turno.
func (p *RoundPlayer) FireCharacter(target Character) error {
	if p.character != Shareholder {
		return ErrWrongCharacter
	}
	if p.hasUsedAbility {
		return ErrAbilityAlreadyUsed
	}
	if !target.CanBeFired() {
		return ErrCharacterNotFireable
	}
	p.hasUsedAbility = true
	return nil
}

// TerminateCredit corta o crédito de um personagem, se este jogador for o
// Banker. A lista de alvos válidos é a mesma da demissão.
func (p *RoundPlayer) TerminateCredit(target Character) error {
	if p.character != Banker {
		return ErrWrongCharacter
	}
	if p.hasUsedAbility {
		return ErrAbilityAlreadyUsed
	}
	if !target.CanBeFired() {
		return ErrCharacterNotFireable
	}
	p.hasUsedAbility = true
	return nil
}

// SwapWithDeck devolve as cartas da mão nos índices dados para os baralhos e
// ganha o mesmo número de compras bônus. Só o Regulator pode, uma vez por
// turno. Devolve quantos assets e quantas liabilities foram trocados.
func (p *RoundPlayer) SwapWithDeck(cardIdxs []int, assets *deck.Deck[card.Asset], liabilities *deck.Deck[card.Liability]) (int, int, error) {
	if len(cardIdxs) == 0 {
		return 0, 0, nil
	}
	if p.character != Regulator {
		return 0, 0, ErrWrongCharacter
	}
	if p.hasUsedAbility {
		return 0, 0, ErrAbilityAlreadyUsed
	}

	seen := make(map[int]bool, len(cardIdxs))
	for _, i := range cardIdxs {
		if i < 0 || i >= len(p.hand) || seen[i] {
			return 0, 0, &InvalidCardIndexError{Index: i}
		}
		seen[i] = true
	}

	assetCount, liabilityCount := 0, 0
	kept := p.hand[:0]
	for i, c := range p.hand {
		if !seen[i] {
			kept = append(kept, c)
			continue
		}
		if c.Asset != nil {
			assets.PutBack(*c.Asset)
			assetCount++
		} else {
			liabilities.PutBack(*c.Liability)
			liabilityCount++
		}
	}
	p.hand = kept
	p.hasUsedAbility = true
	p.bonusDrawCards += assetCount + liabilityCount
	return assetCount, liabilityCount, nil
}

// SwapHands troca a mão deste jogador com a do alvo. Só o Regulator pode,
// uma vez por turno.
func (p *RoundPlayer) SwapHands(target *RoundPlayer) error {
	if p.character != Regulator {
		return ErrWrongCharacter
	}
	if p.hasUsedAbility {
		return ErrAbilityAlreadyUsed
	}
	p.hasUsedAbility = true
	p.hand, target.hand = target.hand, p.hand
	return nil
}

// DivestAsset paga o custo de desinvestimento de um asset do alvo. Só o
// Stakeholder pode, o alvo não pode ser o CSO e o asset não pode ser vermelho
// nem verde. Devolve o custo pago; a remoção do asset fica com quem chama.
func (p *RoundPlayer) DivestAsset(target *RoundPlayer, assetIdx int, market *card.Market) (int, error) {
	if p.character != Stakeholder {
		return 0, ErrWrongCharacter
	}
	if p.hasUsedAbility {
		return 0, ErrAbilityAlreadyUsed
	}
	if !target.character.CanBeForcedToDivest() {
		return 0, ErrCannotDivestTarget
	}
	if assetIdx < 0 || assetIdx >= len(target.assets) {
		return 0, &InvalidCardIndexError{Index: assetIdx}
	}
	a := target.assets[assetIdx]
	if a.Color == card.Red || a.Color == card.Green {
		return 0, ErrCannotDivestAssetType
	}
	cost := a.DivestCost(market)
	if cost > p.cash {
		return 0, &NotEnoughCashError{Cash: p.cash, Cost: cost}
	}
	p.hasUsedAbility = true
	p.cash -= cost
	return cost, nil
}

// RemoveAsset tira um asset da mesa do jogador e o devolve.
func (p *RoundPlayer) RemoveAsset(assetIdx int) (card.Asset, error) {
	if assetIdx < 0 || assetIdx >= len(p.assets) {
		return card.Asset{}, &InvalidCardIndexError{Index: assetIdx}
	}
	a := p.assets[assetIdx]
	p.assets = append(p.assets[:assetIdx], p.assets[assetIdx+1:]...)
	return a, nil
}

// Info devolve a visão pública do jogador.
func (p *RoundPlayer) Info() PublicInfo {
	character := p.character
	return PublicInfo{
		Name:        p.name,
		ID:          p.id,
		Hand:        handTypes(p.hand),
		Assets:      p.assets,
		Liabilities: p.liabilities,
		Cash:        p.cash,
		Character:   &character,
	}
}
