package player

import "bottomline/internal/game/card"

// ResultsPlayer é o formato de jogador do fim do jogo. As posses estão
// congeladas e cada jogador carrega a própria cópia do mercado final, porque
// a habilidade MinusIntoPlus mexe só no mercado de quem a usa.
type ResultsPlayer struct {
	id          ID
	name        string
	cash        int
	assets      []card.Asset
	liabilities []card.Liability
	hand        []HandCard
	market      card.Market

	oldSilverIntoGold  *silverIntoGoldState
	oldChangedColor    *changedColorState
	confirmedAssetIdxs []int
}

type silverIntoGoldState struct {
	assetIdx    int
	silverValue int
}

type changedColorState struct {
	assetIdx int
	color    card.Color
}

// NewResultsPlayer congela um jogador da rodada com o mercado final.
func NewResultsPlayer(p RoundPlayer, market *card.Market) ResultsPlayer {
	return ResultsPlayer{
		id:          p.id,
		name:        p.name,
		cash:        p.cash,
		assets:      p.assets,
		liabilities: p.liabilities,
		hand:        p.hand,
		market:      *market,
	}
}

// ID devolve o id do jogador.
func (p *ResultsPlayer) ID() ID { return p.id }

// Name devolve o nome do jogador.
func (p *ResultsPlayer) Name() string { return p.name }

// Cash devolve o caixa do jogador.
func (p *ResultsPlayer) Cash() int { return p.cash }

// Assets devolve os assets do jogador.
func (p *ResultsPlayer) Assets() []card.Asset { return p.assets }

// Liabilities devolve as liabilities do jogador.
func (p *ResultsPlayer) Liabilities() []card.Liability { return p.liabilities }

// Market devolve o mercado pessoal do jogador.
func (p *ResultsPlayer) Market() *card.Market { return &p.market }

// ============================================================================
// Habilidades de fim de jogo
// ============================================================================

func (p *ResultsPlayer) assetAbilityPrechecks(assetIdx int) error {
	if assetIdx < 0 || assetIdx >= len(p.assets) {
		return &InvalidCardIndexError{Index: assetIdx}
	}
	for _, i := range p.confirmedAssetIdxs {
		if i == assetIdx {
			return ErrAbilityConfirmed
		}
	}
	return nil
}

// MinusIntoPlus reaplica o mercado final e sobe um degrau a condição de uma
// cor no mercado pessoal do jogador.
func (p *ResultsPlayer) MinusIntoPlus(color card.Color, finalMarket *card.Market) *card.Market {
	p.market = *finalMarket
	p.market.SetColorCondition(color, p.market.ColorCondition(color).MakeHigher())
	return &p.market
}

// ToggleSilverIntoGold vira a prata de um asset em ouro. Chamar de novo no
// mesmo asset desfaz; chamar em outro asset desfaz o anterior e aplica no novo.
func (p *ResultsPlayer) ToggleSilverIntoGold(assetIdx int) error {
	if err := p.assetAbilityPrechecks(assetIdx); err != nil {
		return err
	}

	if old := p.oldSilverIntoGold; old != nil {
		a := &p.assets[old.assetIdx]
		a.GoldValue -= old.silverValue
		a.SilverValue = old.silverValue
		p.oldSilverIntoGold = nil
		if old.assetIdx == assetIdx {
			return nil
		}
	}

	a := &p.assets[assetIdx]
	p.oldSilverIntoGold = &silverIntoGoldState{assetIdx: assetIdx, silverValue: a.SilverValue}
	a.GoldValue += a.SilverValue
	a.SilverValue = 0
	return nil
}

// ToggleChangeAssetColor troca a cor de um asset. Chamar de novo no mesmo
// asset restaura a cor original; em outro asset, desfaz o anterior primeiro.
func (p *ResultsPlayer) ToggleChangeAssetColor(assetIdx int, color card.Color) error {
	if err := p.assetAbilityPrechecks(assetIdx); err != nil {
		return err
	}

	if old := p.oldChangedColor; old != nil {
		p.assets[old.assetIdx].Color = old.color
		p.oldChangedColor = nil
		if old.assetIdx == assetIdx {
			return nil
		}
	}

	a := &p.assets[assetIdx]
	p.oldChangedColor = &changedColorState{assetIdx: assetIdx, color: a.Color}
	a.Color = color
	return nil
}

// ConfirmAssetAbility trava a configuração atual de um asset: depois daqui
// aquele índice não pode mais ser alternado.
func (p *ResultsPlayer) ConfirmAssetAbility(assetIdx int) error {
	if err := p.assetAbilityPrechecks(assetIdx); err != nil {
		return err
	}
	p.confirmedAssetIdxs = append(p.confirmedAssetIdxs, assetIdx)
	return nil
}

// ============================================================================
// Pontuação
// ============================================================================

// TotalGold é a soma do ouro de todos os assets do jogador.
func (p *ResultsPlayer) TotalGold() int {
	total := 0
	for _, a := range p.assets {
		total += a.GoldValue
	}
	return total
}

// TotalSilver é a soma da prata de todos os assets do jogador.
func (p *ResultsPlayer) TotalSilver() int {
	total := 0
	for _, a := range p.assets {
		total += a.SilverValue
	}
	return total
}

func (p *ResultsPlayer) loan(t card.LiabilityType) int {
	total := 0
	for _, l := range p.liabilities {
		if l.Type == t {
			total += l.Value
		}
	}
	return total
}

// TradeCredit é a dívida do jogador em trade credit.
func (p *ResultsPlayer) TradeCredit() int { return p.loan(card.TradeCredit) }

// BankLoan é a dívida do jogador em empréstimos bancários.
func (p *ResultsPlayer) BankLoan() int { return p.loan(card.BankLoan) }

// Bonds é a dívida do jogador em bonds.
func (p *ResultsPlayer) Bonds() int { return p.loan(card.Bonds) }

// ColorValue é o valor de mercado somado dos assets de uma cor, sob o mercado
// pessoal do jogador.
func (p *ResultsPlayer) ColorValue(color card.Color) float64 {
	mul := float64(p.market.ColorCondition(color).Multiplier())
	total := 0.0
	for _, a := range p.assets {
		if a.Color == color {
			total += float64(a.GoldValue) + float64(a.SilverValue)*mul
		}
	}
	return total
}

// FCF é o valor de mercado somado de todos os assets do jogador.
func (p *ResultsPlayer) FCF() float64 {
	total := 0.0
	for _, color := range card.Colors {
		total += p.ColorValue(color)
	}
	return total
}

// Score calcula a pontuação final do jogador. A função é pura: chamar duas
// vezes dá o mesmo número.
func (p *ResultsPlayer) Score() float64 {
	cash := float64(p.cash)
	gold := float64(p.TotalGold())
	silver := float64(p.TotalSilver())

	tradeCredit := float64(p.TradeCredit())
	bankLoan := float64(p.BankLoan())
	bonds := float64(p.Bonds())
	debt := tradeCredit + bankLoan + bonds

	beta := silver / (1.0 + gold)
	drp := (tradeCredit + bankLoan*2.0 + bonds*3.0) / (gold + cash)
	wacc := float64(p.market.RFR) + drp + beta*float64(p.market.MRP)

	return p.FCF()/(10.0*wacc) + debt/3.0 + cash
}

// Info devolve a visão pública do jogador.
func (p *ResultsPlayer) Info() PublicInfo {
	return PublicInfo{
		Name:        p.name,
		ID:          p.id,
		Hand:        handTypes(p.hand),
		Assets:      p.assets,
		Liabilities: p.liabilities,
		Cash:        p.cash,
	}
}
