package card

import "fmt"

// Color é a cor associada a um asset e a alguns personagens.
type Color string

const (
	Red    Color = "Red"
	Green  Color = "Green"
	Purple Color = "Purple"
	Yellow Color = "Yellow"
	Blue   Color = "Blue"
)

// Colors lista todas as cores do jogo, na ordem usada para calcular o fcf.
var Colors = [5]Color{Red, Green, Purple, Yellow, Blue}

// Valid informa se a cor é uma das cinco cores conhecidas.
func (c Color) Valid() bool {
	switch c {
	case Red, Green, Purple, Yellow, Blue:
		return true
	}
	return false
}

// Type diz se uma carta na mão é um asset ou uma liability. É a única
// informação que os outros jogadores recebem sobre a mão de alguém.
type Type string

const (
	TypeAsset     Type = "Asset"
	TypeLiability Type = "Liability"
)

// MarketCondition representa a condição do mercado para uma cor específica:
// alta (+), neutra ( ) ou baixa (-). No json as condições aparecem como
// "up", "down" e "zero"; quando omitidas valem "zero".
type MarketCondition string

const (
	ConditionPlus  MarketCondition = "up"
	ConditionMinus MarketCondition = "down"
	ConditionZero  MarketCondition = "zero"
)

// Multiplier é o fator aplicado ao valor de prata de um asset sob esta condição.
func (mc MarketCondition) Multiplier() int {
	switch mc {
	case ConditionPlus:
		return 1
	case ConditionMinus:
		return -1
	default:
		return 0
	}
}

// MakeHigher sobe a condição um degrau: down vira zero, zero e up viram up.
func (mc MarketCondition) MakeHigher() MarketCondition {
	if mc == ConditionMinus {
		return ConditionZero
	}
	return ConditionPlus
}

// MakeLower desce a condição um degrau: up vira zero, zero e down viram down.
func (mc MarketCondition) MakeLower() MarketCondition {
	if mc == ConditionPlus {
		return ConditionZero
	}
	return ConditionMinus
}

// normalize troca a string vazia (campo ausente no json) por "zero".
func (mc MarketCondition) normalize() MarketCondition {
	if mc == "" {
		return ConditionZero
	}
	return mc
}

// Market é a carta de mercado atualmente em vigor. O rfr e o mrp entram na
// fórmula do wacc no fim do jogo, e as condições por cor mudam o valor de
// mercado de cada asset.
type Market struct {
	Title  string          `json:"title"`
	RFR    int             `json:"rfr"`
	MRP    int             `json:"mrp"`
	Yellow MarketCondition `json:"Yellow,omitempty"`
	Blue   MarketCondition `json:"Blue,omitempty"`
	Green  MarketCondition `json:"Green,omitempty"`
	Purple MarketCondition `json:"Purple,omitempty"`
	Red    MarketCondition `json:"Red,omitempty"`
}

// ColorCondition devolve a condição de mercado de uma cor específica.
func (m *Market) ColorCondition(c Color) MarketCondition {
	switch c {
	case Red:
		return m.Red
	case Green:
		return m.Green
	case Purple:
		return m.Purple
	case Yellow:
		return m.Yellow
	default:
		return m.Blue
	}
}

// SetColorCondition troca a condição de mercado de uma cor específica.
func (m *Market) SetColorCondition(c Color, mc MarketCondition) {
	switch c {
	case Red:
		m.Red = mc
	case Green:
		m.Green = mc
	case Purple:
		m.Purple = mc
	case Yellow:
		m.Yellow = mc
	case Blue:
		m.Blue = mc
	}
}

// Event é uma carta de evento do baralho de mercado. Eventos são narrativos:
// são mostrados aos jogadores quando saem do baralho durante um refresh.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
}

// Ability é um poder de fim de jogo que alguns assets carregam. No json a
// ability aparece como a frase completa impressa na carta.
type Ability string

const (
	// MinusIntoPlus: no fim do jogo, para uma cor, vira - em 0 ou 0 em +.
	MinusIntoPlus Ability = "At the end of the game, for one color, turn - into 0 or 0 into +"
	// SilverIntoGold: no fim do jogo, vira a prata de um asset em ouro.
	SilverIntoGold Ability = "At the end of the game, turn silver into gold on one asset card"
	// CountAsAnyColor: no fim do jogo, conta um dos seus assets como qualquer cor.
	CountAsAnyColor Ability = "At the end of the game, count one of your assets as any color"
)

// Asset é uma carta de asset. Cada asset tem um valor em ouro, um valor em
// prata e uma cor. Alguns assets também têm uma Ability de fim de jogo.
type Asset struct {
	Title       string  `json:"title"`
	GoldValue   int     `json:"gold_value"`
	SilverValue int     `json:"silver_value"`
	Color       Color   `json:"color"`
	Ability     Ability `json:"ability,omitempty"`
	ImageFront  string  `json:"image_front_url,omitempty"`
	ImageBack   string  `json:"image_back_url,omitempty"`
}

// MarketValue calcula o valor de mercado do asset: ouro mais (ou menos) a
// prata, dependendo da condição de mercado da cor. Pode ser negativo.
func (a *Asset) MarketValue(m *Market) int {
	return a.GoldValue + a.SilverValue*m.ColorCondition(a.Color).Multiplier()
}

// DivestCost é o custo para forçar o desinvestimento deste asset: valor de
// mercado menos um, nunca abaixo de zero.
func (a *Asset) DivestCost(m *Market) int {
	mv := a.MarketValue(m)
	if mv <= 1 {
		return 0
	}
	return mv - 1
}

// LiabilityType determina o custo de captação de uma liability.
type LiabilityType string

const (
	TradeCredit LiabilityType = "Trade Credit"
	BankLoan    LiabilityType = "Bank Loan"
	Bonds       LiabilityType = "Bonds"
)

// RFRPercent é o rfr% associado ao tipo: 1, 2 ou 3.
func (t LiabilityType) RFRPercent() (int, error) {
	switch t {
	case TradeCredit:
		return 1, nil
	case BankLoan:
		return 2, nil
	case Bonds:
		return 3, nil
	}
	return 0, fmt.Errorf("unknown liability type %q", string(t))
}

// Liability é uma carta de passivo. Emitir uma liability dá o valor dela em
// caixa na hora, mas conta como dívida na pontuação final.
type Liability struct {
	Value      int           `json:"value"`
	Type       LiabilityType `json:"liability_type"`
	ImageFront string        `json:"image_front_url,omitempty"`
	ImageBack  string        `json:"image_back_url,omitempty"`
}
