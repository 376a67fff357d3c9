// Package player implementa os quatro formatos de jogador, um para cada fase
// da partida, e as regras por personagem. A identidade (id e nome) atravessa
// as fases; o resto do formato muda junto com a fase.
package player

import (
	"encoding/json"
	"fmt"

	"bottomline/internal/game/card"
)

// ID identifica um jogador dentro de uma sala. Os ids são densos: o id de um
// jogador é sempre a posição dele no slice de jogadores da partida.
type ID int

// Character é um dos oito personagens do jogo, na ordem em que são chamados
// durante a rodada.
type Character int

const (
	// Shareholder pode demitir qualquer personagem demitível no seu turno.
	Shareholder Character = iota
	// Banker pode cortar o crédito de qualquer personagem demitível.
	Banker
	// Regulator pode trocar a mão com outro jogador ou trocar cartas com o baralho.
	Regulator
	// CEO pode comprar até três assets de qualquer cor.
	CEO
	// CFO pode emitir até três liabilities, ou resgatá-las pagando em caixa.
	CFO
	// CSO pode comprar até dois assets vermelhos ou verdes.
	CSO
	// HeadRnD compra seis cartas por turno, devolvendo duas.
	HeadRnD
	// Stakeholder pode forçar outro jogador a desinvestir um asset, pagando o custo.
	Stakeholder

	characterCount
)

// Characters lista todos os personagens na ordem em que são chamados.
var Characters = [8]Character{
	Shareholder,
	Banker,
	Regulator,
	CEO,
	CFO,
	CSO,
	HeadRnD,
	Stakeholder,
}

var characterNames = [characterCount]string{
	Shareholder: "Shareholder",
	Banker:      "Banker",
	Regulator:   "Regulator",
	CEO:         "CEO",
	CFO:         "CFO",
	CSO:         "CSO",
	HeadRnD:     "HeadRnD",
	Stakeholder: "Stakeholder",
}

func (c Character) String() string {
	if c < 0 || c >= characterCount {
		return fmt.Sprintf("Character(%d)", int(c))
	}
	return characterNames[c]
}

// Valid informa se o valor é um dos oito personagens.
func (c Character) Valid() bool {
	return c >= 0 && c < characterCount
}

// MarshalJSON serializa o personagem pelo nome, que é o formato usado na rede.
func (c Character) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid character %d", int(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON aceita o nome de um personagem.
func (c *Character) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range characterNames {
		if n == name {
			*c = Character(i)
			return nil
		}
	}
	return fmt.Errorf("unknown character %q", name)
}

// Color devolve a cor associada ao personagem, se ele tiver uma.
func (c Character) Color() (card.Color, bool) {
	switch c {
	case CEO:
		return card.Yellow, true
	case CFO:
		return card.Blue, true
	case CSO:
		return card.Green, true
	case HeadRnD:
		return card.Purple, true
	case Stakeholder:
		return card.Red, true
	}
	return "", false
}

// First devolve o personagem chamado primeiro dentre os listados.
func First(characters []Character) (Character, bool) {
	if len(characters) == 0 {
		return 0, false
	}
	min := characters[0]
	for _, c := range characters[1:] {
		if c < min {
			min = c
		}
	}
	return min, true
}

// PlayableAssets descreve quantos assets de cada cor o personagem pode
// comprar na rodada: um orçamento total e um custo por cor.
type PlayableAssets struct {
	Total      int `json:"total"`
	RedCost    int `json:"red_cost"`
	GreenCost  int `json:"green_cost"`
	PurpleCost int `json:"purple_cost"`
	YellowCost int `json:"yellow_cost"`
	BlueCost   int `json:"blue_cost"`
}

// ColorCost é o custo em unidades do orçamento para comprar um asset da cor.
func (p PlayableAssets) ColorCost(c card.Color) int {
	switch c {
	case card.Red:
		return p.RedCost
	case card.Green:
		return p.GreenCost
	case card.Purple:
		return p.PurpleCost
	case card.Yellow:
		return p.YellowCost
	default:
		return p.BlueCost
	}
}

func defaultPlayableAssets() PlayableAssets {
	return PlayableAssets{Total: 1, RedCost: 1, GreenCost: 1, PurpleCost: 1, YellowCost: 1, BlueCost: 1}
}

// PlayableAssets devolve o orçamento de compra de assets do personagem.
func (c Character) PlayableAssets() PlayableAssets {
	switch c {
	case CEO:
		p := defaultPlayableAssets()
		p.Total = 3
		return p
	case CSO:
		return PlayableAssets{Total: 2, RedCost: 1, GreenCost: 1, PurpleCost: 2, YellowCost: 2, BlueCost: 2}
	default:
		return defaultPlayableAssets()
	}
}

// PlayableLiabilities é quantas liabilities o personagem pode emitir por rodada.
func (c Character) PlayableLiabilities() int {
	if c == CFO {
		return 3
	}
	return 1
}

// DrawsNCards é quantas cartas o personagem pode comprar por rodada.
func (c Character) DrawsNCards() int {
	if c == HeadRnD {
		return 6
	}
	return 3
}

// GivesBackNCards é quantas cartas o personagem devolve por rodada: uma a
// cada três compradas.
func (c Character) GivesBackNCards() int {
	return c.DrawsNCards() / 3
}

// CanRedeemLiabilities informa se o personagem pode resgatar liabilities.
func (c Character) CanRedeemLiabilities() bool {
	return c == CFO
}

// CanBeFired informa se o personagem pode ser demitido pelo Shareholder. A
// mesma lista vale para o corte de crédito do Banker.
func (c Character) CanBeFired() bool {
	switch c {
	case CEO, CFO, CSO, HeadRnD, Stakeholder:
		return true
	}
	return false
}

// CanBeForcedToDivest informa se o personagem pode ser forçado a desinvestir.
func (c Character) CanBeForcedToDivest() bool {
	return c != CSO
}
