package game

import (
	"math/rand/v2"
	"slices"

	"bottomline/internal/game/player"
)

// draft controla a escolha de personagens no começo de cada rodada. Alguns
// personagens ficam abertos (ninguém pode escolher), um fica fechado (só o
// chairman vê antes de escolher) e o resto é escolhido um a um na ordem de
// mesa a partir do chairman.
type draft struct {
	playerCount int
	drawIdx     int
	chairman    player.ID
	available   []player.Character
	open        []player.Character
	closed      player.Character
}

// openCharacterCount diz quantos personagens ficam abertos para essa
// quantidade de jogadores.
func openCharacterCount(playerCount int) (int, error) {
	switch playerCount {
	case 4:
		return 2, nil
	case 5:
		return 1, nil
	case 6, 7:
		return 0, nil
	}
	return 0, &InvalidPlayerCountError{Count: playerCount}
}

// newDraft embaralha os oito personagens e separa abertos, fechado e
// disponíveis. O CEO nunca pode ficar aberto: quem fica com ele vira o
// próximo chairman, então ele sempre tem que estar em jogo.
func newDraft(playerCount int, chairman player.ID, rng *rand.Rand) (*draft, error) {
	openCount, err := openCharacterCount(playerCount)
	if err != nil {
		return nil, err
	}

	characters := slices.Clone(player.Characters[:])
	rng.Shuffle(len(characters), func(i, j int) {
		characters[i], characters[j] = characters[j], characters[i]
	})

	if ceoIdx := slices.Index(characters, player.CEO); ceoIdx < openCount {
		swap := openCount + rng.IntN(len(characters)-openCount)
		characters[ceoIdx], characters[swap] = characters[swap], characters[ceoIdx]
	}

	return &draft{
		playerCount: playerCount,
		chairman:    chairman,
		open:        characters[:openCount],
		closed:      characters[openCount],
		available:   characters[openCount+1:],
	}, nil
}

// Pickable é o que um jogador vê na hora de escolher: a lista de personagens
// que ele pode pegar e, se ele for o chairman, o personagem fechado.
type Pickable struct {
	Characters []player.Character `json:"characters"`
	Closed     *player.Character  `json:"closed_character,omitempty"`
}

// peek monta o Pickable do jogador da vez. O chairman (primeira escolha) vê o
// personagem fechado; o último a escolher recebe o fechado de volta na lista,
// para que todo mundo sempre tenha pelo menos duas opções.
func (d *draft) peek() (Pickable, error) {
	switch {
	case d.drawIdx == 0:
		closed := d.closed
		return Pickable{Characters: slices.Clone(d.available), Closed: &closed}, nil
	case d.drawIdx < d.playerCount-1:
		return Pickable{Characters: slices.Clone(d.available)}, nil
	case d.drawIdx == d.playerCount-1:
		return Pickable{Characters: append(slices.Clone(d.available), d.closed)}, nil
	}
	return Pickable{}, ErrDraftExhausted
}

// pick tira o personagem escolhido das opções da vez e passa para o próximo
// jogador. Escolher algo fora da lista devolve ErrUnavailableCharacter.
func (d *draft) pick(c player.Character) error {
	pickable, err := d.peek()
	if err != nil {
		return err
	}

	idx := slices.Index(pickable.Characters, c)
	if idx < 0 {
		return ErrUnavailableCharacter
	}

	d.available = slices.Delete(pickable.Characters, idx, idx+1)
	d.drawIdx++
	return nil
}

// done informa se todos os jogadores já escolheram.
func (d *draft) done() bool {
	return d.drawIdx >= d.playerCount
}

// appliesTo devolve o id do jogador da vez: a ordem começa no chairman e dá a
// volta na mesa.
func (d *draft) appliesTo() player.ID {
	return player.ID((d.drawIdx + int(d.chairman)) % d.playerCount)
}

// openCharacters devolve os personagens que ninguém pode escolher nessa
// rodada.
func (d *draft) openCharacters() []player.Character {
	return slices.Clone(d.open)
}
