// Package deck implementa os baralhos do jogo. Um Deck guarda uma pilha de
// cartas viradas para baixo e uma cópia de reserva: quando a pilha acaba no
// meio de uma compra, a reserva é embaralhada e vira a pilha de novo.
package deck

import (
	"fmt"
	"math/rand/v2"
)

// Deck é um baralho de cartas de um único tipo. Cada sala cria os seus
// próprios baralhos a partir do catálogo, então um Deck nunca é compartilhado
// entre salas.
type Deck[C any] struct {
	cards  []C
	backup []C
	rng    *rand.Rand
}

// New cria um baralho já embaralhado a partir da lista de cartas. A lista
// vem do catálogo e não pode ser vazia: um baralho que nasce vazio é um
// catálogo quebrado, não uma situação de jogo.
func New[C any](cards []C, rng *rand.Rand) (*Deck[C], error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("cannot build a deck with no cards")
	}

	d := &Deck[C]{
		cards:  make([]C, len(cards)),
		backup: make([]C, len(cards)),
		rng:    rng,
	}
	copy(d.cards, cards)
	copy(d.backup, cards)
	d.shuffle(d.cards)
	return d, nil
}

// Len informa quantas cartas ainda restam na pilha antes do próximo reshuffle.
func (d *Deck[C]) Len() int { return len(d.cards) }

// Draw tira a carta do topo da pilha. Se a pilha estiver vazia, a reserva é
// embaralhada e vira a pilha nova antes da compra.
func (d *Deck[C]) Draw() C {
	if len(d.cards) == 0 {
		d.cards = make([]C, len(d.backup))
		copy(d.cards, d.backup)
		d.shuffle(d.cards)
	}

	top := d.cards[0]
	d.cards = d.cards[1:]
	return top
}

// PutBack devolve uma carta para o fundo da pilha.
func (d *Deck[C]) PutBack(c C) {
	d.cards = append(d.cards, c)
}

// Fisher-Yates, igual em todos os baralhos.
func (d *Deck[C]) shuffle(cards []C) {
	for i := len(cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
