package player

import (
	"errors"
	"fmt"
)

// Erros de legalidade das ações de um jogador. São valores fixos para o
// roteador da sala conseguir mapeá-los para respostas de erro na rede.
var (
	// ErrAlreadySelectedCharacter indica que o jogador já escolheu personagem nesta rodada.
	ErrAlreadySelectedCharacter = errors.New("player already selected a character")
	// ErrMaximumCardsDrawn indica que o jogador já comprou todas as cartas permitidas.
	ErrMaximumCardsDrawn = errors.New("maximum cards drawn this turn")
	// ErrGiveBackUnnecessary indica que o jogador não deve nenhuma devolução.
	ErrGiveBackUnnecessary = errors.New("player does not need to give back a card")
	// ErrExceedsMaximumAssets indica que o orçamento de compra de assets acabou.
	ErrExceedsMaximumAssets = errors.New("exceeds maximum playable assets")
	// ErrExceedsMaximumLiabilities indica que o orçamento de liabilities acabou.
	ErrExceedsMaximumLiabilities = errors.New("exceeds maximum playable liabilities")
	// ErrNotAllowedToRedeem indica que o personagem não resgata liabilities.
	ErrNotAllowedToRedeem = errors.New("character is not allowed to redeem liabilities")
	// ErrAbilityAlreadyUsed indica que a habilidade do personagem já foi usada no turno.
	ErrAbilityAlreadyUsed = errors.New("character ability already used this turn")
	// ErrWrongCharacter indica que o personagem do jogador não executa esta ação.
	ErrWrongCharacter = errors.New("player's character cannot take this action")
	// ErrCharacterNotFireable indica que o personagem alvo não pode ser demitido.
	ErrCharacterNotFireable = errors.New("character cannot be fired")
	// ErrCannotDivestTarget indica que o personagem alvo não pode ser forçado a desinvestir.
	ErrCannotDivestTarget = errors.New("target character cannot be forced to divest")
	// ErrCannotDivestAssetType indica que assets vermelhos e verdes não podem ser desinvestidos.
	ErrCannotDivestAssetType = errors.New("red and green assets cannot be divested")
	// ErrAbilityConfirmed indica que o asset já teve a habilidade confirmada.
	ErrAbilityConfirmed = errors.New("asset ability already confirmed")
	// ErrMissingCharacter indica que um jogador chegou à rodada sem personagem.
	ErrMissingCharacter = errors.New("player has no character")
)

// InvalidCardIndexError indica que um índice de carta não existe.
type InvalidCardIndexError struct {
	Index int
}

func (e *InvalidCardIndexError) Error() string {
	return fmt.Sprintf("invalid card index %d", e.Index)
}

// NotEnoughCashError indica que o jogador não tem caixa para pagar uma ação.
type NotEnoughCashError struct {
	Cash int
	Cost int
}

func (e *NotEnoughCashError) Error() string {
	return fmt.Sprintf("not enough cash: have %d, need %d", e.Cash, e.Cost)
}
