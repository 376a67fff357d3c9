// Pacote message define o vocabulário fechado do protocolo: as requisições
// que o frontend pode enviar e as respostas que o servidor devolve. Toda
// mensagem viaja no envelope network.Message, com a action identificando a
// variante e o data carregando os campos dela.
package message

import (
	"encoding/json"
	"fmt"

	"bottomline/internal/game/card"
	"bottomline/internal/game/player"
	"bottomline/internal/network"
)

// Actions das requisições aceitas pelo servidor.
const (
	ActionConnect = "Connect"

	ActionStartGame                = "StartGame"
	ActionSelectCharacter          = "SelectCharacter"
	ActionDrawCard                 = "DrawCard"
	ActionPutBackCard              = "PutBackCard"
	ActionBuyAsset                 = "BuyAsset"
	ActionIssueLiability           = "IssueLiability"
	ActionRedeemLiability          = "RedeemLiability"
	ActionUseAbility               = "UseAbility"
	ActionFireCharacter            = "FireCharacter"
	ActionTerminateCreditCharacter = "TerminateCreditCharacter"
	ActionSwapWithDeck             = "SwapWithDeck"
	ActionSwapWithPlayer           = "SwapWithPlayer"
	ActionDivestAsset              = "DivestAsset"
	ActionEndTurn                  = "EndTurn"
	ActionMinusIntoPlus            = "MinusIntoPlus"
	ActionSilverIntoGold           = "SilverIntoGold"
	ActionChangeAssetColor         = "ChangeAssetColor"
	ActionConfirmAssetAbility      = "ConfirmAssetAbility"
)

// ConnectRequest é a primeira mensagem de toda conexão: identifica o
// jogador e a sala (channel) que ele quer entrar.
type ConnectRequest struct {
	Username string `json:"username"`
	Channel  string `json:"channel"`
}

// SelectCharacterRequest escolhe um personagem durante o draft.
type SelectCharacterRequest struct {
	Character player.Character `json:"character"`
}

// DrawCardRequest compra uma carta do deck de assets ou de liabilities.
type DrawCardRequest struct {
	CardType card.Type `json:"card_type"`
}

// CardIdxRequest é o payload das ações que referenciam uma carta da mão
// pelo índice: PutBackCard, BuyAsset e IssueLiability.
type CardIdxRequest struct {
	CardIdx int `json:"card_idx"`
}

// RedeemLiabilityRequest resgata uma liability já emitida na mesa.
type RedeemLiabilityRequest struct {
	LiabilityIdx int `json:"liability_idx"`
}

// CharacterTargetRequest é o payload de FireCharacter e
// TerminateCreditCharacter: o personagem alvo da habilidade.
type CharacterTargetRequest struct {
	Character player.Character `json:"character"`
}

// SwapWithDeckRequest troca as cartas indicadas da mão pelo topo dos decks.
type SwapWithDeckRequest struct {
	CardIdxs []int `json:"card_idxs"`
}

// SwapWithPlayerRequest troca a mão inteira com a do jogador alvo.
type SwapWithPlayerRequest struct {
	TargetPlayerID player.ID `json:"target_player_id"`
}

// DivestAssetRequest força o jogador alvo a desinvestir de um asset.
type DivestAssetRequest struct {
	TargetPlayerID player.ID `json:"target_player_id"`
	CardIdx        int       `json:"card_idx"`
}

// ColorRequest é o payload de MinusIntoPlus: a cor do mercado a virar.
type ColorRequest struct {
	Color card.Color `json:"color"`
}

// AssetIdxRequest é o payload das habilidades de resultado que referenciam
// um asset da mesa pelo índice.
type AssetIdxRequest struct {
	AssetIdx int `json:"asset_idx"`
}

// ChangeAssetColorRequest troca a cor de um asset na fase de resultados.
type ChangeAssetColorRequest struct {
	AssetIdx int        `json:"asset_idx"`
	Color    card.Color `json:"color"`
}

// DecodeData deserializa o data de uma requisição no payload tipado.
func DecodeData[T any](msg network.Message) (T, error) {
	var payload T
	if len(msg.Data) == 0 {
		return payload, fmt.Errorf("request %q has no data", msg.Action)
	}
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return payload, fmt.Errorf("decoding %q data: %w", msg.Action, err)
	}
	return payload, nil
}
