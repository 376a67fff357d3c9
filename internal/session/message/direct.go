package message

import (
	"encoding/json"

	"bottomline/internal/game"
	"bottomline/internal/game/card"
	"bottomline/internal/game/player"
	"bottomline/internal/network"
)

// Respostas diretas: enviadas somente ao jogador que fez a requisição.
const (
	ActionError = "Error"

	ActionYouStartedGame           = "YouStartedGame"
	ActionYouSelectedCharacter     = "YouSelectedCharacter"
	ActionYouDrewCard              = "YouDrewCard"
	ActionYouPutBackCard           = "YouPutBackCard"
	ActionYouBoughtAsset           = "YouBoughtAsset"
	ActionYouIssuedLiability       = "YouIssuedLiability"
	ActionYouRedeemedLiability     = "YouRedeemedLiability"
	ActionYouEndedTurn             = "YouEndedTurn"
	ActionYouCharacterAbility      = "YouCharacterAbility"
	ActionYouAreFiringSomeone      = "YouAreFiringSomeone"
	ActionYouAreTerminatingSomeone = "YouAreTerminatingSomeone"
	ActionYouRegulatorOptions      = "YouRegulatorOptions"
	ActionYouAreDivesting          = "YouAreDivesting"
	ActionYouFiredCharacter        = "YouFiredCharacter"
	ActionYouTerminatedCredit      = "YouTerminateCreditCharacter"
	ActionYouSwapDeck              = "YouSwapDeck"
	ActionYouSwapPlayer            = "YouSwapPlayer"
	ActionYouDivestedAnAsset       = "YouDivestedAnAsset"
	ActionYouMinusedIntoPlus       = "YouMinusedIntoPlus"
	ActionYouSilveredIntoGold      = "YouSilveredIntoGold"
	ActionYouChangedAssetColor     = "YouChangedAssetColor"
	ActionYouConfirmedAssetAbility = "YouConfirmedAssetAbility"
)

// newMessage monta o envelope. O marshal de structs próprias do protocolo
// não falha, então o erro é descartado aqui.
func newMessage(action string, data any) network.Message {
	if data == nil {
		return network.Message{Action: action}
	}
	raw, _ := json.Marshal(data)
	return network.Message{Action: action, Data: raw}
}

// Error converte qualquer erro do jogo na resposta de erro do protocolo.
func Error(err error) network.Message {
	return newMessage(ActionError, struct {
		Reason string `json:"reason"`
	}{Reason: err.Error()})
}

func YouStartedGame() network.Message {
	return newMessage(ActionYouStartedGame, nil)
}

func YouSelectedCharacter(c player.Character) network.Message {
	return newMessage(ActionYouSelectedCharacter, struct {
		Character player.Character `json:"character"`
	}{Character: c})
}

func YouDrewCard(c player.HandCard, canDraw, canGiveBack bool) network.Message {
	return newMessage(ActionYouDrewCard, struct {
		Card             player.HandCard `json:"card"`
		CanDrawCards     bool            `json:"can_draw_cards"`
		CanGiveBackCards bool            `json:"can_give_back_cards"`
	}{Card: c, CanDrawCards: canDraw, CanGiveBackCards: canGiveBack})
}

func YouPutBackCard(cardIdx int, canDraw, canGiveBack bool) network.Message {
	return newMessage(ActionYouPutBackCard, struct {
		CardIdx          int  `json:"card_idx"`
		CanDrawCards     bool `json:"can_draw_cards"`
		CanGiveBackCards bool `json:"can_give_back_cards"`
	}{CardIdx: cardIdx, CanDrawCards: canDraw, CanGiveBackCards: canGiveBack})
}

func YouBoughtAsset(a card.Asset, cardIdx int, change *game.MarketChange) network.Message {
	return newMessage(ActionYouBoughtAsset, struct {
		Asset        card.Asset         `json:"asset"`
		CardIdx      int                `json:"card_idx"`
		MarketChange *game.MarketChange `json:"market_change,omitempty"`
	}{Asset: a, CardIdx: cardIdx, MarketChange: change})
}

func YouIssuedLiability(l card.Liability, cardIdx int) network.Message {
	return newMessage(ActionYouIssuedLiability, struct {
		Liability card.Liability `json:"liability"`
		CardIdx   int            `json:"card_idx"`
	}{Liability: l, CardIdx: cardIdx})
}

func YouRedeemedLiability(liabilityIdx int) network.Message {
	return newMessage(ActionYouRedeemedLiability, struct {
		LiabilityIdx int `json:"liability_idx"`
	}{LiabilityIdx: liabilityIdx})
}

func YouEndedTurn() network.Message {
	return newMessage(ActionYouEndedTurn, nil)
}

// YouCharacterAbility descreve a habilidade passiva do personagem atual.
func YouCharacterAbility(c player.Character, perk string) network.Message {
	return newMessage(ActionYouCharacterAbility, struct {
		Character player.Character `json:"character"`
		Perk      string           `json:"perk"`
	}{Character: c, Perk: perk})
}

type abilityTargets struct {
	Characters []player.Character `json:"characters"`
	Character  player.Character   `json:"character"`
	Perk       string             `json:"perk"`
}

func YouAreFiringSomeone(targets []player.Character, perk string) network.Message {
	return newMessage(ActionYouAreFiringSomeone, abilityTargets{
		Characters: targets, Character: player.Shareholder, Perk: perk,
	})
}

func YouAreTerminatingSomeone(targets []player.Character, perk string) network.Message {
	return newMessage(ActionYouAreTerminatingSomeone, abilityTargets{
		Characters: targets, Character: player.Banker, Perk: perk,
	})
}

func YouRegulatorOptions(options []game.SwapTarget, perk string) network.Message {
	return newMessage(ActionYouRegulatorOptions, struct {
		Options   []game.SwapTarget `json:"options"`
		Character player.Character  `json:"character"`
		Perk      string            `json:"perk"`
	}{Options: options, Character: player.Regulator, Perk: perk})
}

func YouAreDivesting(options []game.DivestTarget, perk string) network.Message {
	return newMessage(ActionYouAreDivesting, struct {
		Options   []game.DivestTarget `json:"options"`
		Character player.Character    `json:"character"`
		Perk      string              `json:"perk"`
	}{Options: options, Character: player.Stakeholder, Perk: perk})
}

func YouFiredCharacter(c player.Character) network.Message {
	return newMessage(ActionYouFiredCharacter, struct {
		Character player.Character `json:"character"`
	}{Character: c})
}

func YouTerminatedCredit(c player.Character) network.Message {
	return newMessage(ActionYouTerminatedCredit, struct {
		Character player.Character `json:"character"`
	}{Character: c})
}

func YouSwapDeck(cardsToDraw int) network.Message {
	return newMessage(ActionYouSwapDeck, struct {
		CardsToDraw int `json:"cards_to_draw"`
	}{CardsToDraw: cardsToDraw})
}

func YouSwapPlayer(newCards []player.HandCard, target player.ID) network.Message {
	return newMessage(ActionYouSwapPlayer, struct {
		NewCards       []player.HandCard `json:"new_cards"`
		TargetPlayerID player.ID         `json:"target_player_id"`
	}{NewCards: newCards, TargetPlayerID: target})
}

func YouDivestedAnAsset(target player.ID, assetIdx, goldCost int) network.Message {
	return newMessage(ActionYouDivestedAnAsset, struct {
		TargetID player.ID `json:"target_id"`
		AssetIdx int       `json:"asset_idx"`
		GoldCost int       `json:"gold_cost"`
	}{TargetID: target, AssetIdx: assetIdx, GoldCost: goldCost})
}

func YouMinusedIntoPlus(color card.Color, newMarket card.Market, newScore float64) network.Message {
	return newMessage(ActionYouMinusedIntoPlus, struct {
		Color     card.Color  `json:"color"`
		NewMarket card.Market `json:"new_market"`
		NewScore  float64     `json:"new_score"`
	}{Color: color, NewMarket: newMarket, NewScore: newScore})
}

func YouSilveredIntoGold(oldAsset, newAsset card.Asset, newScore float64) network.Message {
	return newMessage(ActionYouSilveredIntoGold, struct {
		OldAssetData card.Asset `json:"old_asset_data"`
		NewAssetData card.Asset `json:"new_asset_data"`
		NewScore     float64    `json:"new_score"`
	}{OldAssetData: oldAsset, NewAssetData: newAsset, NewScore: newScore})
}

func YouChangedAssetColor(oldAsset, newAsset card.Asset, newScore float64) network.Message {
	return newMessage(ActionYouChangedAssetColor, struct {
		OldAssetData card.Asset `json:"old_asset_data"`
		NewAssetData card.Asset `json:"new_asset_data"`
		NewScore     float64    `json:"new_score"`
	}{OldAssetData: oldAsset, NewAssetData: newAsset, NewScore: newScore})
}

func YouConfirmedAssetAbility(assetIdx int) network.Message {
	return newMessage(ActionYouConfirmedAssetAbility, struct {
		AssetIdx int `json:"asset_idx"`
	}{AssetIdx: assetIdx})
}
