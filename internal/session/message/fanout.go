package message

import (
	"bottomline/internal/game"
	"bottomline/internal/game/card"
	"bottomline/internal/game/player"
	"bottomline/internal/network"
)

// Respostas de fanout: enviadas aos demais jogadores da sala para que todos
// acompanhem o que o jogador da vez fez. Algumas (TurnStarts, GameEnded e as
// de seleção de personagem) vão para todos, inclusive o autor da ação.
const (
	ActionPlayersInLobby  = "PlayersInLobby"
	ActionGameStarted     = "StartGame"
	ActionSelecting       = "SelectingCharacters"
	ActionSelectedChar    = "SelectedCharacter"
	ActionTurnStarts      = "TurnStarts"
	ActionDrewCard        = "DrewCard"
	ActionPutBack         = "PutBackCard"
	ActionBoughtAsset     = "BoughtAsset"
	ActionIssued          = "IssuedLiability"
	ActionRedeemed        = "RedeemedLiability"
	ActionFired           = "FiredCharacter"
	ActionTerminated      = "TerminatedCreditCharacter"
	ActionSwappedDeck     = "SwappedWithDeck"
	ActionSwappedPlayer   = "SwappedWithPlayer"
	ActionRegulatorSwap   = "RegulatorSwappedYourCards"
	ActionAssetDivested   = "AssetDivested"
	ActionGameEnded       = "GameEnded"
	ActionMinusedIntoPlus = "MinusedIntoPlus"
	ActionSilveredGold    = "SilveredIntoGold"
	ActionChangedColor    = "ChangedAssetColor"
	ActionConfirmedAsset  = "ConfirmedAssetAbility"
)

// PlayersInLobby avisa que a composição do lobby mudou.
func PlayersInLobby(changedPlayer string, usernames []string) network.Message {
	return newMessage(ActionPlayersInLobby, struct {
		ChangedPlayer string   `json:"changed_player"`
		Usernames     []string `json:"usernames"`
	}{ChangedPlayer: changedPlayer, Usernames: usernames})
}

// GameStarted entrega a cada jogador sua visão inicial da partida: a própria
// mão, o caixa, a informação pública dos demais e o mercado inicial.
func GameStarted(id player.ID, hand []player.HandCard, cash int, info []player.PublicInfo, market card.Market) network.Message {
	return newMessage(ActionGameStarted, struct {
		ID            player.ID           `json:"id"`
		Hand          []player.HandCard   `json:"hand"`
		Cash          int                 `json:"cash"`
		PlayerInfo    []player.PublicInfo `json:"player_info"`
		InitialMarket card.Market         `json:"initial_market"`
	}{ID: id, Hand: hand, Cash: cash, PlayerInfo: info, InitialMarket: market})
}

// Selecting é personalizada por destinatário: só quem está escolhendo recebe
// selectable_characters, e só o chairman recebe closed_character.
type Selecting struct {
	ChairmanID           player.ID          `json:"chairman_id"`
	SelectableCharacters []player.Character `json:"selectable_characters,omitempty"`
	OpenCharacters       []player.Character `json:"open_characters"`
	ClosedCharacter      *player.Character  `json:"closed_character,omitempty"`
	TurnOrder            []player.ID        `json:"turn_order"`
}

func SelectingCharacters(s Selecting) network.Message {
	return newMessage(ActionSelecting, s)
}

// SelectedCharacter avança o draft: informa quem escolhe agora e, para esse
// jogador, o que ainda está disponível.
func SelectedCharacter(currentlyPicking *player.ID, selectable []player.Character, closed *player.Character) network.Message {
	return newMessage(ActionSelectedChar, struct {
		CurrentlyPickingID   *player.ID         `json:"currently_picking_id,omitempty"`
		SelectableCharacters []player.Character `json:"selectable_characters,omitempty"`
		ClosedCharacter      *player.Character  `json:"closed_character,omitempty"`
	}{CurrentlyPickingID: currentlyPicking, SelectableCharacters: selectable, ClosedCharacter: closed})
}

// TurnStarts anuncia a todos o turno do próximo personagem e os limites de
// jogada dele.
func TurnStarts(r *game.Round) network.Message {
	current := r.CurrentPlayer()
	c := current.Character()
	return newMessage(ActionTurnStarts, struct {
		PlayerTurn          player.ID             `json:"player_turn"`
		PlayerTurnCash      int                   `json:"player_turn_cash"`
		PlayerCharacter     player.Character      `json:"player_character"`
		DrawsNCards         int                   `json:"draws_n_cards"`
		GivesBackNCards     int                   `json:"gives_back_n_cards"`
		PlayableAssets      player.PlayableAssets `json:"playable_assets"`
		PlayableLiabilities int                   `json:"playable_liabilities"`
		SkippedCharacters   []player.Character    `json:"skipped_characters"`
	}{
		PlayerTurn:          current.ID(),
		PlayerTurnCash:      current.TurnCash(r.CurrentMarket()),
		PlayerCharacter:     c,
		DrawsNCards:         c.DrawsNCards(),
		GivesBackNCards:     c.GivesBackNCards(),
		PlayableAssets:      c.PlayableAssets(),
		PlayableLiabilities: c.PlayableLiabilities(),
		SkippedCharacters:   r.SkippedCharacters(),
	})
}

func DrewCard(id player.ID, cardType card.Type) network.Message {
	return newMessage(ActionDrewCard, struct {
		PlayerID player.ID `json:"player_id"`
		CardType card.Type `json:"card_type"`
	}{PlayerID: id, CardType: cardType})
}

func PutBackCard(id player.ID, cardType card.Type) network.Message {
	return newMessage(ActionPutBack, struct {
		PlayerID player.ID `json:"player_id"`
		CardType card.Type `json:"card_type"`
	}{PlayerID: id, CardType: cardType})
}

func BoughtAsset(id player.ID, cardIdx int, a card.Asset, change *game.MarketChange) network.Message {
	return newMessage(ActionBoughtAsset, struct {
		PlayerID     player.ID          `json:"player_id"`
		CardIdx      int                `json:"card_idx"`
		Asset        card.Asset         `json:"asset"`
		MarketChange *game.MarketChange `json:"market_change,omitempty"`
	}{PlayerID: id, CardIdx: cardIdx, Asset: a, MarketChange: change})
}

func IssuedLiability(id player.ID, cardIdx int, l card.Liability) network.Message {
	return newMessage(ActionIssued, struct {
		PlayerID  player.ID      `json:"player_id"`
		CardIdx   int            `json:"card_idx"`
		Liability card.Liability `json:"liability"`
	}{PlayerID: id, CardIdx: cardIdx, Liability: l})
}

func RedeemedLiability(id player.ID, liabilityIdx int) network.Message {
	return newMessage(ActionRedeemed, struct {
		PlayerID     player.ID `json:"player_id"`
		LiabilityIdx int       `json:"liability_idx"`
	}{PlayerID: id, LiabilityIdx: liabilityIdx})
}

func FiredCharacter(id player.ID, c player.Character) network.Message {
	return newMessage(ActionFired, struct {
		PlayerID  player.ID        `json:"player_id"`
		Character player.Character `json:"character"`
	}{PlayerID: id, Character: c})
}

func TerminatedCreditCharacter(id player.ID, c player.Character) network.Message {
	return newMessage(ActionTerminated, struct {
		PlayerID  player.ID        `json:"player_id"`
		Character player.Character `json:"character"`
	}{PlayerID: id, Character: c})
}

func SwappedWithDeck(assetCount, liabilityCount int) network.Message {
	return newMessage(ActionSwappedDeck, struct {
		AssetCount     int `json:"asset_count"`
		LiabilityCount int `json:"liability_count"`
	}{AssetCount: assetCount, LiabilityCount: liabilityCount})
}

func SwappedWithPlayer(regulator, target player.ID) network.Message {
	return newMessage(ActionSwappedPlayer, struct {
		RegulatorID player.ID `json:"regulator_id"`
		TargetID    player.ID `json:"target_id"`
	}{RegulatorID: regulator, TargetID: target})
}

// RegulatorSwappedYourCards vai só para o alvo da troca de mãos, com a mão
// que ele recebeu.
func RegulatorSwappedYourCards(newCards []player.HandCard) network.Message {
	return newMessage(ActionRegulatorSwap, struct {
		NewCards []player.HandCard `json:"new_cards"`
	}{NewCards: newCards})
}

func AssetDivested(id, target player.ID, assetIdx, paidGold int) network.Message {
	return newMessage(ActionAssetDivested, struct {
		PlayerID player.ID `json:"player_id"`
		TargetID player.ID `json:"target_id"`
		AssetIdx int       `json:"asset_idx"`
		PaidGold int       `json:"paid_gold"`
	}{PlayerID: id, TargetID: target, AssetIdx: assetIdx, PaidGold: paidGold})
}

func GameEnded(scores []game.PlayerScore) network.Message {
	return newMessage(ActionGameEnded, struct {
		Scores []game.PlayerScore `json:"scores"`
	}{Scores: scores})
}

func MinusedIntoPlus(id player.ID, newMarket card.Market, newScore float64) network.Message {
	return newMessage(ActionMinusedIntoPlus, struct {
		PlayerID  player.ID   `json:"player_id"`
		NewMarket card.Market `json:"new_market"`
		NewScore  float64     `json:"new_score"`
	}{PlayerID: id, NewMarket: newMarket, NewScore: newScore})
}

func SilveredIntoGold(id player.ID, oldAsset, newAsset card.Asset, newScore float64) network.Message {
	return newMessage(ActionSilveredGold, struct {
		PlayerID     player.ID  `json:"player_id"`
		OldAssetData card.Asset `json:"old_asset_data"`
		NewAssetData card.Asset `json:"new_asset_data"`
		NewScore     float64    `json:"new_score"`
	}{PlayerID: id, OldAssetData: oldAsset, NewAssetData: newAsset, NewScore: newScore})
}

func ChangedAssetColor(id player.ID, oldAsset, newAsset card.Asset, newScore float64) network.Message {
	return newMessage(ActionChangedColor, struct {
		PlayerID     player.ID  `json:"player_id"`
		OldAssetData card.Asset `json:"old_asset_data"`
		NewAssetData card.Asset `json:"new_asset_data"`
		NewScore     float64    `json:"new_score"`
	}{PlayerID: id, OldAssetData: oldAsset, NewAssetData: newAsset, NewScore: newScore})
}

func ConfirmedAssetAbility(id player.ID, assetIdx int) network.Message {
	return newMessage(ActionConfirmedAsset, struct {
		PlayerID player.ID `json:"player_id"`
		AssetIdx int       `json:"asset_idx"`
	}{PlayerID: id, AssetIdx: assetIdx})
}
