package session

import (
	"fmt"
	"math/rand/v2"

	"bottomline/internal/game"
	"bottomline/internal/game/card"
	"bottomline/internal/game/player"
	"bottomline/internal/network"
	"bottomline/internal/session/message"
)

// Fanout é o conjunto de mensagens destinadas aos outros jogadores da sala,
// agrupadas por destinatário. A resposta direta do autor da requisição viaja
// separada, no retorno de handleRequest.
type Fanout map[player.ID][]network.Message

// handleRequest aplica uma requisição de jogo ao estado e produz as
// respostas. Em caso de erro nenhum fanout é emitido: só o autor recebe a
// mensagem de erro.
func handleRequest(state *game.State, catalog *card.Catalog, rng *rand.Rand, id player.ID, msg network.Message) (Fanout, network.Message) {
	fanout, direct, err := dispatch(state, catalog, rng, id, msg)
	if err != nil {
		return Fanout{}, message.Error(err)
	}
	if fanout == nil {
		fanout = Fanout{}
	}
	return fanout, direct
}

func dispatch(state *game.State, catalog *card.Catalog, rng *rand.Rand, id player.ID, msg network.Message) (Fanout, network.Message, error) {
	switch msg.Action {
	case message.ActionStartGame:
		return startGame(state, catalog, rng)

	case message.ActionSelectCharacter:
		req, err := message.DecodeData[message.SelectCharacterRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return selectCharacter(state, id, req.Character)

	case message.ActionDrawCard:
		req, err := message.DecodeData[message.DrawCardRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return drawCard(state, id, req.CardType)

	case message.ActionPutBackCard:
		req, err := message.DecodeData[message.CardIdxRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return putBackCard(state, id, req.CardIdx)

	case message.ActionBuyAsset, message.ActionIssueLiability:
		req, err := message.DecodeData[message.CardIdxRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return playCard(state, id, req.CardIdx)

	case message.ActionRedeemLiability:
		req, err := message.DecodeData[message.RedeemLiabilityRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return redeemLiability(state, id, req.LiabilityIdx)

	case message.ActionUseAbility:
		return useAbility(state, id)

	case message.ActionFireCharacter:
		req, err := message.DecodeData[message.CharacterTargetRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return fireCharacter(state, id, req.Character)

	case message.ActionTerminateCreditCharacter:
		req, err := message.DecodeData[message.CharacterTargetRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return terminateCredit(state, id, req.Character)

	case message.ActionSwapWithDeck:
		req, err := message.DecodeData[message.SwapWithDeckRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return swapWithDeck(state, id, req.CardIdxs)

	case message.ActionSwapWithPlayer:
		req, err := message.DecodeData[message.SwapWithPlayerRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return swapWithPlayer(state, id, req.TargetPlayerID)

	case message.ActionDivestAsset:
		req, err := message.DecodeData[message.DivestAssetRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return divestAsset(state, id, req.TargetPlayerID, req.CardIdx)

	case message.ActionEndTurn:
		return endTurn(state, id)

	case message.ActionMinusIntoPlus:
		req, err := message.DecodeData[message.ColorRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return minusIntoPlus(state, id, req.Color)

	case message.ActionSilverIntoGold:
		req, err := message.DecodeData[message.AssetIdxRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return silverIntoGold(state, id, req.AssetIdx)

	case message.ActionChangeAssetColor:
		req, err := message.DecodeData[message.ChangeAssetColorRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return changeAssetColor(state, id, req.AssetIdx, req.Color)

	case message.ActionConfirmAssetAbility:
		req, err := message.DecodeData[message.AssetIdxRequest](msg)
		if err != nil {
			return nil, network.Message{}, err
		}
		return confirmAssetAbility(state, id, req.AssetIdx)

	default:
		return nil, network.Message{}, fmt.Errorf("unknown action %q", msg.Action)
	}
}

// selectingView monta a visão personalizada da fase de escolha: só quem está
// escolhendo enxerga os selecionáveis, e só o chairman enxerga a carta fechada.
func selectingView(s *game.SelectingCharacters, id player.ID) message.Selecting {
	view := message.Selecting{
		ChairmanID:     s.Chairman(),
		OpenCharacters: s.OpenCharacters(),
		TurnOrder:      s.TurnOrder(),
	}
	if selectable, err := s.SelectableCharacters(id); err == nil {
		view.SelectableCharacters = selectable
	}
	if closed, err := s.ClosedCharacter(id); err == nil {
		view.ClosedCharacter = &closed
	}
	return view
}

func startGame(state *game.State, catalog *card.Catalog, rng *rand.Rand) (Fanout, network.Message, error) {
	if err := state.StartGame(catalog, rng); err != nil {
		return nil, network.Message{}, err
	}

	selecting, err := state.SelectingCharacters()
	if err != nil {
		return nil, network.Message{}, err
	}

	fanout := Fanout{}
	for _, p := range selecting.Players() {
		fanout[p.ID()] = []network.Message{
			message.GameStarted(p.ID(), p.Hand(), p.Cash(), selecting.PlayerInfo(p.ID()), *selecting.CurrentMarket()),
			message.SelectingCharacters(selectingView(selecting, p.ID())),
		}
	}

	return fanout, message.YouStartedGame(), nil
}

func selectCharacter(state *game.State, id player.ID, c player.Character) (Fanout, network.Message, error) {
	if err := state.SelectCharacter(id, c); err != nil {
		return nil, network.Message{}, err
	}

	fanout := Fanout{}
	switch state.Phase() {
	case game.PhaseSelectingCharacters:
		selecting, err := state.SelectingCharacters()
		if err != nil {
			return nil, network.Message{}, err
		}
		picking := selecting.CurrentlySelecting()
		for _, p := range selecting.Players() {
			view := selectingView(selecting, p.ID())
			fanout[p.ID()] = []network.Message{
				message.SelectedCharacter(&picking, view.SelectableCharacters, view.ClosedCharacter),
			}
		}

	case game.PhaseRound:
		// O último a escolher fecha o draft e a rodada começa.
		round, err := state.Round()
		if err != nil {
			return nil, network.Message{}, err
		}
		turn := message.TurnStarts(round)
		for _, p := range round.Players() {
			fanout[p.ID()] = []network.Message{turn}
		}
	}

	return fanout, message.YouSelectedCharacter(c), nil
}

func drawCard(state *game.State, id player.ID, kind card.Type) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	drawn, err := round.DrawCard(id, kind)
	if err != nil {
		return nil, network.Message{}, err
	}
	p, err := round.Player(id)
	if err != nil {
		return nil, network.Message{}, err
	}

	fanout := othersFanout(round, id, message.DrewCard(id, kind))
	return fanout, message.YouDrewCard(drawn, p.CanDrawCards(), p.ShouldGiveBackCards()), nil
}

func putBackCard(state *game.State, id player.ID, cardIdx int) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	cardType, err := round.GiveBackCard(id, cardIdx)
	if err != nil {
		return nil, network.Message{}, err
	}
	p, err := round.Player(id)
	if err != nil {
		return nil, network.Message{}, err
	}

	fanout := othersFanout(round, id, message.PutBackCard(id, cardType))
	return fanout, message.YouPutBackCard(cardIdx, p.CanDrawCards(), p.ShouldGiveBackCards()), nil
}

func playCard(state *game.State, id player.ID, cardIdx int) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	played, err := round.PlayCard(id, cardIdx)
	if err != nil {
		return nil, network.Message{}, err
	}

	if played.Card.Asset != nil {
		fanout := othersFanout(round, id, message.BoughtAsset(id, cardIdx, *played.Card.Asset, played.Market))
		return fanout, message.YouBoughtAsset(*played.Card.Asset, cardIdx, played.Market), nil
	}

	fanout := othersFanout(round, id, message.IssuedLiability(id, cardIdx, *played.Card.Liability))
	return fanout, message.YouIssuedLiability(*played.Card.Liability, cardIdx), nil
}

func redeemLiability(state *game.State, id player.ID, liabilityIdx int) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	if err := round.RedeemLiability(id, liabilityIdx); err != nil {
		return nil, network.Message{}, err
	}

	fanout := othersFanout(round, id, message.RedeemedLiability(id, liabilityIdx))
	return fanout, message.YouRedeemedLiability(liabilityIdx), nil
}

// useAbility só informa: devolve ao jogador da vez o que a habilidade do seu
// personagem permite, junto com os alvos possíveis quando houver.
func useAbility(state *game.State, id player.ID) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}
	p, err := round.Player(id)
	if err != nil {
		return nil, network.Message{}, err
	}
	if round.CurrentPlayer().ID() != id {
		return nil, network.Message{}, game.ErrNotPlayersTurn
	}

	switch c := p.Character(); c {
	case player.Shareholder:
		return Fanout{}, message.YouAreFiringSomeone(round.FireableCharacters(),
			"You can fire a character. A fired character skips their turn"), nil
	case player.Banker:
		return Fanout{}, message.YouAreTerminatingSomeone(round.FireableCharacters(),
			"You can terminate a player's credit based on the amount of different color assets they have +1"), nil
	case player.Regulator:
		return Fanout{}, message.YouRegulatorOptions(round.SwapTargets(),
			"You can swap your hand with another player or swap any number of cards with the deck"), nil
	case player.CEO:
		return Fanout{}, message.YouCharacterAbility(c,
			"You can buy up to 3 assets. Next turn you become chairman"), nil
	case player.CFO:
		return Fanout{}, message.YouCharacterAbility(c,
			"You can issue or redeem 3 liabilities"), nil
	case player.CSO:
		return Fanout{}, message.YouCharacterAbility(c,
			"You can buy up to 2 red or green assets"), nil
	case player.HeadRnD:
		return Fanout{}, message.YouCharacterAbility(c,
			"You can draw six cards and only have to put 2 back"), nil
	default:
		options, err := round.DivestTargets(id)
		if err != nil {
			return nil, network.Message{}, err
		}
		return Fanout{}, message.YouAreDivesting(options,
			"You can force a player to divest from an asset by spending the asset's market value -1"), nil
	}
}

func fireCharacter(state *game.State, id player.ID, target player.Character) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	if err := round.FireCharacter(id, target); err != nil {
		return nil, network.Message{}, err
	}

	fanout := othersFanout(round, id, message.FiredCharacter(id, target))
	return fanout, message.YouFiredCharacter(target), nil
}

func terminateCredit(state *game.State, id player.ID, target player.Character) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	if err := round.TerminateCredit(id, target); err != nil {
		return nil, network.Message{}, err
	}

	fanout := othersFanout(round, id, message.TerminatedCreditCharacter(id, target))
	return fanout, message.YouTerminatedCredit(target), nil
}

func swapWithDeck(state *game.State, id player.ID, cardIdxs []int) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	assetCount, liabilityCount, err := round.SwapWithDeck(id, cardIdxs)
	if err != nil {
		return nil, network.Message{}, err
	}

	fanout := othersFanout(round, id, message.SwappedWithDeck(assetCount, liabilityCount))
	return fanout, message.YouSwapDeck(assetCount + liabilityCount), nil
}

func swapWithPlayer(state *game.State, id, targetID player.ID) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	hands, err := round.SwapWithPlayer(id, targetID)
	if err != nil {
		return nil, network.Message{}, err
	}

	// O alvo recebe a mão nova; os demais só sabem que a troca aconteceu.
	fanout := Fanout{}
	for _, p := range round.Players() {
		if p.ID() == id || p.ID() == targetID {
			continue
		}
		fanout[p.ID()] = []network.Message{message.SwappedWithPlayer(id, targetID)}
	}
	fanout[targetID] = []network.Message{message.RegulatorSwappedYourCards(hands.TargetHand)}

	return fanout, message.YouSwapPlayer(hands.RegulatorHand, targetID), nil
}

func divestAsset(state *game.State, id, targetID player.ID, assetIdx int) (Fanout, network.Message, error) {
	round, err := state.Round()
	if err != nil {
		return nil, network.Message{}, err
	}

	goldCost, err := round.DivestAsset(id, targetID, assetIdx)
	if err != nil {
		return nil, network.Message{}, err
	}

	fanout := othersFanout(round, id, message.AssetDivested(id, targetID, assetIdx, goldCost))
	return fanout, message.YouDivestedAnAsset(targetID, assetIdx, goldCost), nil
}

func endTurn(state *game.State, id player.ID) (Fanout, network.Message, error) {
	if _, err := state.EndTurn(id); err != nil {
		return nil, network.Message{}, err
	}

	fanout := Fanout{}
	switch state.Phase() {
	case game.PhaseRound:
		round, err := state.Round()
		if err != nil {
			return nil, network.Message{}, err
		}
		turn := message.TurnStarts(round)
		for _, p := range round.Players() {
			fanout[p.ID()] = []network.Message{turn}
		}

	case game.PhaseSelectingCharacters:
		// A rodada acabou: todos voltam para a escolha de personagens.
		selecting, err := state.SelectingCharacters()
		if err != nil {
			return nil, network.Message{}, err
		}
		for _, p := range selecting.Players() {
			fanout[p.ID()] = []network.Message{
				message.SelectingCharacters(selectingView(selecting, p.ID())),
			}
		}

	case game.PhaseResults:
		results, err := state.Results()
		if err != nil {
			return nil, network.Message{}, err
		}
		ended := message.GameEnded(results.Scores())
		for _, p := range results.Players() {
			fanout[p.ID()] = []network.Message{ended}
		}
	}

	return fanout, message.YouEndedTurn(), nil
}

func minusIntoPlus(state *game.State, id player.ID, color card.Color) (Fanout, network.Message, error) {
	results, err := state.Results()
	if err != nil {
		return nil, network.Message{}, err
	}

	newMarket, err := results.MinusIntoPlus(id, color)
	if err != nil {
		return nil, network.Message{}, err
	}
	p, err := results.Player(id)
	if err != nil {
		return nil, network.Message{}, err
	}
	newScore := p.Score()

	fanout := resultsOthersFanout(results, id, message.MinusedIntoPlus(id, *newMarket, newScore))
	return fanout, message.YouMinusedIntoPlus(color, *newMarket, newScore), nil
}

func silverIntoGold(state *game.State, id player.ID, assetIdx int) (Fanout, network.Message, error) {
	results, err := state.Results()
	if err != nil {
		return nil, network.Message{}, err
	}
	p, err := results.Player(id)
	if err != nil {
		return nil, network.Message{}, err
	}

	var oldAsset card.Asset
	if assets := p.Assets(); assetIdx >= 0 && assetIdx < len(assets) {
		oldAsset = assets[assetIdx]
	}
	if err := results.ToggleSilverIntoGold(id, assetIdx); err != nil {
		return nil, network.Message{}, err
	}
	newAsset := p.Assets()[assetIdx]
	newScore := p.Score()

	fanout := resultsOthersFanout(results, id, message.SilveredIntoGold(id, oldAsset, newAsset, newScore))
	return fanout, message.YouSilveredIntoGold(oldAsset, newAsset, newScore), nil
}

func changeAssetColor(state *game.State, id player.ID, assetIdx int, color card.Color) (Fanout, network.Message, error) {
	results, err := state.Results()
	if err != nil {
		return nil, network.Message{}, err
	}
	p, err := results.Player(id)
	if err != nil {
		return nil, network.Message{}, err
	}

	var oldAsset card.Asset
	if assets := p.Assets(); assetIdx >= 0 && assetIdx < len(assets) {
		oldAsset = assets[assetIdx]
	}
	if err := results.ToggleChangeAssetColor(id, assetIdx, color); err != nil {
		return nil, network.Message{}, err
	}
	newAsset := p.Assets()[assetIdx]
	newScore := p.Score()

	fanout := resultsOthersFanout(results, id, message.ChangedAssetColor(id, oldAsset, newAsset, newScore))
	return fanout, message.YouChangedAssetColor(oldAsset, newAsset, newScore), nil
}

func confirmAssetAbility(state *game.State, id player.ID, assetIdx int) (Fanout, network.Message, error) {
	results, err := state.Results()
	if err != nil {
		return nil, network.Message{}, err
	}

	if err := results.ConfirmAssetAbility(id, assetIdx); err != nil {
		return nil, network.Message{}, err
	}

	fanout := resultsOthersFanout(results, id, message.ConfirmedAssetAbility(id, assetIdx))
	return fanout, message.YouConfirmedAssetAbility(assetIdx), nil
}

// othersFanout replica a mesma mensagem para todos os jogadores da rodada,
// exceto o autor da ação.
func othersFanout(round *game.Round, actor player.ID, msg network.Message) Fanout {
	fanout := Fanout{}
	for _, p := range round.Players() {
		if p.ID() == actor {
			continue
		}
		fanout[p.ID()] = []network.Message{msg}
	}
	return fanout
}

func resultsOthersFanout(results *game.Results, actor player.ID, msg network.Message) Fanout {
	fanout := Fanout{}
	for _, p := range results.Players() {
		if p.ID() == actor {
			continue
		}
		fanout[p.ID()] = []network.Message{msg}
	}
	return fanout
}
