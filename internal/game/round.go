package game

import (
	"math/rand/v2"
	"slices"

	"bottomline/internal/game/card"
	"bottomline/internal/game/deck"
	"bottomline/internal/game/player"
)

// assetsForEndOfGame é a quantidade de assets que dispara a rodada final.
const assetsForEndOfGame = 6

// Round é a fase de rodada. Cada jogador joga um turno na ordem dos
// personagens; quando o último termina, ou a mesa volta para a escolha de
// personagens ou, se alguém chegou a seis assets, o jogo vai para o placar.
type Round struct {
	currentPlayer   player.ID
	players         []player.RoundPlayer
	assets          *deck.Deck[card.Asset]
	liabilities     *deck.Deck[card.Liability]
	markets         *deck.Deck[card.MarketEvent]
	chairman        player.ID
	currentMarket   card.Market
	currentEvents   []card.Event
	openCharacters  []player.Character
	firedCharacters []player.Character
	finalRound      bool
	rng             *rand.Rand
}

// MarketChange descreve um refresh de mercado: os eventos que saíram do
// baralho até aparecer a carta de mercado nova, e o mercado novo.
type MarketChange struct {
	Events    []card.Event `json:"events"`
	NewMarket card.Market  `json:"new_market"`
}

// PlayedCard é o resultado de jogar uma carta: a carta usada, o refresh de
// mercado se houve um, e se a rodada final foi disparada.
type PlayedCard struct {
	Card       player.HandCard
	Market     *MarketChange
	FinalRound bool
}

// TurnEnded descreve o fim de um turno: quem joga agora, se alguém, e se o
// jogo acabou.
type TurnEnded struct {
	NextPlayer *player.ID `json:"next_player,omitempty"`
	GameEnded  bool       `json:"game_ended"`
}

// HandsAfterSwap carrega as duas mãos novas depois de um swap do regulador.
type HandsAfterSwap struct {
	RegulatorHand []player.HandCard
	TargetHand    []player.HandCard
}

// SwapTarget resume um jogador com quem o regulador pode trocar de mão: só a
// contagem de cada tipo de carta, nunca as cartas em si.
type SwapTarget struct {
	PlayerID       player.ID `json:"player_id"`
	AssetCount     int       `json:"asset_count"`
	LiabilityCount int       `json:"liability_count"`
}

// DivestOption é um asset de outro jogador visto pelo stakeholder: a carta, o
// custo atual para forçar o desinvestimento e se ele pode ser desinvestido.
type DivestOption struct {
	Asset        card.Asset `json:"asset"`
	DivestCost   int        `json:"divest_cost"`
	IsDivestable bool       `json:"is_divestable"`
}

// DivestTarget lista os assets de um jogador que o stakeholder pode atacar.
type DivestTarget struct {
	PlayerID player.ID      `json:"player_id"`
	Assets   []DivestOption `json:"assets"`
}

// Player devolve o jogador com o id pedido.
func (r *Round) Player(id player.ID) (*player.RoundPlayer, error) {
	if int(id) < 0 || int(id) >= len(r.players) {
		return nil, &InvalidPlayerIDError{ID: id}
	}
	return &r.players[id], nil
}

// PlayerByName devolve o jogador com o nome pedido.
func (r *Round) PlayerByName(name string) (*player.RoundPlayer, error) {
	for i := range r.players {
		if r.players[i].Name() == name {
			return &r.players[i], nil
		}
	}
	return nil, &InvalidPlayerNameError{Name: name}
}

// PlayerFromCharacter devolve o jogador que ficou com o personagem, se algum
// ficou.
func (r *Round) PlayerFromCharacter(c player.Character) *player.RoundPlayer {
	for i := range r.players {
		if r.players[i].Character() == c {
			return &r.players[i]
		}
	}
	return nil
}

// Players devolve todos os jogadores na ordem de id.
func (r *Round) Players() []player.RoundPlayer {
	return r.players
}

// CurrentPlayer devolve o jogador da vez.
func (r *Round) CurrentPlayer() *player.RoundPlayer {
	// currentPlayer só é atribuído a partir de NextPlayer, então o índice é
	// sempre válido.
	return &r.players[r.currentPlayer]
}

// NextPlayer devolve quem joga depois do jogador da vez: o menor personagem
// acima do atual, pulando os demitidos. Se o atual é o último, devolve nil.
func (r *Round) NextPlayer() *player.RoundPlayer {
	current := r.CurrentPlayer().Character()

	var next *player.RoundPlayer
	for i := range r.players {
		c := r.players[i].Character()
		if c <= current || slices.Contains(r.firedCharacters, c) {
			continue
		}
		if next == nil || c < next.Character() {
			next = &r.players[i]
		}
	}
	return next
}

// Chairman devolve o id do chairman da rodada.
func (r *Round) Chairman() player.ID {
	return r.chairman
}

// CurrentMarket devolve o mercado vigente.
func (r *Round) CurrentMarket() *card.Market {
	return &r.currentMarket
}

// IsFinalRound informa se esta é a última rodada da partida.
func (r *Round) IsFinalRound() bool {
	return r.finalRound
}

// OpenCharacters devolve os personagens que ficaram fora dessa rodada.
func (r *Round) OpenCharacters() []player.Character {
	return r.openCharacters
}

// PlayerInfo devolve a visão pública de todos os jogadores, menos o próprio.
func (r *Round) PlayerInfo(id player.ID) []player.PublicInfo {
	infos := make([]player.PublicInfo, 0, len(r.players))
	for i := range r.players {
		if r.players[i].ID() != id {
			infos = append(infos, r.players[i].Info())
		}
	}
	return infos
}

// SkippedCharacters devolve os personagens chamados e pulados desde o começo
// da rodada até o jogador da vez: os que ninguém escolheu e os demitidos.
func (r *Round) SkippedCharacters() []player.Character {
	current := r.CurrentPlayer().Character()

	var skipped []player.Character
	for _, c := range player.Characters {
		if c >= current {
			break
		}
		if r.PlayerFromCharacter(c) == nil || slices.Contains(r.firedCharacters, c) {
			skipped = append(skipped, c)
		}
	}
	return skipped
}

// FireableCharacters devolve os personagens que ainda podem ser demitidos
// nessa rodada: tira os abertos e os que já foram demitidos.
func (r *Round) FireableCharacters() []player.Character {
	var fireable []player.Character
	for _, c := range player.Characters {
		if c.CanBeFired() &&
			!slices.Contains(r.firedCharacters, c) &&
			!slices.Contains(r.openCharacters, c) {
			fireable = append(fireable, c)
		}
	}
	return fireable
}

// SwapTargets devolve, para cada jogador que não é o regulador, quantos
// assets e liabilities ele tem na mão.
func (r *Round) SwapTargets() []SwapTarget {
	targets := make([]SwapTarget, 0, len(r.players))
	for i := range r.players {
		p := &r.players[i]
		if p.Character() == player.Regulator {
			continue
		}

		target := SwapTarget{PlayerID: p.ID()}
		for _, c := range p.Hand() {
			if c.Type() == card.TypeAsset {
				target.AssetCount++
			} else {
				target.LiabilityCount++
			}
		}
		targets = append(targets, target)
	}
	return targets
}

// DivestTargets devolve os assets que o stakeholder pode forçar a desinvestir
// e quanto custa cada um. Só o stakeholder pode pedir essa lista; o CSO fica
// de fora porque os assets dele são protegidos.
func (r *Round) DivestTargets(id player.ID) ([]DivestTarget, error) {
	p, err := r.playerAsCurrent(id)
	if err != nil {
		return nil, err
	}
	if p.Character() != player.Stakeholder {
		return nil, ErrNotStakeholder
	}

	targets := make([]DivestTarget, 0, len(r.players))
	for i := range r.players {
		other := &r.players[i]
		if other.ID() == id || other.Character() == player.CSO {
			continue
		}

		target := DivestTarget{PlayerID: other.ID()}
		for _, a := range other.Assets() {
			target.Assets = append(target.Assets, DivestOption{
				Asset:        a,
				DivestCost:   a.DivestCost(&r.currentMarket),
				IsDivestable: a.Color != card.Red && a.Color != card.Green,
			})
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// playerAsCurrent valida que o jogador existe e que o turno é dele.
func (r *Round) playerAsCurrent(id player.ID) (*player.RoundPlayer, error) {
	p, err := r.Player(id)
	if err != nil {
		return nil, err
	}
	if id != r.currentPlayer {
		return nil, ErrNotPlayersTurn
	}
	return p, nil
}

// DrawCard compra uma carta do tipo pedido para o jogador da vez e devolve a
// carta comprada.
func (r *Round) DrawCard(id player.ID, kind card.Type) (player.HandCard, error) {
	p, err := r.playerAsCurrent(id)
	if err != nil {
		return player.HandCard{}, err
	}

	if kind == card.TypeAsset {
		a, err := p.DrawAsset(r.assets)
		if err != nil {
			return player.HandCard{}, err
		}
		return player.AssetCard(a), nil
	}

	l, err := p.DrawLiability(r.liabilities)
	if err != nil {
		return player.HandCard{}, err
	}
	return player.LiabilityCard(l), nil
}

// GiveBackCard devolve uma carta da mão do jogador da vez para o fundo do
// baralho correspondente e informa o tipo da carta devolvida.
func (r *Round) GiveBackCard(id player.ID, cardIdx int) (card.Type, error) {
	p, err := r.playerAsCurrent(id)
	if err != nil {
		return "", err
	}

	c, err := p.GiveBackCard(cardIdx)
	if err != nil {
		return "", err
	}

	if c.Type() == card.TypeAsset {
		r.assets.PutBack(*c.Asset)
		return card.TypeAsset, nil
	}
	r.liabilities.PutBack(*c.Liability)
	return card.TypeLiability, nil
}

// PlayCard joga uma carta da mão do jogador da vez. Comprar um asset pode
// disparar a rodada final (alguém chegou a seis assets) e pode disparar um
// refresh de mercado: o mercado muda sempre que o maior número de assets da
// mesa cresce, menos no degrau que encerra o jogo.
func (r *Round) PlayCard(id player.ID, cardIdx int) (PlayedCard, error) {
	oldMax := r.maxBoughtAssets()

	p, err := r.playerAsCurrent(id)
	if err != nil {
		return PlayedCard{}, err
	}

	used, err := p.PlayCard(cardIdx)
	if err != nil {
		return PlayedCard{}, err
	}

	played := PlayedCard{Card: used}
	if used.Type() != card.TypeAsset {
		played.FinalRound = r.finalRound
		return played, nil
	}

	if !r.finalRound && r.maxBoughtAssets() >= assetsForEndOfGame {
		r.finalRound = true
		p.MarkFirstToSixAssets()
	}
	if r.shouldRefreshMarket(oldMax) {
		change := r.refreshMarket()
		played.Market = &change
	}
	played.FinalRound = r.finalRound

	return played, nil
}

// RedeemLiability quita uma liability do jogador da vez e devolve a carta ao
// fundo do baralho de liabilities.
func (r *Round) RedeemLiability(id player.ID, liabilityIdx int) error {
	p, err := r.playerAsCurrent(id)
	if err != nil {
		return err
	}

	l, err := p.RedeemLiability(liabilityIdx)
	if err != nil {
		return err
	}
	r.liabilities.PutBack(l)
	return nil
}

// FireCharacter deixa o shareholder demitir um personagem. O demitido perde o
// turno dessa rodada.
func (r *Round) FireCharacter(id player.ID, target player.Character) error {
	p, err := r.playerAsCurrent(id)
	if err != nil {
		return err
	}

	if err := p.FireCharacter(target); err != nil {
		return err
	}
	r.firedCharacters = append(r.firedCharacters, target)
	return nil
}

// TerminateCredit deixa o banker cortar o crédito de um personagem, que perde
// o turno dessa rodada do mesmo jeito que um demitido.
func (r *Round) TerminateCredit(id player.ID, target player.Character) error {
	p, err := r.playerAsCurrent(id)
	if err != nil {
		return err
	}

	if err := p.TerminateCredit(target); err != nil {
		return err
	}
	r.firedCharacters = append(r.firedCharacters, target)
	return nil
}

// SwapWithDeck deixa o regulador devolver cartas da mão para os baralhos e
// ganhar o direito de comprar a mesma quantidade de novo. Devolve quantos
// assets e quantas liabilities voltaram para os baralhos.
func (r *Round) SwapWithDeck(id player.ID, cardIdxs []int) (int, int, error) {
	p, err := r.playerAsCurrent(id)
	if err != nil {
		return 0, 0, err
	}
	return p.SwapWithDeck(cardIdxs, r.assets, r.liabilities)
}

// SwapWithPlayer deixa o regulador trocar a mão inteira com outro jogador e
// devolve as duas mãos novas.
func (r *Round) SwapWithPlayer(id, targetID player.ID) (HandsAfterSwap, error) {
	if id == targetID {
		return HandsAfterSwap{}, ErrInvalidTargetPlayer
	}

	regulator, err := r.playerAsCurrent(id)
	if err != nil {
		return HandsAfterSwap{}, err
	}
	target, err := r.Player(targetID)
	if err != nil {
		return HandsAfterSwap{}, err
	}

	if err := regulator.SwapHands(target); err != nil {
		return HandsAfterSwap{}, err
	}
	return HandsAfterSwap{
		RegulatorHand: regulator.Hand(),
		TargetHand:    target.Hand(),
	}, nil
}

// DivestAsset deixa o stakeholder forçar outro jogador a desinvestir um asset
// por valor de mercado menos um. Devolve quanto custou.
func (r *Round) DivestAsset(id, targetID player.ID, assetIdx int) (int, error) {
	if id == targetID {
		return 0, ErrInvalidTargetPlayer
	}

	stakeholder, err := r.playerAsCurrent(id)
	if err != nil {
		return 0, err
	}
	target, err := r.Player(targetID)
	if err != nil {
		return 0, err
	}

	cost, err := stakeholder.DivestAsset(target, assetIdx, &r.currentMarket)
	if err != nil {
		return 0, err
	}
	if _, err := target.RemoveAsset(assetIdx); err != nil {
		return 0, err
	}
	return cost, nil
}

// endTurnOutcome é o resultado interno de um fim de turno: ou o próximo
// jogador assume, ou a mesa volta para a escolha de personagens, ou o jogo
// acaba.
type endTurnOutcome struct {
	next      *player.ID
	selecting *SelectingCharacters
	results   *Results
}

// endTurn encerra o turno do jogador da vez. É recusado enquanto ele ainda
// dever devoluções de carta. Se há um próximo jogador, o turno dele já começa
// aqui; se não há, a rodada acabou: ou volta para a escolha de personagens
// com o chairman novo (quem ficou com o CEO), ou, na rodada final, o jogo vai
// para o placar.
func (r *Round) endTurn(id player.ID) (endTurnOutcome, error) {
	p, err := r.playerAsCurrent(id)
	if err != nil {
		return endTurnOutcome{}, err
	}
	if p.ShouldGiveBackCards() {
		return endTurnOutcome{}, ErrShouldGiveBackCard
	}

	if next := r.NextPlayer(); next != nil {
		next.StartTurn(&r.currentMarket)
		r.currentPlayer = next.ID()

		nextID := next.ID()
		return endTurnOutcome{next: &nextID}, nil
	}

	if r.finalRound {
		players := make([]player.ResultsPlayer, 0, len(r.players))
		for i := range r.players {
			players = append(players, player.NewResultsPlayer(r.players[i], &r.currentMarket))
		}

		return endTurnOutcome{results: &Results{
			players:     players,
			finalMarket: r.currentMarket,
			finalEvents: r.currentEvents,
		}}, nil
	}

	chairman := r.chairman
	if ceo := r.PlayerFromCharacter(player.CEO); ceo != nil {
		chairman = ceo.ID()
	}

	characterDraft, err := newDraft(len(r.players), chairman, r.rng)
	if err != nil {
		return endTurnOutcome{}, err
	}

	players := make([]player.SelectingPlayer, 0, len(r.players))
	for i := range r.players {
		players = append(players, r.players[i].ToSelecting())
	}

	return endTurnOutcome{selecting: &SelectingCharacters{
		players:       players,
		draft:         characterDraft,
		assets:        r.assets,
		liabilities:   r.liabilities,
		markets:       r.markets,
		chairman:      chairman,
		currentMarket: r.currentMarket,
		currentEvents: r.currentEvents,
		rng:           r.rng,
	}}, nil
}

// maxBoughtAssets devolve o maior número de assets comprados por um jogador.
func (r *Round) maxBoughtAssets() int {
	max := 0
	for i := range r.players {
		if n := len(r.players[i].Assets()); n > max {
			max = n
		}
	}
	return max
}

// shouldRefreshMarket decide se a compra de um asset muda o mercado: muda
// sempre que o maior número de assets da mesa cresceu, menos quando esse
// número é exatamente o que encerra o jogo.
func (r *Round) shouldRefreshMarket(oldMax int) bool {
	max := r.maxBoughtAssets()
	return max > oldMax && max != assetsForEndOfGame
}

// refreshMarket tira cartas do baralho de mercado até sair uma carta de
// mercado, acumulando os eventos encontrados no caminho.
func (r *Round) refreshMarket() MarketChange {
	var events []card.Event
	for {
		me := r.markets.Draw()
		if me.IsMarket() {
			r.currentMarket = *me.Market
			return MarketChange{Events: events, NewMarket: *me.Market}
		}
		r.currentEvents = append(r.currentEvents, *me.Event)
		events = append(events, *me.Event)
	}
}
