package player

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bottomline/internal/game/card"
	"bottomline/internal/game/deck"
)

func testAsset(color card.Color) card.Asset {
	return card.Asset{Title: "Asset", GoldValue: 1, SilverValue: 1, Color: color}
}

func testLiability(value int) card.Liability {
	return card.Liability{Value: value, Type: card.BankLoan}
}

func assetDeck(t *testing.T, cards ...card.Asset) *deck.Deck[card.Asset] {
	t.Helper()
	d, err := deck.New(cards, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	return d
}

func liabilityDeck(t *testing.T, cards ...card.Liability) *deck.Deck[card.Liability] {
	t.Helper()
	d, err := deck.New(cards, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	return d
}

func roundPlayer(t *testing.T, character Character, cash int) *RoundPlayer {
	t.Helper()
	sp := SelectingPlayer{id: 0, name: "tester", cash: cash}
	require.NoError(t, sp.SelectCharacter(character))
	rp, err := NewRoundPlayer(sp)
	require.NoError(t, err)
	return &rp
}

func TestSelectCharacterOnlyOnce(t *testing.T) {
	for _, character := range Characters {
		sp := SelectingPlayer{}
		require.NoError(t, sp.SelectCharacter(character))

		got, ok := sp.Character()
		assert.True(t, ok)
		assert.Equal(t, character, got)

		for _, other := range Characters {
			assert.ErrorIs(t, sp.SelectCharacter(other), ErrAlreadySelectedCharacter)
		}
	}
}

func TestRoundPlayerNeedsCharacter(t *testing.T) {
	_, err := NewRoundPlayer(SelectingPlayer{})
	assert.ErrorIs(t, err, ErrMissingCharacter)
}

func TestDrawLimits(t *testing.T) {
	for _, character := range Characters {
		p := roundPlayer(t, character, 0)

		limit := 3
		if character == HeadRnD {
			limit = 6
		}
		assert.Equal(t, limit, character.DrawsNCards())

		for i := range limit {
			assert.True(t, p.CanDrawCards(), "%v draw %d", character, i)
			_, err := p.DrawAsset(assetDeck(t, testAsset(card.Red)))
			require.NoError(t, err)
		}

		assert.False(t, p.CanDrawCards())
		_, err := p.DrawAsset(assetDeck(t, testAsset(card.Red)))
		assert.ErrorIs(t, err, ErrMaximumCardsDrawn)
		_, err = p.DrawLiability(liabilityDeck(t, testLiability(1)))
		assert.ErrorIs(t, err, ErrMaximumCardsDrawn)
		assert.Len(t, p.Hand(), limit)
	}
}

func TestGiveBackCards(t *testing.T) {
	t.Run("head rnd owes two", func(t *testing.T) {
		assert := assert.New(t)
		p := roundPlayer(t, HeadRnD, 0)

		for range 6 {
			_, err := p.DrawAsset(assetDeck(t, testAsset(card.Blue)))
			require.NoError(t, err)
		}

		assert.True(p.ShouldGiveBackCards())

		_, err := p.GiveBackCard(123)
		var idxErr *InvalidCardIndexError
		assert.ErrorAs(err, &idxErr)

		_, err = p.GiveBackCard(0)
		require.NoError(t, err)
		assert.True(p.ShouldGiveBackCards())

		_, err = p.GiveBackCard(0)
		require.NoError(t, err)
		assert.False(p.ShouldGiveBackCards())

		_, err = p.GiveBackCard(0)
		assert.ErrorIs(err, ErrGiveBackUnnecessary)
		assert.Len(p.Hand(), 4)
	})

	t.Run("default owes one", func(t *testing.T) {
		p := roundPlayer(t, CEO, 0)
		for range 3 {
			_, err := p.DrawAsset(assetDeck(t, testAsset(card.Blue)))
			require.NoError(t, err)
		}

		assert.True(t, p.ShouldGiveBackCards())
		_, err := p.GiveBackCard(1)
		require.NoError(t, err)
		assert.False(t, p.ShouldGiveBackCards())
	})
}

func TestPlayableAssetsBudget(t *testing.T) {
	buy := func(t *testing.T, p *RoundPlayer, color card.Color) error {
		t.Helper()
		p.hand = []HandCard{AssetCard(testAsset(color))}
		_, err := p.PlayCard(0)
		return err
	}

	t.Run("default buys one", func(t *testing.T) {
		for _, character := range Characters {
			if character == CEO || character == CSO {
				continue
			}
			p := roundPlayer(t, character, 100)
			require.NoError(t, buy(t, p, card.Purple))
			assert.ErrorIs(t, buy(t, p, card.Red), ErrExceedsMaximumAssets)
			assert.Len(t, p.Assets(), 1)
			assert.Equal(t, 99, p.Cash())
		}
	})

	t.Run("ceo buys three of any color", func(t *testing.T) {
		p := roundPlayer(t, CEO, 100)
		for _, color := range []card.Color{card.Red, card.Blue, card.Yellow} {
			require.NoError(t, buy(t, p, color))
		}
		assert.ErrorIs(t, buy(t, p, card.Green), ErrExceedsMaximumAssets)
		assert.Len(t, p.Assets(), 3)
		assert.Equal(t, 97, p.Cash())
	})

	t.Run("cso buys two red or green", func(t *testing.T) {
		p := roundPlayer(t, CSO, 100)
		require.NoError(t, buy(t, p, card.Red))
		require.NoError(t, buy(t, p, card.Green))
		assert.ErrorIs(t, buy(t, p, card.Red), ErrExceedsMaximumAssets)
	})

	t.Run("cso pays double for other colors", func(t *testing.T) {
		p := roundPlayer(t, CSO, 100)
		require.NoError(t, buy(t, p, card.Blue))
		assert.ErrorIs(t, buy(t, p, card.Yellow), ErrExceedsMaximumAssets)
		assert.ErrorIs(t, buy(t, p, card.Red), ErrExceedsMaximumAssets)
	})

	t.Run("asset needs cash", func(t *testing.T) {
		p := roundPlayer(t, CEO, 0)
		err := buy(t, p, card.Red)
		var cashErr *NotEnoughCashError
		assert.ErrorAs(t, err, &cashErr)
		assert.Empty(t, p.Assets())
	})
}

func TestIssueAndRedeemLiabilities(t *testing.T) {
	t.Run("cfo issues up to three and redeems", func(t *testing.T) {
		assert := assert.New(t)
		p := roundPlayer(t, CFO, 100)

		for i := range 3 {
			p.hand = []HandCard{LiabilityCard(testLiability(10))}
			_, err := p.PlayCard(0)
			require.NoError(t, err)
			assert.Equal(100+(i+1)*10, p.Cash())
		}

		p.hand = []HandCard{LiabilityCard(testLiability(10))}
		_, err := p.PlayCard(0)
		assert.ErrorIs(err, ErrExceedsMaximumLiabilities)

		_, err = p.RedeemLiability(0)
		assert.ErrorIs(err, ErrExceedsMaximumLiabilities)
	})

	t.Run("cfo redeem pays the value", func(t *testing.T) {
		p := roundPlayer(t, CFO, 50)
		p.liabilities = []card.Liability{testLiability(10)}

		l, err := p.RedeemLiability(0)
		require.NoError(t, err)
		assert.Equal(t, 10, l.Value)
		assert.Equal(t, 40, p.Cash())
		assert.Empty(t, p.Liabilities())
	})

	t.Run("others issue one and never redeem", func(t *testing.T) {
		for _, character := range Characters {
			if character == CFO {
				continue
			}
			p := roundPlayer(t, character, 0)
			p.hand = []HandCard{LiabilityCard(testLiability(10))}
			_, err := p.PlayCard(0)
			require.NoError(t, err)
			assert.Equal(t, 10, p.Cash())

			p.hand = []HandCard{LiabilityCard(testLiability(10))}
			_, err = p.PlayCard(0)
			assert.ErrorIs(t, err, ErrExceedsMaximumLiabilities)

			p.liabilities = []card.Liability{testLiability(5)}
			_, err = p.RedeemLiability(0)
			assert.ErrorIs(t, err, ErrNotAllowedToRedeem)
		}
	})
}

func TestFireCharacter(t *testing.T) {
	t.Run("shareholder", func(t *testing.T) {
		p := roundPlayer(t, Shareholder, 0)

		assert.ErrorIs(t, p.FireCharacter(Shareholder), ErrCharacterNotFireable)
		assert.ErrorIs(t, p.FireCharacter(Banker), ErrCharacterNotFireable)
		assert.ErrorIs(t, p.FireCharacter(Regulator), ErrCharacterNotFireable)

		require.NoError(t, p.FireCharacter(CEO))
		assert.ErrorIs(t, p.FireCharacter(Stakeholder), ErrAbilityAlreadyUsed)
	})

	t.Run("everyone else", func(t *testing.T) {
		for _, character := range Characters {
			if character == Shareholder {
				continue
			}
			p := roundPlayer(t, character, 0)
			assert.ErrorIs(t, p.FireCharacter(CEO), ErrWrongCharacter)
		}
	})

	t.Run("banker terminates credit with the same target list", func(t *testing.T) {
		p := roundPlayer(t, Banker, 0)
		assert.ErrorIs(t, p.TerminateCredit(Regulator), ErrCharacterNotFireable)
		require.NoError(t, p.TerminateCredit(CFO))
		assert.ErrorIs(t, p.TerminateCredit(CEO), ErrAbilityAlreadyUsed)

		other := roundPlayer(t, CEO, 0)
		assert.ErrorIs(t, other.TerminateCredit(CFO), ErrWrongCharacter)
	})
}

func TestRegulatorSwaps(t *testing.T) {
	t.Run("with deck grants bonus draws", func(t *testing.T) {
		assert := assert.New(t)
		p := roundPlayer(t, Regulator, 0)
		p.hand = []HandCard{
			AssetCard(testAsset(card.Red)),
			LiabilityCard(testLiability(2)),
			AssetCard(testAsset(card.Blue)),
		}

		assets := assetDeck(t, testAsset(card.Green))
		liabilities := liabilityDeck(t, testLiability(1))

		assetCount, liabilityCount, err := p.SwapWithDeck([]int{0, 2}, assets, liabilities)
		require.NoError(t, err)
		assert.Equal(2, assetCount)
		assert.Equal(0, liabilityCount)
		assert.Len(p.Hand(), 1)
		assert.Equal(3, assets.Len())

		// As trocas viram compras bônus e não contam para a devolução.
		for range 3 + 2 {
			_, err := p.DrawAsset(assets)
			require.NoError(t, err)
		}
		assert.False(p.CanDrawCards())

		// 5 compradas menos 2 bônus: deve uma devolução, não mais.
		assert.True(p.ShouldGiveBackCards())
		_, err = p.GiveBackCard(0)
		require.NoError(t, err)
		assert.False(p.ShouldGiveBackCards())
	})

	t.Run("with player trades hands", func(t *testing.T) {
		p := roundPlayer(t, Regulator, 0)
		target := roundPlayer(t, CEO, 0)
		p.hand = []HandCard{AssetCard(testAsset(card.Red))}
		target.hand = []HandCard{LiabilityCard(testLiability(3)), LiabilityCard(testLiability(4))}

		require.NoError(t, p.SwapHands(target))
		assert.Len(t, p.Hand(), 2)
		assert.Len(t, target.Hand(), 1)
		assert.ErrorIs(t, p.SwapHands(target), ErrAbilityAlreadyUsed)
	})

	t.Run("only the regulator", func(t *testing.T) {
		p := roundPlayer(t, CEO, 0)
		_, _, err := p.SwapWithDeck([]int{0}, assetDeck(t, testAsset(card.Red)), liabilityDeck(t, testLiability(1)))
		assert.ErrorIs(t, err, ErrWrongCharacter)
	})
}

func TestStakeholderDivest(t *testing.T) {
	market := &card.Market{}

	t.Run("pays market value minus one", func(t *testing.T) {
		p := roundPlayer(t, Stakeholder, 10)
		target := roundPlayer(t, CEO, 0)
		target.assets = []card.Asset{{Title: "HQ", GoldValue: 4, Color: card.Yellow}}

		cost, err := p.DivestAsset(target, 0, market)
		require.NoError(t, err)
		assert.Equal(t, 3, cost)
		assert.Equal(t, 7, p.Cash())

		a, err := target.RemoveAsset(0)
		require.NoError(t, err)
		assert.Equal(t, "HQ", a.Title)
		assert.Empty(t, target.Assets())
	})

	t.Run("cso is protected", func(t *testing.T) {
		p := roundPlayer(t, Stakeholder, 10)
		target := roundPlayer(t, CSO, 0)
		target.assets = []card.Asset{{GoldValue: 2, Color: card.Yellow}}

		_, err := p.DivestAsset(target, 0, market)
		assert.ErrorIs(t, err, ErrCannotDivestTarget)
	})

	t.Run("red and green assets are protected", func(t *testing.T) {
		p := roundPlayer(t, Stakeholder, 10)
		target := roundPlayer(t, CEO, 0)
		target.assets = []card.Asset{{GoldValue: 2, Color: card.Green}}

		_, err := p.DivestAsset(target, 0, market)
		assert.ErrorIs(t, err, ErrCannotDivestAssetType)
	})
}

func TestStartTurn(t *testing.T) {
	t.Run("flat cash plus colored bonus", func(t *testing.T) {
		market := &card.Market{Yellow: card.ConditionPlus}
		p := roundPlayer(t, CEO, 0)
		p.assets = []card.Asset{testAsset(card.Yellow), testAsset(card.Yellow), testAsset(card.Red)}

		// 1 fixo + 2 assets amarelos + mercado amarelo em alta.
		assert.Equal(t, 4, p.TurnCash(market))
		p.StartTurn(market)
		assert.Equal(t, 4, p.Cash())
	})

	t.Run("bonus never goes negative", func(t *testing.T) {
		market := &card.Market{Blue: card.ConditionMinus}
		p := roundPlayer(t, CFO, 0)

		p.StartTurn(market)
		assert.Equal(t, 1, p.Cash())
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		market := &card.Market{}
		p := roundPlayer(t, Banker, 0)

		p.StartTurn(market)
		p.StartTurn(market)
		assert.Equal(t, 1, p.Cash())
	})
}

func TestPublicInfoHidesHand(t *testing.T) {
	p := roundPlayer(t, CEO, 5)
	p.hand = []HandCard{AssetCard(testAsset(card.Red)), LiabilityCard(testLiability(3))}

	info := p.Info()
	assert.Equal(t, []card.Type{card.TypeAsset, card.TypeLiability}, info.Hand)
	assert.Equal(t, 5, info.Cash)
	require.NotNil(t, info.Character)
	assert.Equal(t, CEO, *info.Character)
}
