package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	assert := assert.New(t)

	c, err := LoadDefault()
	require.NoError(t, err)

	assert.NotEmpty(c.Assets())
	assert.NotEmpty(c.Liabilities())
	assert.NotEmpty(c.MarketEvents())

	marketCards := 0
	for _, me := range c.MarketEvents() {
		if me.IsMarket() {
			marketCards++
			assert.Nil(me.Event)
		} else {
			assert.NotNil(me.Event)
		}
	}
	assert.GreaterOrEqual(marketCards, 2, "default deck must keep a market card for every refresh")
}

func TestLoadExpandsCopies(t *testing.T) {
	assert := assert.New(t)

	c, err := Load(strings.NewReader(`{
		"deck_list": {
			"asset_deck": {
				"card_image_back_url": "back.webp",
				"card_list": [
					{"title": "Mine", "color": "Red", "gold_value": 2, "silver_value": 1, "copies": 3}
				]
			},
			"liability_deck": {
				"card_list": [
					{"liability_type": "Bank Loan", "gold_value": 2, "copies": 2}
				]
			},
			"market_events_deck": {
				"card_list": [
					{"title": "Calm", "copies": 2, "market_status": {"rfr": 4, "mrp": 4, "Red": "up"}}
				]
			}
		}
	}`))
	require.NoError(t, err)

	assets := c.Assets()
	require.Len(t, assets, 3)
	assert.Equal("Mine", assets[0].Title)
	assert.Equal("back.webp", assets[0].ImageBack)

	assert.Len(c.Liabilities(), 2)

	events := c.MarketEvents()
	require.Len(t, events, 2)
	assert.True(events[0].IsMarket())
	assert.Equal(ConditionPlus, events[0].Market.Red)
	// Condições ausentes no json viram "zero".
	assert.Equal(ConditionZero, events[0].Market.Blue)
	// Cada cópia aponta para o seu próprio Market.
	assert.NotSame(events[0].Market, events[1].Market)
}

func TestLoadRejectsBadDecks(t *testing.T) {
	base := func(assetList, liabilityList, marketList string) string {
		return `{"deck_list": {
			"asset_deck": {"card_list": [` + assetList + `]},
			"liability_deck": {"card_list": [` + liabilityList + `]},
			"market_events_deck": {"card_list": [` + marketList + `]}
		}}`
	}

	okAsset := `{"title": "Mine", "color": "Red", "gold_value": 2, "silver_value": 1, "copies": 1}`
	okLiability := `{"liability_type": "Bonds", "gold_value": 3, "copies": 1}`
	okMarket := `{"title": "Calm", "copies": 2, "market_status": {"rfr": 4, "mrp": 4}}`

	tests := []struct {
		name    string
		json    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty asset deck",
			json:    base(``, okLiability, okMarket),
			wantErr: ErrEmptyDeck,
		},
		{
			name:    "duplicate asset title",
			json:    base(okAsset+`,`+okAsset, okLiability, okMarket),
			wantErr: ErrDuplicateCard,
		},
		{
			name:    "unknown asset color",
			json:    base(`{"title": "Mine", "color": "Orange", "gold_value": 2, "silver_value": 1, "copies": 1}`, okLiability, okMarket),
			wantMsg: "unknown color",
		},
		{
			name:    "zero copies",
			json:    base(`{"title": "Mine", "color": "Red", "gold_value": 2, "silver_value": 1, "copies": 0}`, okLiability, okMarket),
			wantMsg: "invalid copies",
		},
		{
			name:    "unknown ability sentence",
			json:    base(`{"title": "Mine", "color": "Red", "gold_value": 2, "silver_value": 1, "copies": 1, "ability": "Win the game"}`, okLiability, okMarket),
			wantMsg: "unknown ability",
		},
		{
			name:    "unknown liability type",
			json:    base(okAsset, `{"liability_type": "Payday Loan", "gold_value": 3, "copies": 1}`, okMarket),
			wantMsg: "unknown liability type",
		},
		{
			name:    "market deck with only events",
			json:    base(okAsset, okLiability, `{"title": "Strike", "copies": 1, "event": {"description": "d", "effect": "e"}}`),
			wantErr: ErrNotEnoughMarketCards,
		},
		{
			// Uma única carta de mercado vira o mercado inicial e sai do
			// baralho; a troca de mercado ficaria sem carta para sacar.
			name:    "single market card",
			json:    base(okAsset, okLiability, `{"title": "Calm", "copies": 1, "market_status": {"rfr": 4, "mrp": 4}}`),
			wantErr: ErrNotEnoughMarketCards,
		},
		{
			name:    "card with market and event at once",
			json:    base(okAsset, okLiability, `{"title": "Both", "copies": 1, "market_status": {"rfr": 1, "mrp": 1}, "event": {"description": "d", "effect": "e"}}`),
			wantMsg: "exactly one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.json))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	assert := assert.New(t)

	c, err := LoadDefault()
	require.NoError(t, err)

	a := c.Assets()
	a[0].GoldValue = 99
	assert.NotEqual(99, c.Assets()[0].GoldValue)
}
