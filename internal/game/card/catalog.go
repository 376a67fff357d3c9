package card

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// boardgame.json é a fonte oficial das cartas do jogo. Fica embutida no
// binário para o servidor não depender de um arquivo externo em produção.
//
//go:embed boardgame.json
var defaultBoardgame []byte

var (
	// ErrDuplicateCard indica que um baralho do json tem duas cartas com o mesmo título.
	ErrDuplicateCard = errors.New("duplicate card in deck")
	// ErrEmptyDeck indica que um baralho do json não tem nenhuma carta.
	ErrEmptyDeck = errors.New("deck has no cards")
	// ErrNotEnoughMarketCards indica que o baralho de mercado tem menos de
	// duas cartas de mercado. Uma vira o mercado inicial e sai do baralho;
	// sem uma segunda, a troca de mercado nunca encontraria carta para sacar.
	ErrNotEnoughMarketCards = errors.New("market deck needs at least two market cards")
)

// MarketEvent é uma carta do baralho de mercado: ou um novo mercado ou um
// evento, nunca os dois.
type MarketEvent struct {
	Market *Market
	Event  *Event
}

// IsMarket informa se esta carta é uma carta de mercado.
func (me MarketEvent) IsMarket() bool { return me.Market != nil }

// Catalog guarda todas as cartas do jogo já validadas e com as cópias
// expandidas. Depois de carregado o catálogo nunca muda: cada sala pede
// cópias novas dos baralhos e embaralha as suas.
type Catalog struct {
	assets       []Asset
	liabilities  []Liability
	marketEvents []MarketEvent
}

// ============================================================================
// Representação do json
// ============================================================================

type loadedCards struct {
	Metadata struct {
		Version  string `json:"version"`
		Gamemode string `json:"gamemode"`
	} `json:"metadata"`
	DeckList struct {
		AssetDeck        jsonDeck[assetCard]       `json:"asset_deck"`
		LiabilityDeck    jsonDeck[liabilityCard]   `json:"liability_deck"`
		MarketEventsDeck jsonDeck[marketEventCard] `json:"market_events_deck"`
	} `json:"deck_list"`
}

type jsonDeck[T any] struct {
	ImageBackURL string `json:"card_image_back_url"`
	CardList     []T    `json:"card_list"`
}

type assetCard struct {
	Title        string  `json:"title"`
	Color        Color   `json:"color"`
	GoldValue    int     `json:"gold_value"`
	SilverValue  int     `json:"silver_value"`
	Copies       int     `json:"copies"`
	Ability      Ability `json:"ability,omitempty"`
	CardImageURL string  `json:"card_image_url"`
}

type liabilityCard struct {
	LiabilityType LiabilityType `json:"liability_type"`
	GoldValue     int           `json:"gold_value"`
	Copies        int           `json:"copies"`
	CardImageURL  string        `json:"card_image_url"`
}

// marketEventCard junta os dois formatos do baralho de mercado: cartas com um
// objeto "market_status" e cartas com um objeto "event".
type marketEventCard struct {
	Title        string `json:"title"`
	Copies       int    `json:"copies"`
	CardImageURL string `json:"card_image_url"`

	MarketStatus *struct {
		RFR    int             `json:"rfr"`
		MRP    int             `json:"mrp"`
		Yellow MarketCondition `json:"Yellow"`
		Blue   MarketCondition `json:"Blue"`
		Green  MarketCondition `json:"Green"`
		Purple MarketCondition `json:"Purple"`
		Red    MarketCondition `json:"Red"`
	} `json:"market_status"`
	Event *struct {
		Description string `json:"description"`
		Effect      string `json:"effect"`
	} `json:"event"`
}

// ============================================================================
// Carregamento
// ============================================================================

// LoadDefault carrega o catálogo a partir do boardgame.json embutido.
func LoadDefault() (*Catalog, error) {
	return Load(bytes.NewReader(defaultBoardgame))
}

// Load lê um json de cartas, valida cada baralho e expande o campo "copies"
// de cada carta. Qualquer erro aqui é fatal na subida do servidor: nenhuma
// sala pode abrir com um catálogo inválido.
func Load(r io.Reader) (*Catalog, error) {
	var loaded loadedCards
	dec := json.NewDecoder(r)
	if err := dec.Decode(&loaded); err != nil {
		return nil, fmt.Errorf("parsing card data: %w", err)
	}

	c := &Catalog{}

	if err := c.loadAssets(loaded.DeckList.AssetDeck); err != nil {
		return nil, fmt.Errorf("asset deck: %w", err)
	}
	if err := c.loadLiabilities(loaded.DeckList.LiabilityDeck); err != nil {
		return nil, fmt.Errorf("liability deck: %w", err)
	}
	if err := c.loadMarketEvents(loaded.DeckList.MarketEventsDeck); err != nil {
		return nil, fmt.Errorf("market events deck: %w", err)
	}

	return c, nil
}

func (c *Catalog) loadAssets(d jsonDeck[assetCard]) error {
	if len(d.CardList) == 0 {
		return ErrEmptyDeck
	}

	seen := make(map[string]bool)
	for _, a := range d.CardList {
		if seen[a.Title] {
			return fmt.Errorf("%w: %q", ErrDuplicateCard, a.Title)
		}
		seen[a.Title] = true

		if !a.Color.Valid() {
			return fmt.Errorf("asset %q has unknown color %q", a.Title, a.Color)
		}
		if a.Copies < 1 {
			return fmt.Errorf("asset %q has invalid copies %d", a.Title, a.Copies)
		}
		switch a.Ability {
		case "", MinusIntoPlus, SilverIntoGold, CountAsAnyColor:
		default:
			return fmt.Errorf("asset %q has unknown ability %q", a.Title, a.Ability)
		}

		for range a.Copies {
			c.assets = append(c.assets, Asset{
				Title:       a.Title,
				GoldValue:   a.GoldValue,
				SilverValue: a.SilverValue,
				Color:       a.Color,
				Ability:     a.Ability,
				ImageFront:  a.CardImageURL,
				ImageBack:   d.ImageBackURL,
			})
		}
	}
	return nil
}

func (c *Catalog) loadLiabilities(d jsonDeck[liabilityCard]) error {
	if len(d.CardList) == 0 {
		return ErrEmptyDeck
	}

	seen := make(map[string]bool)
	for _, l := range d.CardList {
		// Liabilities não têm título, então a chave é tipo+valor.
		key := fmt.Sprintf("%s/%d", l.LiabilityType, l.GoldValue)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, key)
		}
		seen[key] = true

		if _, err := l.LiabilityType.RFRPercent(); err != nil {
			return err
		}
		if l.Copies < 1 {
			return fmt.Errorf("liability %s has invalid copies %d", key, l.Copies)
		}

		for range l.Copies {
			c.liabilities = append(c.liabilities, Liability{
				Value:      l.GoldValue,
				Type:       l.LiabilityType,
				ImageFront: l.CardImageURL,
				ImageBack:  d.ImageBackURL,
			})
		}
	}
	return nil
}

func (c *Catalog) loadMarketEvents(d jsonDeck[marketEventCard]) error {
	if len(d.CardList) == 0 {
		return ErrEmptyDeck
	}

	seen := make(map[string]bool)
	marketCards := 0
	for _, me := range d.CardList {
		if seen[me.Title] {
			return fmt.Errorf("%w: %q", ErrDuplicateCard, me.Title)
		}
		seen[me.Title] = true

		if me.Copies < 1 {
			return fmt.Errorf("market/event %q has invalid copies %d", me.Title, me.Copies)
		}

		switch {
		case me.MarketStatus != nil && me.Event == nil:
			marketCards += me.Copies
			market := Market{
				Title:  me.Title,
				RFR:    me.MarketStatus.RFR,
				MRP:    me.MarketStatus.MRP,
				Yellow: me.MarketStatus.Yellow.normalize(),
				Blue:   me.MarketStatus.Blue.normalize(),
				Green:  me.MarketStatus.Green.normalize(),
				Purple: me.MarketStatus.Purple.normalize(),
				Red:    me.MarketStatus.Red.normalize(),
			}
			for range me.Copies {
				m := market
				c.marketEvents = append(c.marketEvents, MarketEvent{Market: &m})
			}
		case me.Event != nil && me.MarketStatus == nil:
			event := Event{
				Title:       me.Title,
				Description: me.Event.Description,
				Effect:      me.Event.Effect,
			}
			for range me.Copies {
				e := event
				c.marketEvents = append(c.marketEvents, MarketEvent{Event: &e})
			}
		default:
			return fmt.Errorf("card %q must have exactly one of market_status or event", me.Title)
		}
	}

	if marketCards < 2 {
		return ErrNotEnoughMarketCards
	}
	return nil
}

// ============================================================================
// Acesso
// ============================================================================

// Assets devolve uma cópia nova da lista de assets, pronta para virar o
// baralho de uma sala.
func (c *Catalog) Assets() []Asset {
	out := make([]Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Liabilities devolve uma cópia nova da lista de liabilities.
func (c *Catalog) Liabilities() []Liability {
	out := make([]Liability, len(c.liabilities))
	copy(out, c.liabilities)
	return out
}

// MarketEvents devolve uma cópia nova da lista de cartas de mercado e eventos.
func (c *Catalog) MarketEvents() []MarketEvent {
	out := make([]MarketEvent, len(c.marketEvents))
	copy(out, c.marketEvents)
	return out
}
