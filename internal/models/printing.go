package models

import "strings"

// FinishKind is a physical print treatment of a card.
type FinishKind string

const (
	FinishNonfoil FinishKind = "nonfoil"
	FinishFoil    FinishKind = "foil"
	FinishEtched  FinishKind = "etched"
	FinishGalaxy  FinishKind = "galaxy"
)

// LanguageCode is the ISO-ish language tag Scryfall uses for a physical print
// ("en", "es", "ja", "zhs", ...).
type LanguageCode string

const (
	LangEnglish  LanguageCode = "en"
	LangSpanish  LanguageCode = "es"
	LangJapanese LanguageCode = "ja"
)

// PlaceholderImage is returned when neither the language-specific print nor
// the edition representative has an image.
const PlaceholderImage = "/card-back.png"

// PrintPrices holds the market prices Scryfall tracks per finish.
// Empty string means the price is not tracked or not available.
type PrintPrices struct {
	USD       string `json:"usd"`
	USDFoil   string `json:"usd_foil"`
	USDEtched string `json:"usd_etched"`
}

// For returns the price for a specific finish. Galaxy foils are priced as
// foils on Scryfall.
func (p PrintPrices) For(finish FinishKind) string {
	switch finish {
	case FinishFoil, FinishGalaxy:
		return p.USDFoil
	case FinishEtched:
		return p.USDEtched
	default:
		return p.USD
	}
}

// FallbackChain returns the first tracked price in nonfoil -> foil -> etched
// order, or "" if none is tracked.
func (p PrintPrices) FallbackChain() string {
	for _, price := range []string{p.USD, p.USDFoil, p.USDEtched} {
		if price != "" {
			return price
		}
	}
	return ""
}

// Printing is one physical print of a card: a specific set, language and
// finish availability. Digital-only prints are filtered out before a
// Printing is ever constructed, so the working set never contains them.
type Printing struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	SetCode      string       `json:"set_code"`
	SetName      string       `json:"set_name"`
	Language     LanguageCode `json:"language"`
	Finishes     []FinishKind `json:"finishes"`
	ReleasedAt   string       `json:"released_at"` // "2021-04-23", sortable lexically
	ImageURL     string       `json:"image_url"`
	Prices       PrintPrices  `json:"prices"`
	CollectorNum string       `json:"collector_number"`
	FrameEffects []string     `json:"frame_effects"`
	BorderColor  string       `json:"border_color"`
	FullArt      bool         `json:"full_art"`
	FrameYear    string       `json:"frame"`
}

// HasFinish reports whether this print is available in the given finish.
func (p *Printing) HasFinish(finish FinishKind) bool {
	for _, f := range p.Finishes {
		if f == finish {
			return true
		}
	}
	return false
}

func (p *Printing) hasFrameEffect(effect string) bool {
	for _, fe := range p.FrameEffects {
		if fe == effect {
			return true
		}
	}
	return false
}

// VariantLabel builds the human-readable variant suffix shown next to the
// set name, e.g. "(Showcase, Borderless)". Purely cosmetic; it has no effect
// on pricing or selection.
func (p *Printing) VariantLabel() string {
	var parts []string
	if p.hasFrameEffect("showcase") {
		parts = append(parts, "Showcase")
	}
	if p.BorderColor == "borderless" {
		parts = append(parts, "Borderless")
	}
	if p.hasFrameEffect("extendedart") {
		parts = append(parts, "Extended Art")
	}
	if p.FullArt {
		parts = append(parts, "Full Art")
	}
	if p.FrameYear == "1997" || p.FrameYear == "1993" {
		parts = append(parts, "Retro Frame")
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Edition groups every Printing of one card that shares a set code. The
// representative print supplies default display data (set name, image)
// before a specific language or finish is chosen.
type Edition struct {
	SetCode        string     `json:"set_code"`
	SetName        string     `json:"set_name"`
	ReleasedAt     string     `json:"released_at"`
	Representative Printing   `json:"representative"`
	Printings      []Printing `json:"printings"`
}
