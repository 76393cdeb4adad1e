package services

import (
	"sort"

	"github.com/dmorales-dev/cartamarket/internal/models"
)

// Selection is the buyer-side cursor over a fetched printing set: the
// confirmed card name plus the edition, finish and language chosen so far.
// It is always a structured value; edition and finish are never smashed
// together into a composite string key.
type Selection struct {
	CardName string              `json:"card_name"`
	SetCode  string              `json:"set_code"`
	Finish   models.FinishKind   `json:"finish"`
	Language models.LanguageCode `json:"language"`
}

// Resolution is the derived view for one selection: the edition in play, the
// choices available under it, and the resolved price and image.
type Resolution struct {
	Edition   *models.Edition       `json:"edition"`
	Finishes  []models.FinishKind   `json:"finishes"`
	Languages []models.LanguageCode `json:"languages"`
	PriceUSD  string                `json:"price_usd"`
	HasPrice  bool                  `json:"has_price"`
	ImageURL  string                `json:"image_url"`
}

// UniqueEditions collapses a printing set into one Edition per set code,
// ordered newest release first. Within an edition the representative print
// is the English one when any exists, otherwise the first seen.
func UniqueEditions(printings []models.Printing) []models.Edition {
	sorted := make([]models.Printing, len(printings))
	copy(sorted, printings)
	sort.SliceStable(sorted, func(i, j int) bool {
		// Release dates are "YYYY-MM-DD" so lexical order is date order.
		return sorted[i].ReleasedAt > sorted[j].ReleasedAt
	})

	byCode := make(map[string]int)
	editions := make([]models.Edition, 0, len(sorted))
	for _, p := range sorted {
		idx, exists := byCode[p.SetCode]
		if !exists {
			byCode[p.SetCode] = len(editions)
			editions = append(editions, models.Edition{
				SetCode:        p.SetCode,
				SetName:        p.SetName,
				ReleasedAt:     p.ReleasedAt,
				Representative: p,
				Printings:      []models.Printing{p},
			})
			continue
		}
		ed := &editions[idx]
		ed.Printings = append(ed.Printings, p)
		if ed.Representative.Language != models.LangEnglish && p.Language == models.LangEnglish {
			ed.Representative = p
		}
	}
	return editions
}

// EditionByCode finds an edition by set code, or nil.
func EditionByCode(editions []models.Edition, setCode string) *models.Edition {
	for i := range editions {
		if editions[i].SetCode == setCode {
			return &editions[i]
		}
	}
	return nil
}

// FinishesForEdition returns the union of finishes across the edition's
// printings, in first-seen order.
func FinishesForEdition(ed *models.Edition) []models.FinishKind {
	seen := make(map[models.FinishKind]bool)
	var finishes []models.FinishKind
	for _, p := range ed.Printings {
		for _, f := range p.Finishes {
			if !seen[f] {
				seen[f] = true
				finishes = append(finishes, f)
			}
		}
	}
	return finishes
}

// DefaultFinish prefers nonfoil, falling back to the first available finish.
func DefaultFinish(finishes []models.FinishKind) models.FinishKind {
	for _, f := range finishes {
		if f == models.FinishNonfoil {
			return f
		}
	}
	if len(finishes) > 0 {
		return finishes[0]
	}
	return ""
}

// LanguagesForEdition returns the distinct print languages of the edition,
// in first-seen order.
func LanguagesForEdition(ed *models.Edition) []models.LanguageCode {
	seen := make(map[models.LanguageCode]bool)
	var langs []models.LanguageCode
	for _, p := range ed.Printings {
		if !seen[p.Language] {
			seen[p.Language] = true
			langs = append(langs, p.Language)
		}
	}
	return langs
}

// DefaultLanguage picks the language for a freshly selected edition:
// the current selection if the new edition still has it, else the
// storefront's display language, else English, else the first available.
func DefaultLanguage(available []models.LanguageCode, current, display models.LanguageCode) models.LanguageCode {
	contains := func(lang models.LanguageCode) bool {
		for _, l := range available {
			if l == lang {
				return true
			}
		}
		return false
	}
	if current != "" && contains(current) {
		return current
	}
	if display != "" && contains(display) {
		return display
	}
	if contains(models.LangEnglish) {
		return models.LangEnglish
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

// printingForLanguage returns the edition's first printing in the given
// language, or nil.
func printingForLanguage(ed *models.Edition, lang models.LanguageCode) *models.Printing {
	for i := range ed.Printings {
		if ed.Printings[i].Language == lang {
			return &ed.Printings[i]
		}
	}
	return nil
}

// priceFor picks the print's price for the requested finish, falling back
// through nonfoil -> foil -> etched when that finish is untracked.
func priceFor(p *models.Printing, finish models.FinishKind) string {
	if price := p.Prices.For(finish); price != "" {
		return price
	}
	return p.Prices.FallbackChain()
}

// ResolvePrice finds the market price for (edition, language, finish). The
// language-specific print is consulted first; when it carries no price data
// at all the edition's representative print stands in. ok is false only when
// every fallback is exhausted — an absence state, not an error.
func ResolvePrice(ed *models.Edition, lang models.LanguageCode, finish models.FinishKind) (string, bool) {
	if p := printingForLanguage(ed, lang); p != nil {
		if price := priceFor(p, finish); price != "" {
			return price, true
		}
	}
	if price := priceFor(&ed.Representative, finish); price != "" {
		return price, true
	}
	return "", false
}

// ResolveImage prefers the language-specific print's image, then the
// representative's, then the placeholder sentinel. Some language prints have
// no scan on Scryfall, so the fallback is common.
func ResolveImage(ed *models.Edition, lang models.LanguageCode) string {
	if p := printingForLanguage(ed, lang); p != nil && p.ImageURL != "" {
		return p.ImageURL
	}
	if ed.Representative.ImageURL != "" {
		return ed.Representative.ImageURL
	}
	return models.PlaceholderImage
}

// NormalizeSelection fills the unset parts of a selection with defaults and
// drops values that are invalid for the selected edition. The one deliberate
// cross-edition carry-over: a previously chosen language survives an edition
// change when the new edition also has prints in it.
func NormalizeSelection(editions []models.Edition, sel Selection, display models.LanguageCode) Selection {
	if len(editions) == 0 {
		return Selection{CardName: sel.CardName}
	}

	ed := EditionByCode(editions, sel.SetCode)
	if ed == nil {
		ed = &editions[0]
	}
	sel.SetCode = ed.SetCode

	finishes := FinishesForEdition(ed)
	validFinish := false
	for _, f := range finishes {
		if f == sel.Finish {
			validFinish = true
			break
		}
	}
	if !validFinish {
		sel.Finish = DefaultFinish(finishes)
	}

	langs := LanguagesForEdition(ed)
	sel.Language = DefaultLanguage(langs, sel.Language, display)
	return sel
}

// Resolve derives the full view for a normalized selection. The derivation
// is pure: running it twice over the same inputs yields the same Resolution.
func Resolve(editions []models.Edition, sel Selection, display models.LanguageCode) Resolution {
	sel = NormalizeSelection(editions, sel, display)
	ed := EditionByCode(editions, sel.SetCode)
	if ed == nil {
		return Resolution{ImageURL: models.PlaceholderImage}
	}

	price, hasPrice := ResolvePrice(ed, sel.Language, sel.Finish)
	return Resolution{
		Edition:   ed,
		Finishes:  FinishesForEdition(ed),
		Languages: LanguagesForEdition(ed),
		PriceUSD:  price,
		HasPrice:  hasPrice,
		ImageURL:  ResolveImage(ed, sel.Language),
	}
}
