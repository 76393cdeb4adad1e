package models

import (
	"strings"
	"time"
)

// ManaColor is a single color in a card's color identity.
type ManaColor string

const (
	ColorWhite ManaColor = "W"
	ColorBlue  ManaColor = "U"
	ColorBlack ManaColor = "B"
	ColorRed   ManaColor = "R"
	ColorGreen ManaColor = "G"
)

// Listing is one card offered for sale by a seller. Rows are created from a
// completed draft session (or a direct payload) and browsed via the catalog
// filters.
type Listing struct {
	ID               string       `json:"id" gorm:"primaryKey"`
	Name             string       `json:"name" gorm:"not null;index"`
	SetCode          string       `json:"set_code"`
	SetName          string       `json:"set_name"`
	ImageURL         string       `json:"image_url"`
	SellerName       string       `json:"seller_name" gorm:"not null;index"`
	SellerReputation float64      `json:"seller_reputation"`
	PriceUSD         float64      `json:"price_usd" gorm:"index"`
	Condition        Condition    `json:"condition" gorm:"default:'NM'"`
	Finish           FinishKind   `json:"finish" gorm:"default:'nonfoil'"`
	Language         LanguageCode `json:"language" gorm:"default:'en'"`
	Colors           string       `json:"colors"` // color identity as "W,U", empty for colorless
	ManaCost         int          `json:"mana_cost"`
	Quantity         int          `json:"quantity" gorm:"default:1"`
	Comments         string       `json:"comments"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// IsFoil reports whether the listed copy has any foil treatment.
func (l *Listing) IsFoil() bool {
	return l.Finish == FinishFoil || l.Finish == FinishEtched || l.Finish == FinishGalaxy
}

// ColorList splits the stored color identity into individual colors.
func (l *Listing) ColorList() []ManaColor {
	if l.Colors == "" {
		return nil
	}
	parts := strings.Split(l.Colors, ",")
	colors := make([]ManaColor, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			colors = append(colors, ManaColor(p))
		}
	}
	return colors
}

// CreateListingRequest is the payload for publishing a new listing.
type CreateListingRequest struct {
	Name             string       `json:"name" binding:"required"`
	SetCode          string       `json:"set_code" binding:"required"`
	SetName          string       `json:"set_name"`
	ImageURL         string       `json:"image_url"`
	SellerName       string       `json:"seller_name" binding:"required"`
	SellerReputation float64      `json:"seller_reputation"`
	PriceUSD         float64      `json:"price_usd" binding:"required"`
	Condition        Condition    `json:"condition"`
	Finish           FinishKind   `json:"finish"`
	Language         LanguageCode `json:"language"`
	Colors           string       `json:"colors"`
	ManaCost         int          `json:"mana_cost"`
	Quantity         int          `json:"quantity"`
	Comments         string       `json:"comments"`
}

// ListingFilter carries the browse-screen filters. Zero values mean
// "no constraint".
type ListingFilter struct {
	Query      string
	Conditions []Condition
	Languages  []LanguageCode
	Colors     []ManaColor
	MaxPrice   float64
	SellerName string
}

// SellingStats summarizes a seller's profile numbers.
type SellingStats struct {
	SellerName     string  `json:"seller_name"`
	ActiveListings int     `json:"active_listings"`
	ListingLimit   int     `json:"listing_limit"`
	TotalValueUSD  float64 `json:"total_value_usd"`
}
