package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmorales-dev/cartamarket/internal/metrics"
	"github.com/dmorales-dev/cartamarket/internal/models"
)

// DefaultListingLimit caps active listings per seller on the free tier.
const DefaultListingLimit = 20

var ErrListingLimitReached = errors.New("active listing limit reached for seller")

// ListingService owns the marketplace catalog: creating, browsing and
// removing card listings.
type ListingService struct {
	db           *gorm.DB
	listingLimit int
}

func NewListingService(db *gorm.DB, listingLimit int) *ListingService {
	if listingLimit <= 0 {
		listingLimit = DefaultListingLimit
	}
	return &ListingService{db: db, listingLimit: listingLimit}
}

// List applies the browse-screen filters and returns matching listings,
// newest first.
func (s *ListingService) List(filter models.ListingFilter) ([]models.Listing, error) {
	start := time.Now()
	query := s.db.Model(&models.Listing{}).Order("created_at DESC")

	if filter.Query != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}
	if len(filter.Conditions) > 0 {
		query = query.Where("condition IN ?", filter.Conditions)
	}
	if len(filter.Languages) > 0 {
		query = query.Where("language IN ?", filter.Languages)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price_usd <= ?", filter.MaxPrice)
	}
	if filter.SellerName != "" {
		query = query.Where("seller_name = ?", filter.SellerName)
	}
	if len(filter.Colors) > 0 {
		// Colors are stored as "W,U"; match listings containing any of the
		// requested colors.
		var clauses []string
		var args []interface{}
		for _, color := range filter.Colors {
			clauses = append(clauses, "(colors = ? OR colors LIKE ? OR colors LIKE ? OR colors LIKE ?)")
			c := string(color)
			args = append(args, c, c+",%", "%,"+c, "%,"+c+",%")
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	metrics.ListingQueryDuration.Observe(time.Since(start).Seconds())
	return listings, nil
}

// Get returns one listing, or nil when it does not exist.
func (s *ListingService) Get(id string) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.First(&listing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	return &listing, nil
}

// Create publishes a listing, enforcing the per-seller active-listing limit.
func (s *ListingService) Create(req models.CreateListingRequest) (*models.Listing, error) {
	var active int64
	if err := s.db.Model(&models.Listing{}).
		Where("seller_name = ?", req.SellerName).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to count seller listings: %w", err)
	}
	if int(active) >= s.listingLimit {
		return nil, ErrListingLimitReached
	}

	condition := req.Condition
	if condition == "" {
		condition = models.ConditionNM
	}
	if !models.ValidCondition(condition) {
		return nil, fmt.Errorf("unknown condition %q", condition)
	}
	finish := req.Finish
	if finish == "" {
		finish = models.FinishNonfoil
	}
	language := req.Language
	if language == "" {
		language = models.LangEnglish
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	listing := models.Listing{
		ID:               uuid.New().String(),
		Name:             req.Name,
		SetCode:          req.SetCode,
		SetName:          req.SetName,
		ImageURL:         req.ImageURL,
		SellerName:       req.SellerName,
		SellerReputation: req.SellerReputation,
		PriceUSD:         req.PriceUSD,
		Condition:        condition,
		Finish:           finish,
		Language:         language,
		Colors:           req.Colors,
		ManaCost:         req.ManaCost,
		Quantity:         quantity,
		Comments:         req.Comments,
		CreatedAt:        time.Now(),
	}
	if err := s.db.Create(&listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	metrics.ListingsCreated.Inc()
	return &listing, nil
}

// Delete removes a seller's listing. Not-found is reported so the handler
// can 404 instead of silently succeeding.
func (s *ListingService) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.Listing{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SellerStats summarizes a seller's profile: active listings, the tier
// limit, and the summed ask value.
func (s *ListingService) SellerStats(sellerName string) (*models.SellingStats, error) {
	var count int64
	if err := s.db.Model(&models.Listing{}).
		Where("seller_name = ?", sellerName).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	var total struct {
		Value float64
	}
	if err := s.db.Model(&models.Listing{}).
		Select("COALESCE(SUM(price_usd * quantity), 0) AS value").
		Where("seller_name = ?", sellerName).
		Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to sum listing value: %w", err)
	}

	return &models.SellingStats{
		SellerName:     sellerName,
		ActiveListings: int(count),
		ListingLimit:   s.listingLimit,
		TotalValueUSD:  total.Value,
	}, nil
}
