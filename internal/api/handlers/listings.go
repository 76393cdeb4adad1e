package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmorales-dev/cartamarket/internal/models"
	"github.com/dmorales-dev/cartamarket/internal/services"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listings *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listings}
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// List browses the catalog with the storefront filters: free-text name,
// condition set, language set, color identity and max price.
func (h *ListingHandler) List(c *gin.Context) {
	filter := models.ListingFilter{
		Query:      c.Query("query"),
		SellerName: c.Query("seller"),
	}
	for _, cond := range splitParam(c.Query("condition")) {
		filter.Conditions = append(filter.Conditions, models.Condition(cond))
	}
	for _, lang := range splitParam(c.Query("language")) {
		filter.Languages = append(filter.Languages, models.LanguageCode(lang))
	}
	for _, color := range splitParam(c.Query("color")) {
		filter.Colors = append(filter.Colors, models.ManaColor(color))
	}
	if raw := c.Query("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_price must be a number"})
			return
		}
		filter.MaxPrice = maxPrice
	}

	listings, err := h.listingService.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings":    listings,
		"total_count": len(listings),
	})
}

func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listingService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listingService.Create(req)
	if errors.Is(err, services.ErrListingLimitReached) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	deleted, err := h.listingService.Delete(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SellerStats backs the profile page: listings used out of the tier limit
// and total ask value.
func (h *ListingHandler) SellerStats(c *gin.Context) {
	stats, err := h.listingService.SellerStats(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
