package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/dmorales-dev/cartamarket/internal/metrics"
	"github.com/dmorales-dev/cartamarket/internal/models"
)

const scryfallBaseURL = "https://api.scryfall.com"

// MinAutocompleteLen is the minimum query length forwarded to the provider.
// Shorter queries resolve to zero suggestions without a network call.
const MinAutocompleteLen = 3

// ScryfallService talks to the Scryfall REST API. Calls are rate limited per
// Scryfall's usage guidelines (roughly 10 requests/second) and responses are
// cached so repeated lookups for the same card do not hit the provider again.
type ScryfallService struct {
	client     *http.Client
	limiter    *rate.Limiter
	baseURL    string
	suggCache  *lru.Cache[string, []string]
	printCache *lru.Cache[string, []models.Printing]
}

func NewScryfallService() *ScryfallService {
	suggCache, _ := lru.New[string, []string](512)
	printCache, _ := lru.New[string, []models.Printing](128)
	return &ScryfallService{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter:    rate.NewLimiter(rate.Limit(10), 2),
		baseURL:    scryfallBaseURL,
		suggCache:  suggCache,
		printCache: printCache,
	}
}

type scryfallAutocompleteResponse struct {
	Data []string `json:"data"`
}

type scryfallSearchResponse struct {
	Data       []scryfallCard `json:"data"`
	Object     string         `json:"object"`
	TotalCards int            `json:"total_cards"`
	HasMore    bool           `json:"has_more"`
	NextPage   string         `json:"next_page"`
}

type scryfallCard struct {
	ImageURIs    *scryfallImages `json:"image_uris"`
	CardFaces    []scryfallFace  `json:"card_faces"`
	Prices       scryfallPrices  `json:"prices"`
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SetName      string          `json:"set_name"`
	Set          string          `json:"set"`
	CollectorNum string          `json:"collector_number"`
	Lang         string          `json:"lang"`
	Digital      bool            `json:"digital"`
	Finishes     []string        `json:"finishes"`
	FrameEffects []string        `json:"frame_effects"`
	BorderColor  string          `json:"border_color"`
	FullArt      bool            `json:"full_art"`
	Frame        string          `json:"frame"`
	ReleasedAt   string          `json:"released_at"`
}

type scryfallImages struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

type scryfallFace struct {
	ImageURIs *scryfallImages `json:"image_uris"`
}

type scryfallPrices struct {
	USD       string `json:"usd"`
	USDFoil   string `json:"usd_foil"`
	USDEtched string `json:"usd_etched"`
}

// Autocomplete returns full card-name candidates for a partial query using
// Scryfall's /cards/autocomplete endpoint.
func (s *ScryfallService) Autocomplete(ctx context.Context, partial string) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < MinAutocompleteLen {
		return []string{}, nil
	}

	cacheKey := strings.ToLower(partial)
	if cached, ok := s.suggCache.Get(cacheKey); ok {
		metrics.ScryfallCacheHits.WithLabelValues("autocomplete").Inc()
		return cached, nil
	}

	reqURL := fmt.Sprintf("%s/cards/autocomplete?q=%s", s.baseURL, url.QueryEscape(partial))

	var acResp scryfallAutocompleteResponse
	if err := s.getJSON(ctx, "autocomplete", reqURL, &acResp); err != nil {
		return nil, err
	}
	if acResp.Data == nil {
		acResp.Data = []string{}
	}

	s.suggCache.Add(cacheKey, acResp.Data)
	return acResp.Data, nil
}

// SearchPrintings retrieves every physical printing of a card by exact name.
// Uses Scryfall's `!"name" unique:prints` query so cards whose names merely
// contain the query are never pulled in, follows pagination, and drops
// digital-only prints before returning.
func (s *ScryfallService) SearchPrintings(ctx context.Context, cardName string) ([]models.Printing, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(cardName))
	if cached, ok := s.printCache.Get(cacheKey); ok {
		metrics.ScryfallCacheHits.WithLabelValues("printings").Inc()
		return cached, nil
	}

	// Escape quotes for Scryfall query syntax.
	safeName := strings.ReplaceAll(cardName, "\"", "\\\"")
	query := fmt.Sprintf(`!"%s" unique:prints`, safeName)
	reqURL := fmt.Sprintf("%s/cards/search?q=%s", s.baseURL, url.QueryEscape(query))

	var printings []models.Printing
	for reqURL != "" {
		var searchResp scryfallSearchResponse
		if err := s.getJSON(ctx, "printings", reqURL, &searchResp); err != nil {
			return nil, err
		}

		for _, sc := range searchResp.Data {
			if sc.Digital {
				continue
			}
			printings = append(printings, convertToPrinting(sc))
		}

		reqURL = ""
		if searchResp.HasMore && searchResp.NextPage != "" {
			reqURL = searchResp.NextPage
		}
	}

	if printings == nil {
		printings = []models.Printing{}
	}
	s.printCache.Add(cacheKey, printings)
	return printings, nil
}

// getJSON performs a rate-limited GET and decodes the response. A 404 leaves
// out at its zero value: Scryfall uses 404 for "no results", which callers
// treat as an empty set rather than an error.
func (s *ScryfallService) getJSON(ctx context.Context, endpoint, reqURL string, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.ScryfallRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("failed to reach scryfall: %w", err)
	}
	defer resp.Body.Close()
	metrics.ScryfallRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusNotFound {
		metrics.ScryfallRequestsTotal.WithLabelValues(endpoint, "not_found").Inc()
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ScryfallRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("scryfall API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ScryfallRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("failed to decode scryfall response: %w", err)
	}

	metrics.ScryfallRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

func convertToPrinting(sc scryfallCard) models.Printing {
	var imageURL string
	if sc.ImageURIs != nil {
		imageURL = sc.ImageURIs.Large
	} else if len(sc.CardFaces) > 0 && sc.CardFaces[0].ImageURIs != nil {
		imageURL = sc.CardFaces[0].ImageURIs.Large
	}

	finishes := make([]models.FinishKind, 0, len(sc.Finishes))
	for _, f := range sc.Finishes {
		finishes = append(finishes, models.FinishKind(f))
	}

	return models.Printing{
		ID:           sc.ID,
		Name:         sc.Name,
		SetCode:      sc.Set,
		SetName:      sc.SetName,
		Language:     models.LanguageCode(sc.Lang),
		Finishes:     finishes,
		ReleasedAt:   sc.ReleasedAt,
		ImageURL:     imageURL,
		CollectorNum: sc.CollectorNum,
		FrameEffects: sc.FrameEffects,
		BorderColor:  sc.BorderColor,
		FullArt:      sc.FullArt,
		FrameYear:    sc.Frame,
		Prices: models.PrintPrices{
			USD:       sc.Prices.USD,
			USDFoil:   sc.Prices.USDFoil,
			USDEtched: sc.Prices.USDEtched,
		},
	}
}
