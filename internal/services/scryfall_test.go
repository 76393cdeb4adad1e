package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestScryfall(handler http.Handler) (*ScryfallService, *httptest.Server) {
	server := httptest.NewServer(handler)
	svc := NewScryfallService()
	svc.baseURL = server.URL
	return svc, server
}

func TestAutocomplete_ShortQuerySkipsProvider(t *testing.T) {
	var hits int32
	svc, server := newTestScryfall(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	for _, query := range []string{"", "s", "so", "  so  "} {
		suggestions, err := svc.Autocomplete(context.Background(), query)
		if err != nil {
			t.Fatalf("Autocomplete(%q): %v", query, err)
		}
		if len(suggestions) != 0 {
			t.Errorf("Autocomplete(%q): expected no suggestions, got %v", query, suggestions)
		}
	}

	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("expected no provider requests for short queries, got %d", n)
	}
}

func TestAutocomplete_ReturnsSuggestions(t *testing.T) {
	svc, server := newTestScryfall(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/autocomplete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "sol r" {
			t.Errorf("unexpected query %q", q)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []string{"Sol Ring", "Sol Talisman"},
		})
	}))
	defer server.Close()

	suggestions, err := svc.Autocomplete(context.Background(), "sol r")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(suggestions) != 2 || suggestions[0] != "Sol Ring" {
		t.Errorf("unexpected suggestions: %v", suggestions)
	}
}

func TestAutocomplete_CachesResponses(t *testing.T) {
	var hits int32
	svc, server := newTestScryfall(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []string{"Sol Ring"}})
	}))
	defer server.Close()

	for i := 0; i < 3; i++ {
		if _, err := svc.Autocomplete(context.Background(), "Sol Ring"); err != nil {
			t.Fatalf("Autocomplete: %v", err)
		}
	}

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("expected 1 provider request with caching, got %d", n)
	}
}

func TestAutocomplete_NotFoundIsEmpty(t *testing.T) {
	svc, server := newTestScryfall(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	suggestions, err := svc.Autocomplete(context.Background(), "zzzzz")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", suggestions)
	}
}

func TestSearchPrintings_ExactNameQueryAndDigitalFilter(t *testing.T) {
	svc, server := newTestScryfall(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != `!"Sol Ring" unique:prints` {
			t.Errorf("unexpected search query %q", q)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"id": "c21-en", "name": "Sol Ring", "set": "c21",
					"set_name": "Commander 2021", "lang": "en",
					"released_at": "2021-04-23",
					"finishes":    []string{"nonfoil", "foil"},
					"prices":      map[string]string{"usd": "10.00"},
				},
				{
					"id": "mtga-1", "name": "Sol Ring", "set": "ana",
					"set_name": "Arena Base Set", "lang": "en",
					"released_at": "2020-01-01", "digital": true,
					"finishes": []string{"nonfoil"},
				},
			},
			"has_more": false,
		})
	}))
	defer server.Close()

	printings, err := svc.SearchPrintings(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("SearchPrintings: %v", err)
	}
	if len(printings) != 1 {
		t.Fatalf("expected digital print filtered out, got %d printings", len(printings))
	}
	if printings[0].ID != "c21-en" {
		t.Errorf("unexpected printing %s", printings[0].ID)
	}
	if printings[0].Prices.USD != "10.00" {
		t.Errorf("expected price carried over, got %q", printings[0].Prices.USD)
	}
}

func TestSearchPrintings_FollowsPagination(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/cards/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "p1", "name": "Sol Ring", "set": "c21", "lang": "en", "released_at": "2021-04-23"},
			},
			"has_more":  true,
			"next_page": server.URL + "/cards/search/page2",
		})
	})
	mux.HandleFunc("/cards/search/page2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "p2", "name": "Sol Ring", "set": "7ed", "lang": "en", "released_at": "2001-04-11"},
			},
			"has_more": false,
		})
	})
	svc, srv := newTestScryfall(mux)
	server = srv
	defer server.Close()

	printings, err := svc.SearchPrintings(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("SearchPrintings: %v", err)
	}
	if len(printings) != 2 {
		t.Fatalf("expected 2 printings across pages, got %d", len(printings))
	}
	if printings[0].ID != "p1" || printings[1].ID != "p2" {
		t.Errorf("unexpected page order: %s, %s", printings[0].ID, printings[1].ID)
	}
}

func TestSearchPrintings_NotFoundIsEmptyNotError(t *testing.T) {
	svc, server := newTestScryfall(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	printings, err := svc.SearchPrintings(context.Background(), "No Such Card")
	if err != nil {
		t.Fatalf("expected no error for zero results, got %v", err)
	}
	if len(printings) != 0 {
		t.Errorf("expected empty printing set, got %d", len(printings))
	}
}

func TestSearchPrintings_ServerErrorPropagates(t *testing.T) {
	svc, server := newTestScryfall(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := svc.SearchPrintings(context.Background(), "Sol Ring"); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestSearchPrintings_EscapesQuotesInName(t *testing.T) {
	var gotQuery string
	svc, server := newTestScryfall(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []map[string]interface{}{}})
	}))
	defer server.Close()

	name := `"Rumors of My Death . . ."`
	if _, err := svc.SearchPrintings(context.Background(), name); err != nil {
		t.Fatalf("SearchPrintings: %v", err)
	}
	want := fmt.Sprintf(`!"%s" unique:prints`, `\"Rumors of My Death . . .\"`)
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}
