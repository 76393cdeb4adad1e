package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dmorales-dev/cartamarket/internal/metrics"
	"github.com/dmorales-dev/cartamarket/internal/models"
)

// CardBrowser is the slice of the card-data provider the draft session needs.
// *ScryfallService implements it; tests substitute a fake.
type CardBrowser interface {
	Autocomplete(ctx context.Context, partial string) ([]string, error)
	SearchPrintings(ctx context.Context, cardName string) ([]models.Printing, error)
}

// SessionState is the lifecycle phase of a listing draft.
type SessionState string

const (
	StateIdle    SessionState = "idle"    // no card name confirmed
	StateLoading SessionState = "loading" // printings fetch in flight
	StateReady   SessionState = "ready"   // printings fetched, editions available
	StateEmpty   SessionState = "empty"   // fetch finished with zero editions
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotReady        = errors.New("no confirmed card with editions to select from")
	ErrUnknownEdition  = errors.New("edition not present in the fetched printings")
	ErrInvalidFinish   = errors.New("finish not available for the selected edition")
	ErrInvalidLanguage = errors.New("language not available for the selected edition")
)

// DefaultSuggestDebounce collapses keystrokes into one provider call.
const DefaultSuggestDebounce = 300 * time.Millisecond

// DraftSession is the server-side state of one create-listing flow. All
// mutation happens under the session mutex, so the working set and selection
// are owned by a single logical thread; async provider results re-enter
// through sequence and generation gates that drop anything stale.
type DraftSession struct {
	ID          string
	displayLang models.LanguageCode

	mu            sync.Mutex
	provider      CardBrowser
	debounce      time.Duration
	state         SessionState
	searchText    string
	confirmedName string
	suggestions   []string
	fetchFailed   bool

	// suggestSeq numbers outbound autocomplete calls; a response is applied
	// only if no later call's response has been applied before it.
	suggestSeq     uint64
	suggestApplied uint64
	suggestTimer   *time.Timer

	// fetchGen identifies the latest confirmed fetch; late results for a
	// superseded name compare unequal and are discarded.
	fetchGen  uint64
	printings []models.Printing
	editions  []models.Edition
	selection Selection
	resolved  Resolution
}

// SessionView is the snapshot handed to the presentation layer.
type SessionView struct {
	ID            string           `json:"id"`
	State         SessionState     `json:"state"`
	SearchText    string           `json:"search_text"`
	ConfirmedName string           `json:"confirmed_name"`
	Suggestions   []string         `json:"suggestions"`
	FetchFailed   bool             `json:"fetch_failed"`
	Editions      []models.Edition `json:"editions"`
	Selection     Selection        `json:"selection"`
	Resolved      Resolution       `json:"resolved"`
}

// SessionService creates and stores draft sessions. The store is a bounded
// LRU so abandoned drafts age out on their own.
type SessionService struct {
	provider CardBrowser
	debounce time.Duration
	store    *lru.Cache[string, *DraftSession]
}

func NewSessionService(provider CardBrowser) *SessionService {
	store, _ := lru.New[string, *DraftSession](1024)
	return &SessionService{
		provider: provider,
		debounce: DefaultSuggestDebounce,
		store:    store,
	}
}

// SetDebounce overrides the suggest debounce window. Used by tests to avoid
// real 300 ms waits.
func (svc *SessionService) SetDebounce(d time.Duration) {
	svc.debounce = d
}

// Create starts an empty draft session for one client.
func (svc *SessionService) Create(display models.DisplayLanguage) *DraftSession {
	s := &DraftSession{
		ID:          uuid.New().String(),
		displayLang: models.LanguageCode(display),
		provider:    svc.provider,
		debounce:    svc.debounce,
		state:       StateIdle,
	}
	svc.store.Add(s.ID, s)
	metrics.SessionsCreated.Inc()
	return s
}

// Get looks up a draft session by ID.
func (svc *SessionService) Get(id string) (*DraftSession, error) {
	s, ok := svc.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// EditSearchText records a keystroke in the card-name search box. Typing
// away from a confirmed name drops the whole working set and returns the
// session to idle; a debounced autocomplete call is scheduled when the text
// is long enough to query.
func (s *DraftSession) EditSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchText = text
	if s.confirmedName != "" && text != s.confirmedName {
		s.confirmedName = ""
		s.fetchGen++ // any in-flight fetch is now superseded
		s.resetWorkingSetLocked()
		s.setStateLocked(StateIdle)
	}

	if s.suggestTimer != nil {
		s.suggestTimer.Stop()
		s.suggestTimer = nil
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinAutocompleteLen || text == s.confirmedName {
		s.suggestions = nil
		return
	}

	query := text
	s.suggestTimer = time.AfterFunc(s.debounce, func() {
		s.issueSuggest(query)
	})
}

// issueSuggest fires one autocomplete call for the debounced query. The
// sequence number taken at issue time decides whether the response may still
// be applied when it comes back.
func (s *DraftSession) issueSuggest(query string) {
	s.mu.Lock()
	if s.searchText != query || query == s.confirmedName {
		s.mu.Unlock()
		return
	}
	s.suggestSeq++
	seq := s.suggestSeq
	provider := s.provider
	s.mu.Unlock()

	results, err := provider.Autocomplete(context.Background(), query)
	if err != nil {
		// Fail-soft: a provider hiccup is zero suggestions, never an error
		// surfaced to the client.
		log.Printf("autocomplete %q failed: %v", query, err)
		results = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.suggestApplied {
		metrics.SuggestStaleDropped.Inc()
		return
	}
	s.suggestApplied = seq
	if s.searchText != query {
		s.suggestions = nil
		return
	}
	s.suggestions = results
}

// ConfirmName locks in a card name and fetches its printings. A confirm
// while an earlier fetch is still in flight supersedes it; the old fetch's
// result is discarded on arrival.
func (s *DraftSession) ConfirmName(name string) {
	s.mu.Lock()
	s.searchText = name
	s.confirmedName = name
	s.suggestions = nil
	if s.suggestTimer != nil {
		s.suggestTimer.Stop()
		s.suggestTimer = nil
	}
	s.resetWorkingSetLocked()
	s.setStateLocked(StateLoading)
	s.fetchGen++
	gen := s.fetchGen
	provider := s.provider
	s.mu.Unlock()

	go s.fetchPrintings(provider, name, gen)
}

func (s *DraftSession) fetchPrintings(provider CardBrowser, name string, gen uint64) {
	printings, err := provider.SearchPrintings(context.Background(), name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		metrics.FetchSuperseded.Inc()
		return
	}

	if err != nil {
		// Recoverable: the working set stays cleared, never half-populated.
		log.Printf("printings fetch for %q failed: %v", name, err)
		s.resetWorkingSetLocked()
		s.fetchFailed = true
		s.setStateLocked(StateEmpty)
		return
	}

	s.printings = printings
	s.editions = UniqueEditions(printings)
	if len(s.editions) == 0 {
		s.setStateLocked(StateEmpty)
		return
	}

	s.selection = NormalizeSelection(s.editions, Selection{CardName: name}, s.displayLang)
	s.resolved = Resolve(s.editions, s.selection, s.displayLang)
	s.setStateLocked(StateReady)
}

// SelectEdition switches the selection to another edition. Finish resets to
// the new edition's default; the chosen language carries over when the new
// edition also has prints in it.
func (s *DraftSession) SelectEdition(setCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	if EditionByCode(s.editions, setCode) == nil {
		return ErrUnknownEdition
	}
	s.selection = NormalizeSelection(s.editions, Selection{
		CardName: s.selection.CardName,
		SetCode:  setCode,
		Language: s.selection.Language,
	}, s.displayLang)
	s.resolved = Resolve(s.editions, s.selection, s.displayLang)
	return nil
}

// SelectFinish changes only the finish; edition and language are untouched.
func (s *DraftSession) SelectFinish(finish models.FinishKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	valid := false
	for _, f := range s.resolved.Finishes {
		if f == finish {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidFinish
	}
	s.selection.Finish = finish
	s.resolved = Resolve(s.editions, s.selection, s.displayLang)
	return nil
}

// SelectLanguage changes only the language; price and image re-resolve
// against the language-specific print.
func (s *DraftSession) SelectLanguage(lang models.LanguageCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	valid := false
	for _, l := range s.resolved.Languages {
		if l == lang {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidLanguage
	}
	s.selection.Language = lang
	s.resolved = Resolve(s.editions, s.selection, s.displayLang)
	return nil
}

// Snapshot returns a copy of the session for rendering.
func (s *DraftSession) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	suggestions := make([]string, len(s.suggestions))
	copy(suggestions, s.suggestions)
	editions := make([]models.Edition, len(s.editions))
	copy(editions, s.editions)
	return SessionView{
		ID:            s.ID,
		State:         s.state,
		SearchText:    s.searchText,
		ConfirmedName: s.confirmedName,
		Suggestions:   suggestions,
		FetchFailed:   s.fetchFailed,
		Editions:      editions,
		Selection:     s.selection,
		Resolved:      s.resolved,
	}
}

func (s *DraftSession) resetWorkingSetLocked() {
	s.printings = nil
	s.editions = nil
	s.selection = Selection{}
	s.resolved = Resolution{}
	s.fetchFailed = false
}

func (s *DraftSession) setStateLocked(next SessionState) {
	if s.state != next {
		metrics.SessionTransitions.WithLabelValues(string(next)).Inc()
	}
	s.state = next
}
