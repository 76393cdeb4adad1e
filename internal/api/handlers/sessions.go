package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmorales-dev/cartamarket/internal/models"
	"github.com/dmorales-dev/cartamarket/internal/services"
)

// SessionHandler exposes the create-listing draft flow: search, confirm,
// and the edition/finish/language selection steps.
type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessions}
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req struct {
		DisplayLanguage models.DisplayLanguage `json:"display_language"`
	}
	// Body is optional; default to the Spanish storefront.
	_ = c.ShouldBindJSON(&req)
	if req.DisplayLanguage == "" {
		req.DisplayLanguage = models.DisplaySpanish
	}

	session := h.sessionService.Create(req.DisplayLanguage)
	c.JSON(http.StatusCreated, session.Snapshot())
}

func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessionService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// Search records the current search-box text. Typing away from a confirmed
// name clears the draft back to idle.
func (h *SessionHandler) Search(c *gin.Context) {
	session, err := h.sessionService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.EditSearchText(req.Text)
	c.JSON(http.StatusOK, session.Snapshot())
}

// Confirm locks in a card name and starts the printings fetch. The response
// usually reports the loading state; the client polls Get for the result.
func (h *SessionHandler) Confirm(c *gin.Context) {
	session, err := h.sessionService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.ConfirmName(req.Name)
	c.JSON(http.StatusOK, session.Snapshot())
}

// Select applies edition, finish and language choices, in that order when
// several are present in one request.
func (h *SessionHandler) Select(c *gin.Context) {
	session, err := h.sessionService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		SetCode  string              `json:"set_code"`
		Finish   models.FinishKind   `json:"finish"`
		Language models.LanguageCode `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apply := func(fn func() error) bool {
		err := fn()
		if err == nil {
			return true
		}
		if errors.Is(err, services.ErrNotReady) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return false
	}

	if req.SetCode != "" && !apply(func() error { return session.SelectEdition(req.SetCode) }) {
		return
	}
	if req.Finish != "" && !apply(func() error { return session.SelectFinish(req.Finish) }) {
		return
	}
	if req.Language != "" && !apply(func() error { return session.SelectLanguage(req.Language) }) {
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}
