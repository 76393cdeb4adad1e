package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmorales-dev/cartamarket/internal/models"
	"github.com/dmorales-dev/cartamarket/internal/services"
)

type CardHandler struct {
	scryfallService *services.ScryfallService
}

func NewCardHandler(scryfall *services.ScryfallService) *CardHandler {
	return &CardHandler{scryfallService: scryfall}
}

// Autocomplete suggests full card names for a partial query. Provider
// failures degrade to zero suggestions; the client never sees an error here.
func (h *CardHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")

	suggestions, err := h.scryfallService.Autocomplete(c.Request.Context(), query)
	if err != nil {
		log.Printf("autocomplete %q failed: %v", query, err)
		suggestions = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Printings fetches every printing of an exact card name and resolves the
// variant view for the optional edition/finish/language query params. This
// is the stateless counterpart of the draft-session flow.
func (h *CardHandler) Printings(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'name' is required"})
		return
	}

	printings, err := h.scryfallService.SearchPrintings(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "card database is unavailable, try again"})
		return
	}

	editions := services.UniqueEditions(printings)
	display := models.LanguageCode(c.Query("display"))

	sel := services.Selection{
		CardName: name,
		SetCode:  c.Query("set"),
		Finish:   models.FinishKind(c.Query("finish")),
		Language: models.LanguageCode(c.Query("lang")),
	}
	sel = services.NormalizeSelection(editions, sel, display)

	c.JSON(http.StatusOK, gin.H{
		"card_name": name,
		"editions":  editions,
		"selection": sel,
		"resolved":  services.Resolve(editions, sel, display),
	})
}
