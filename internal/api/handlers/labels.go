package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmorales-dev/cartamarket/internal/models"
)

// Labels returns the display names for finishes, conditions and card
// languages in the requested storefront language. Unknown keys are simply
// absent from the maps; clients render an unknown-variant state for anything
// they cannot look up.
func Labels(c *gin.Context) {
	display := models.DisplayLanguage(c.DefaultQuery("display", string(models.DisplaySpanish)))

	finishes := make(map[models.FinishKind]string)
	for _, f := range []models.FinishKind{models.FinishNonfoil, models.FinishFoil, models.FinishEtched, models.FinishGalaxy} {
		if label, ok := models.FinishLabel(display, f); ok {
			finishes[f] = label
		}
	}

	conditions := make(map[models.Condition]string)
	for _, cond := range models.AllConditions() {
		if label, ok := models.ConditionLabel(display, cond); ok {
			conditions[cond] = label
		}
	}

	languages := make(map[models.LanguageCode]string)
	for _, lang := range models.AllLanguageCodes() {
		if label, ok := models.LanguageLabel(display, lang); ok {
			languages[lang] = label
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"display":    display,
		"finishes":   finishes,
		"conditions": conditions,
		"languages":  languages,
	})
}
