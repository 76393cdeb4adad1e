package models

// DisplayLanguage is the language the storefront renders its UI in. The
// marketplace ships Spanish and English.
type DisplayLanguage string

const (
	DisplaySpanish DisplayLanguage = "es"
	DisplayEnglish DisplayLanguage = "en"
)

// Condition grades follow the standard NM/LP/MP/HP/DMG scale used by the
// listing form.
type Condition string

const (
	ConditionNM  Condition = "NM"
	ConditionLP  Condition = "LP"
	ConditionMP  Condition = "MP"
	ConditionHP  Condition = "HP"
	ConditionDMG Condition = "DMG"
)

// AllConditions returns every valid listing condition, best grade first.
func AllConditions() []Condition {
	return []Condition{ConditionNM, ConditionLP, ConditionMP, ConditionHP, ConditionDMG}
}

// ValidCondition reports whether c is a known condition grade.
func ValidCondition(c Condition) bool {
	switch c {
	case ConditionNM, ConditionLP, ConditionMP, ConditionHP, ConditionDMG:
		return true
	}
	return false
}

var finishLabels = map[DisplayLanguage]map[FinishKind]string{
	DisplayEnglish: {
		FinishNonfoil: "Nonfoil",
		FinishFoil:    "Foil",
		FinishEtched:  "Etched Foil",
		FinishGalaxy:  "Galaxy Foil",
	},
	DisplaySpanish: {
		FinishNonfoil: "Normal",
		FinishFoil:    "Foil",
		FinishEtched:  "Foil grabado",
		FinishGalaxy:  "Foil galaxia",
	},
}

var conditionLabels = map[DisplayLanguage]map[Condition]string{
	DisplayEnglish: {
		ConditionNM:  "Near Mint",
		ConditionLP:  "Lightly Played",
		ConditionMP:  "Moderately Played",
		ConditionHP:  "Heavily Played",
		ConditionDMG: "Damaged",
	},
	DisplaySpanish: {
		ConditionNM:  "Casi perfecta",
		ConditionLP:  "Ligeramente jugada",
		ConditionMP:  "Moderadamente jugada",
		ConditionHP:  "Muy jugada",
		ConditionDMG: "Dañada",
	},
}

var languageLabels = map[DisplayLanguage]map[LanguageCode]string{
	DisplayEnglish: {
		"en":  "English",
		"es":  "Spanish",
		"fr":  "French",
		"de":  "German",
		"it":  "Italian",
		"pt":  "Portuguese",
		"ja":  "Japanese",
		"ko":  "Korean",
		"ru":  "Russian",
		"zhs": "Simplified Chinese",
		"zht": "Traditional Chinese",
		"he":  "Hebrew",
		"la":  "Latin",
		"grc": "Ancient Greek",
		"ar":  "Arabic",
		"sa":  "Sanskrit",
		"ph":  "Phyrexian",
	},
	DisplaySpanish: {
		"en":  "Inglés",
		"es":  "Español",
		"fr":  "Francés",
		"de":  "Alemán",
		"it":  "Italiano",
		"pt":  "Portugués",
		"ja":  "Japonés",
		"ko":  "Coreano",
		"ru":  "Ruso",
		"zhs": "Chino simplificado",
		"zht": "Chino tradicional",
		"he":  "Hebreo",
		"la":  "Latín",
		"grc": "Griego antiguo",
		"ar":  "Árabe",
		"sa":  "Sánscrito",
		"ph":  "Phyrexiano",
	},
}

// AllLanguageCodes returns every card language the storefront can label,
// in a stable order.
func AllLanguageCodes() []LanguageCode {
	return []LanguageCode{
		"en", "es", "fr", "de", "it", "pt", "ja", "ko", "ru",
		"zhs", "zht", "he", "la", "grc", "ar", "sa", "ph",
	}
}

// FinishLabel returns the display name for a finish in the given display
// language. ok is false for unknown finish kinds; callers must render an
// explicit unknown-variant state instead of echoing the raw code.
func FinishLabel(display DisplayLanguage, finish FinishKind) (string, bool) {
	labels, exists := finishLabels[display]
	if !exists {
		labels = finishLabels[DisplayEnglish]
	}
	label, ok := labels[finish]
	return label, ok
}

// ConditionLabel returns the display name for a condition grade.
func ConditionLabel(display DisplayLanguage, cond Condition) (string, bool) {
	labels, exists := conditionLabels[display]
	if !exists {
		labels = conditionLabels[DisplayEnglish]
	}
	label, ok := labels[cond]
	return label, ok
}

// LanguageLabel returns the display name for a card language.
func LanguageLabel(display DisplayLanguage, lang LanguageCode) (string, bool) {
	labels, exists := languageLabels[display]
	if !exists {
		labels = languageLabels[DisplayEnglish]
	}
	label, ok := labels[lang]
	return label, ok
}
