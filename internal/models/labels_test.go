package models

import "testing"

func TestFinishLabelsCoverAllFinishesInBothLanguages(t *testing.T) {
	finishes := []FinishKind{FinishNonfoil, FinishFoil, FinishEtched, FinishGalaxy}
	for _, display := range []DisplayLanguage{DisplaySpanish, DisplayEnglish} {
		for _, finish := range finishes {
			label, ok := FinishLabel(display, finish)
			if !ok || label == "" {
				t.Errorf("missing %s finish label for %s", display, finish)
			}
		}
	}
}

func TestConditionLabelsCoverAllConditionsInBothLanguages(t *testing.T) {
	for _, display := range []DisplayLanguage{DisplaySpanish, DisplayEnglish} {
		for _, cond := range AllConditions() {
			label, ok := ConditionLabel(display, cond)
			if !ok || label == "" {
				t.Errorf("missing %s condition label for %s", display, cond)
			}
		}
	}
}

func TestLanguageLabelsCoverAllCodesInBothLanguages(t *testing.T) {
	for _, display := range []DisplayLanguage{DisplaySpanish, DisplayEnglish} {
		for _, code := range AllLanguageCodes() {
			label, ok := LanguageLabel(display, code)
			if !ok || label == "" {
				t.Errorf("missing %s language label for %s", display, code)
			}
		}
	}
}

func TestUnknownKeysReportNotOK(t *testing.T) {
	if _, ok := FinishLabel(DisplaySpanish, "holographic"); ok {
		t.Error("expected ok=false for unknown finish")
	}
	if _, ok := ConditionLabel(DisplayEnglish, "MINT"); ok {
		t.Error("expected ok=false for unknown condition")
	}
	if _, ok := LanguageLabel(DisplaySpanish, "xx"); ok {
		t.Error("expected ok=false for unknown language code")
	}
}

func TestUnknownDisplayFallsBackToEnglish(t *testing.T) {
	label, ok := FinishLabel("fr", FinishEtched)
	if !ok || label != "Etched Foil" {
		t.Errorf("FinishLabel(fr, etched) = %q, %v; want English fallback", label, ok)
	}
}

func TestSpanishLabelsDifferFromEnglish(t *testing.T) {
	es, _ := ConditionLabel(DisplaySpanish, ConditionNM)
	en, _ := ConditionLabel(DisplayEnglish, ConditionNM)
	if es == en {
		t.Errorf("expected translated NM label, got %q for both languages", es)
	}
}

func TestValidCondition(t *testing.T) {
	for _, cond := range AllConditions() {
		if !ValidCondition(cond) {
			t.Errorf("expected %s to be valid", cond)
		}
	}
	if ValidCondition("SP") {
		t.Error("expected SP to be invalid")
	}
}
