package models

import (
	"reflect"
	"testing"
)

func TestListingIsFoil(t *testing.T) {
	tests := []struct {
		finish FinishKind
		want   bool
	}{
		{FinishNonfoil, false},
		{FinishFoil, true},
		{FinishEtched, true},
		{FinishGalaxy, true},
	}

	for _, tt := range tests {
		l := Listing{Finish: tt.finish}
		if got := l.IsFoil(); got != tt.want {
			t.Errorf("IsFoil() with %s = %v, want %v", tt.finish, got, tt.want)
		}
	}
}

func TestListingColorList(t *testing.T) {
	tests := []struct {
		colors string
		want   []ManaColor
	}{
		{"", nil},
		{"W", []ManaColor{ColorWhite}},
		{"W,U", []ManaColor{ColorWhite, ColorBlue}},
		{"B, R ,G", []ManaColor{ColorBlack, ColorRed, ColorGreen}},
	}

	for _, tt := range tests {
		l := Listing{Colors: tt.colors}
		if got := l.ColorList(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ColorList() with %q = %v, want %v", tt.colors, got, tt.want)
		}
	}
}
