package domain

import "testing"

func TestCardType_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cardType CardType
		want     bool
	}{
		{CardTypeClassicFlip, true},
		{CardTypeMultipleChoice, true},
		{CardTypeTypeAnswer, true},
		{CardType("essay"), false},
		{CardType(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.cardType), func(t *testing.T) {
			t.Parallel()
			if got := tt.cardType.IsValid(); got != tt.want {
				t.Errorf("CardType(%q).IsValid() = %v, want %v", tt.cardType, got, tt.want)
			}
		})
	}
}

func TestSide_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []Side{SideFront, SideBack} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Side("left").IsValid() {
		t.Error("left should be invalid")
	}
}

func TestArrayKey_MaxItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key   ArrayKey
		valid bool
		max   int
	}{
		{ArrayKeyCorrectAnswers, true, 3},
		{ArrayKeyIncorrectAnswers, true, 5},
		{ArrayKeyAcceptedAnswers, true, 10},
		{ArrayKey("wrongAnswers"), false, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			t.Parallel()
			if got := tt.key.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			if got := tt.key.MaxItems(); got != tt.max {
				t.Errorf("MaxItems() = %d, want %d", got, tt.max)
			}
		})
	}
}

func TestEnrichmentKind_IsValid(t *testing.T) {
	t.Parallel()

	for _, k := range []EnrichmentKind{EnrichmentTranslate, EnrichmentImage, EnrichmentAudio} {
		if !k.IsValid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if EnrichmentKind("video").IsValid() {
		t.Error("video should be invalid")
	}
}

func TestDeck_Language(t *testing.T) {
	t.Parallel()

	fr := "fr"
	d := Deck{BackLanguage: &fr}

	if got := d.Language(SideBack); got != "fr" {
		t.Errorf("back language = %q, want fr", got)
	}
	if got := d.Language(SideFront); got != "" {
		t.Errorf("front language = %q, want empty", got)
	}
}

func TestCardDraft_CloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := CardDraft{
		CorrectAnswers: []string{"a"},
		FrontImage:     ImageSlot{File: &File{Name: "x.png"}},
	}
	clone := orig.Clone()
	clone.CorrectAnswers[0] = "b"
	clone.FrontImage.File.Name = "y.png"

	if orig.CorrectAnswers[0] != "a" {
		t.Error("clone shares answer slice with original")
	}
	if orig.FrontImage.File.Name != "x.png" {
		t.Error("clone shares image file with original")
	}
}
