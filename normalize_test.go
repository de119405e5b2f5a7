package main

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStripIDSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bank_2", "Bank"},
		{"Haus", "Haus"},
		{"  Apfel_10  ", "Apfel"},
		{"a_b_3", "a_b"},
		{"_5", ""},
		{"Haus_2a", "Haus_2a"},
	}
	for _, tt := range tests {
		if got := stripIDSuffix(tt.in); got != tt.want {
			t.Errorf("stripIDSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCardDefaults(t *testing.T) {
	line := `{"lemma":"Apfel","gender":"m","translations_ko":["사과"],"level":"A1","topic":"Food"}`
	var in cardInput
	if err := json.Unmarshal([]byte(line), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	card, err := normalizeCard(in, 42)
	if err != nil {
		t.Fatalf("normalizeCard: %v", err)
	}

	if card.ID != 42 {
		t.Errorf("ID = %d, want 42", card.ID)
	}
	if card.FullForm != "Apfel" {
		t.Errorf("FullForm = %q, want %q", card.FullForm, "Apfel")
	}
	if !reflect.DeepEqual(card.AcceptedAnswers, []string{"apfel"}) {
		t.Errorf("AcceptedAnswers = %v, want [apfel]", card.AcceptedAnswers)
	}
	if card.Language != "German" {
		t.Errorf("Language = %q, want German", card.Language)
	}
	if card.PromptKo != "사과" {
		t.Errorf("PromptKo = %q, want 사과", card.PromptKo)
	}
	if card.Gender == nil || *card.Gender != "m" {
		t.Errorf("Gender = %v, want m", card.Gender)
	}
}

func TestNormalizeCardSuffixedLemma(t *testing.T) {
	in := cardInput{Lemma: "Bank_2", TranslationsKo: []string{"벤치"}}
	card, err := normalizeCard(in, 1)
	if err != nil {
		t.Fatalf("normalizeCard: %v", err)
	}
	if card.Lemma != "Bank" {
		t.Errorf("Lemma = %q, want Bank", card.Lemma)
	}
	if card.FullForm != "Bank" {
		t.Errorf("FullForm = %q, want Bank", card.FullForm)
	}
	// default answers derive from the cleaned lemma
	if !reflect.DeepEqual(card.AcceptedAnswers, []string{"bank"}) {
		t.Errorf("AcceptedAnswers = %v, want [bank]", card.AcceptedAnswers)
	}
}

func TestNormalizeCardExplicitAnswers(t *testing.T) {
	in := cardInput{
		Lemma:           "Bank_1",
		TranslationsKo:  []string{"은행"},
		AcceptedAnswers: []string{"Bank_1", "  die   Bank ", "die bank"},
	}
	card, err := normalizeCard(in, 1)
	if err != nil {
		t.Fatalf("normalizeCard: %v", err)
	}
	want := []string{"bank", "die bank"}
	if !reflect.DeepEqual(card.AcceptedAnswers, want) {
		t.Errorf("AcceptedAnswers = %v, want %v", card.AcceptedAnswers, want)
	}
}

func TestNormalizeCardRejects(t *testing.T) {
	tests := []struct {
		name string
		in   cardInput
	}{
		{"missing lemma", cardInput{TranslationsKo: []string{"사과"}}},
		{"blank lemma", cardInput{Lemma: "   ", TranslationsKo: []string{"사과"}}},
		{"missing translations", cardInput{Lemma: "Apfel"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := normalizeCard(tt.in, 1); err == nil {
				t.Errorf("normalizeCard accepted %+v", tt.in)
			}
		})
	}
}

func TestNormalizeCardGender(t *testing.T) {
	tests := []struct {
		gender string
		want   *string
	}{
		{"m", strPtr("m")},
		{"f", strPtr("f")},
		{"n", strPtr("n")},
		{"", nil},
		{"x", nil},
		{"masculine", nil},
	}
	for _, tt := range tests {
		in := cardInput{Lemma: "Haus", Gender: tt.gender, TranslationsKo: []string{"집"}}
		card, err := normalizeCard(in, 1)
		if err != nil {
			t.Fatalf("normalizeCard: %v", err)
		}
		if (card.Gender == nil) != (tt.want == nil) {
			t.Errorf("gender %q: got %v, want %v", tt.gender, card.Gender, tt.want)
			continue
		}
		if tt.want != nil && *card.Gender != *tt.want {
			t.Errorf("gender %q: got %q, want %q", tt.gender, *card.Gender, *tt.want)
		}
	}
}

func TestNormalizeCardPromptFallback(t *testing.T) {
	in := cardInput{Lemma: "Haus", TranslationsKo: []string{""}}
	card, err := normalizeCard(in, 1)
	if err != nil {
		t.Fatalf("normalizeCard: %v", err)
	}
	if card.PromptKo != fallbackPrompt {
		t.Errorf("PromptKo = %q, want %q", card.PromptKo, fallbackPrompt)
	}
}

func TestNormalizeCardIdempotent(t *testing.T) {
	in := cardInput{
		Lemma:          "Wohnung",
		Gender:         "f",
		FullForm:       "die Wohnung",
		TranslationsKo: []string{"아파트", "집"},
		Level:          "A2",
		Topic:          "Living",
	}
	a, err := normalizeCard(in, 7)
	if err != nil {
		t.Fatalf("normalizeCard: %v", err)
	}
	b, err := normalizeCard(in, 7)
	if err != nil {
		t.Fatalf("normalizeCard: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("normalization not deterministic:\n%+v\n%+v", a, b)
	}
}

func strPtr(s string) *string { return &s }
