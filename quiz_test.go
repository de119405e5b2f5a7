package main

import (
	"reflect"
	"testing"
)

func testCards(n int) []Card {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, Card{
			ID:              int64(i + 1),
			Lemma:           "Wort",
			AcceptedAnswers: []string{"wort"},
			Level:           "A1",
			Language:        "German",
		})
	}
	return cards
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Apfel", "apfel"},
		{"  APFEL  ", "apfel"},
		{"die   Bank", "die bank"},
		{"\tdie\n Bank ", "die bank"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := normalizeAnswer(tt.in); got != tt.want {
			t.Errorf("normalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsAcceptedAnswer(t *testing.T) {
	accepted := []string{"apfel", "der apfel"}
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact", "apfel", true},
		{"cased", "Apfel", true},
		{"padded", "  Apfel ", true},
		{"collapsed whitespace", "der   Apfel", true},
		{"wrong word", "birne", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAcceptedAnswer(tt.input, accepted); got != tt.want {
				t.Errorf("isAcceptedAnswer(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDrawCardsSeeded(t *testing.T) {
	pool := testCards(50)
	seed := int64(12345)

	a := drawCards(pool, quizDrawLimit, &seed)
	b := drawCards(pool, quizDrawLimit, &seed)

	if len(a) != quizDrawLimit {
		t.Fatalf("drew %d cards, want %d", len(a), quizDrawLimit)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed must draw the same cards in the same order")
	}
	if reflect.DeepEqual(a, pool[:quizDrawLimit]) {
		t.Errorf("draw returned the pool prefix unshuffled")
	}
}

func TestDrawCardsSmallPool(t *testing.T) {
	pool := testCards(5)
	seed := int64(1)
	got := drawCards(pool, quizDrawLimit, &seed)
	if len(got) != 5 {
		t.Fatalf("drew %d cards, want whole pool of 5", len(got))
	}
	ids := map[int64]bool{}
	for _, c := range got {
		ids[c.ID] = true
	}
	if len(ids) != 5 {
		t.Errorf("draw repeated or dropped cards: %v", got)
	}
}

func TestDrawCardsDoesNotMutatePool(t *testing.T) {
	pool := testCards(10)
	want := append([]Card(nil), pool...)
	seed := int64(99)
	_ = drawCards(pool, quizDrawLimit, &seed)
	if !reflect.DeepEqual(pool, want) {
		t.Errorf("drawCards mutated its input pool")
	}
}

func TestFilterPool(t *testing.T) {
	cards := []Card{
		{ID: 1, Language: "German", Level: "A1"},
		{ID: 2, Language: "German", Level: "A2"},
		{ID: 3, Language: "French", Level: "A1"},
	}
	tests := []struct {
		name     string
		language string
		level    string
		wantIDs  []int64
	}{
		{"language only", "German", "", []int64{1, 2}},
		{"language and level", "German", "A1", []int64{1}},
		{"ALL sentinel skips level", "German", levelAll, []int64{1, 2}},
		{"no match", "German", "C2", nil},
		{"other language", "French", "", []int64{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []int64
			for _, c := range filterPool(cards, tt.language, tt.level) {
				ids = append(ids, c.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("got %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}
