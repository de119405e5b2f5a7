package main

import (
	"errors"
	"regexp"
	"strings"
)

// ==== Raw JSONL input ====

// cardInput mirrors one decoded word-list line. Unknown extra fields are
// ignored by encoding/json; only lemma and translations_ko are required.
type cardInput struct {
	ID              *int64   `json:"id"`
	Lemma           string   `json:"lemma"`
	Gender          string   `json:"gender"`
	FullForm        string   `json:"full_form"`
	TranslationsKo  []string `json:"translations_ko"`
	PromptKo        string   `json:"prompt_ko"`
	AcceptedAnswers []string `json:"accepted_answers_de"`
	Level           string   `json:"level"`
	Topic           string   `json:"topic"`
	Language        string   `json:"language"`
}

var errBadRecord = errors.New("record needs a lemma and a translations_ko array")

// Shown as the quiz prompt when a record carries no usable translation.
const fallbackPrompt = "(뜻 없음)"

// Word lists exported from the source dictionary carry disambiguation markers
// like "Bank_2"; the trailing underscore-digits group is never shown or matched.
var idSuffixRe = regexp.MustCompile(`_[0-9]+$`)

func stripIDSuffix(s string) string {
	return idSuffixRe.ReplaceAllString(strings.TrimSpace(s), "")
}

// normalizeCard turns one decoded record into a canonical Card. fallbackID is
// used when the record carries no id; it is the ingestion batch base plus the
// record's line index, which cannot collide within one batch.
//
// Default filling order matters: full_form and the accepted answers derive
// from the already-cleaned lemma, not the raw one.
func normalizeCard(in cardInput, fallbackID int64) (Card, error) {
	lemma := stripIDSuffix(in.Lemma)
	if lemma == "" || in.TranslationsKo == nil {
		return Card{}, errBadRecord
	}

	fullForm := stripIDSuffix(in.FullForm)
	if fullForm == "" {
		fullForm = lemma
	}

	var gender *string
	switch g := strings.TrimSpace(in.Gender); g {
	case "m", "f", "n":
		gender = &g
	}

	// Accepted answers are pre-normalized here so quiz-time comparison is a
	// plain membership check against the normalized user input.
	answers := make([]string, 0, len(in.AcceptedAnswers))
	seen := map[string]struct{}{}
	for _, a := range in.AcceptedAnswers {
		a = normalizeAnswer(stripIDSuffix(a))
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		answers = append(answers, a)
	}
	if len(answers) == 0 {
		answers = []string{normalizeAnswer(lemma)}
	}

	translations := make([]string, 0, len(in.TranslationsKo))
	for _, t := range in.TranslationsKo {
		translations = append(translations, strings.TrimSpace(t))
	}

	prompt := strings.TrimSpace(in.PromptKo)
	if prompt == "" {
		if len(translations) > 0 {
			prompt = translations[0]
		}
		if prompt == "" {
			prompt = fallbackPrompt
		}
	}

	level := strings.TrimSpace(in.Level)
	if level == "" {
		level = "Unknown"
	}
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		topic = "General"
	}
	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = "German"
	}

	id := fallbackID
	if in.ID != nil {
		id = *in.ID
	}

	return Card{
		ID:              id,
		Lemma:           lemma,
		Gender:          gender,
		FullForm:        fullForm,
		TranslationsKo:  translations,
		PromptKo:        prompt,
		AcceptedAnswers: answers,
		Level:           level,
		Topic:           topic,
		Language:        language,
	}, nil
}
