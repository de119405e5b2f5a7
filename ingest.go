package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Surfaced verbatim to the user; the frontend shows Korean UI text.
var errNoValidCards = errors.New("유효한 카드 데이터가 없습니다.")

type ingestResult struct {
	Cards   []Card
	Total   int    // non-blank input lines
	Invalid int    // lines that failed to decode or validate
	Warning string // set when invalid lines exceed half of the input
}

// ingestCards parses line-delimited JSON into normalized, deduplicated cards.
// Blank lines are skipped silently. A line that is not valid JSON or that
// fails validation is logged, counted and skipped; no single line aborts the
// batch. batchBase (ingestion start, unix ms) seeds generated card ids, so the
// result is fully deterministic for a given (raw, batchBase) pair.
func ingestCards(raw string, batchBase int64) (ingestResult, error) {
	var res ingestResult
	seen := map[string]struct{}{}
	usedIDs := map[int64]struct{}{}

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		res.Total++

		var in cardInput
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			res.Invalid++
			log.Printf("ingest: line %d: bad JSON: %v", i+1, err)
			continue
		}
		card, err := normalizeCard(in, batchBase+int64(i))
		if err != nil {
			res.Invalid++
			log.Printf("ingest: line %d: %v", i+1, err)
			continue
		}

		// First occurrence wins; duplicates are not counted as invalid.
		sig := cardSignature(card)
		if _, dup := seen[sig]; dup {
			continue
		}
		// Distinct records must not share an id; generated ids are unique by
		// construction, so this only trips on explicit ids from the source.
		if _, dup := usedIDs[card.ID]; dup {
			res.Invalid++
			log.Printf("ingest: line %d: duplicate card id %d", i+1, card.ID)
			continue
		}
		seen[sig] = struct{}{}
		usedIDs[card.ID] = struct{}{}
		res.Cards = append(res.Cards, card)
	}

	if len(res.Cards) == 0 {
		return res, errNoValidCards
	}
	if res.Invalid*2 > res.Total {
		res.Warning = fmt.Sprintf("%d개의 줄을 읽을 수 없어 건너뛰었습니다.", res.Invalid)
	}
	return res, nil
}

// cardSignature is the dedup identity of a card within one ingestion batch:
// two records agreeing on (language, lemma, gender, translations, level,
// topic) after normalization are the same card.
func cardSignature(c Card) string {
	gender := ""
	if c.Gender != nil {
		gender = *c.Gender
	}
	return strings.Join([]string{
		c.Language,
		c.Lemma,
		gender,
		strings.Join(c.TranslationsKo, "\x1f"),
		c.Level,
		c.Topic,
	}, "\x1e")
}
