package main

import (
	"math/rand"
	"strings"
	"time"
)

// A session draws at most this many cards from the filtered pool.
const quizDrawLimit = 20

// Sentinel level meaning "no level filter".
const levelAll = "ALL"

func drawCards(pool []Card, count int, seed *int64) []Card {
	var r *rand.Rand
	if seed != nil {
		r = rand.New(rand.NewSource(*seed))
	} else {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	out := append([]Card(nil), pool...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if count > len(out) {
		count = len(out)
	}
	return out[:count]
}

// normalizeAnswer trims, lowercases and collapses internal whitespace runs so
// user input can be compared against pre-normalized accepted answers.
func normalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func isAcceptedAnswer(input string, accepted []string) bool {
	in := normalizeAnswer(input)
	for _, a := range accepted {
		if a == in {
			return true
		}
	}
	return false
}

// filterPool narrows cards by language and, unless level is empty or the ALL
// sentinel, by level.
func filterPool(cards []Card, language, level string) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if language != "" && c.Language != language {
			continue
		}
		if level != "" && level != levelAll && c.Level != level {
			continue
		}
		out = append(out, c)
	}
	return out
}
