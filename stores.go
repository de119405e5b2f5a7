package main

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Thin adapters over the key-value table. Each store owns one JSON payload
// under a fixed key prefix, suffixed with the owning user's public id. A
// payload that fails to decode is treated as an empty collection and logged,
// never surfaced.

const (
	wrongCardsKey = "wrong_cards"
	memosKey      = "memos"
	memoMaxRunes  = 30
)

var errMemoTooLong = errors.New("memo exceeds 30 characters")

func userKey(prefix, pubID string) string {
	return prefix + ":" + pubID
}

func kvGet(db *gorm.DB, key string) (string, bool) {
	var e KVEntry
	if err := db.First(&e, "key = ?", key).Error; err != nil {
		return "", false
	}
	return e.Value, true
}

func kvSet(db *gorm.DB, key, value string) error {
	return db.Save(&KVEntry{Key: key, Value: value}).Error
}

func kvDelete(db *gorm.DB, key string) error {
	return db.Delete(&KVEntry{}, "key = ?", key).Error
}

// ==== Review (wrong-card) store ====

func loadWrongCards(db *gorm.DB, pubID string) []Card {
	raw, ok := kvGet(db, userKey(wrongCardsKey, pubID))
	if !ok {
		return nil
	}
	var cards []Card
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		log.Printf("review store: corrupt payload, treating as empty: %v", err)
		return nil
	}
	return cards
}

// addWrongCard appends the card unless one with the same id is already stored.
func addWrongCard(db *gorm.DB, pubID string, card Card) error {
	cards := loadWrongCards(db, pubID)
	for _, c := range cards {
		if c.ID == card.ID {
			return nil
		}
	}
	cards = append(cards, card)
	raw, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return kvSet(db, userKey(wrongCardsKey, pubID), string(raw))
}

func clearWrongCards(db *gorm.DB, pubID string) error {
	return kvDelete(db, userKey(wrongCardsKey, pubID))
}

// ==== Memo store ====

// loadMemos returns the card-id → note map. Keys are decimal card ids.
func loadMemos(db *gorm.DB, pubID string) map[string]string {
	raw, ok := kvGet(db, userKey(memosKey, pubID))
	if !ok {
		return map[string]string{}
	}
	memos := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &memos); err != nil {
		log.Printf("memo store: corrupt payload, treating as empty: %v", err)
		return map[string]string{}
	}
	return memos
}

// setMemo stores a note for one card. Notes longer than 30 characters are
// rejected without touching the stored state; an empty note deletes the entry.
func setMemo(db *gorm.DB, pubID string, cardID int64, text string) error {
	if utf8.RuneCountInString(text) > memoMaxRunes {
		return errMemoTooLong
	}
	memos := loadMemos(db, pubID)
	key := strconv.FormatInt(cardID, 10)
	if strings.TrimSpace(text) == "" {
		delete(memos, key)
	} else {
		memos[key] = text
	}
	raw, err := json.Marshal(memos)
	if err != nil {
		return err
	}
	return kvSet(db, userKey(memosKey, pubID), string(raw))
}
