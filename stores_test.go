package main

import (
	"errors"
	"strings"
	"testing"
)

const testPubID = "11111111-2222-3333-4444-555555555555"

func TestWrongCardAddIfAbsent(t *testing.T) {
	db := newTestDB(t)

	card := Card{ID: 1, Lemma: "Apfel", AcceptedAnswers: []string{"apfel"}}
	if err := addWrongCard(db, testPubID, card); err != nil {
		t.Fatalf("addWrongCard: %v", err)
	}
	// missed again in a later session: still stored once
	if err := addWrongCard(db, testPubID, card); err != nil {
		t.Fatalf("addWrongCard: %v", err)
	}
	if err := addWrongCard(db, testPubID, Card{ID: 2, Lemma: "Brot"}); err != nil {
		t.Fatalf("addWrongCard: %v", err)
	}

	cards := loadWrongCards(db, testPubID)
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].ID != 1 || cards[1].ID != 2 {
		t.Errorf("insertion order lost: %v", cards)
	}
}

func TestWrongCardsClear(t *testing.T) {
	db := newTestDB(t)
	if err := addWrongCard(db, testPubID, Card{ID: 1}); err != nil {
		t.Fatalf("addWrongCard: %v", err)
	}
	if err := clearWrongCards(db, testPubID); err != nil {
		t.Fatalf("clearWrongCards: %v", err)
	}
	if got := loadWrongCards(db, testPubID); len(got) != 0 {
		t.Errorf("store not cleared: %v", got)
	}
}

func TestWrongCardsCorruptPayload(t *testing.T) {
	db := newTestDB(t)
	if err := kvSet(db, userKey(wrongCardsKey, testPubID), "{not json"); err != nil {
		t.Fatalf("kvSet: %v", err)
	}
	if got := loadWrongCards(db, testPubID); got != nil {
		t.Errorf("corrupt payload must read as empty, got %v", got)
	}
	// the store recovers on the next write
	if err := addWrongCard(db, testPubID, Card{ID: 5}); err != nil {
		t.Fatalf("addWrongCard: %v", err)
	}
	if got := loadWrongCards(db, testPubID); len(got) != 1 {
		t.Errorf("store did not recover, got %v", got)
	}
}

func TestWrongCardsPerUser(t *testing.T) {
	db := newTestDB(t)
	if err := addWrongCard(db, "user-a", Card{ID: 1}); err != nil {
		t.Fatalf("addWrongCard: %v", err)
	}
	if got := loadWrongCards(db, "user-b"); len(got) != 0 {
		t.Errorf("wrong cards leaked across users: %v", got)
	}
}

func TestMemoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	if err := setMemo(db, testPubID, 42, "관사 주의"); err != nil {
		t.Fatalf("setMemo: %v", err)
	}
	memos := loadMemos(db, testPubID)
	if memos["42"] != "관사 주의" {
		t.Errorf("memos = %v, want key \"42\"", memos)
	}
}

func TestMemoTooLong(t *testing.T) {
	db := newTestDB(t)
	if err := setMemo(db, testPubID, 42, "기존 메모"); err != nil {
		t.Fatalf("setMemo: %v", err)
	}

	long := strings.Repeat("가", 31)
	if err := setMemo(db, testPubID, 42, long); !errors.Is(err, errMemoTooLong) {
		t.Fatalf("31-rune memo accepted, err = %v", err)
	}
	// previously stored memo is untouched
	if got := loadMemos(db, testPubID)["42"]; got != "기존 메모" {
		t.Errorf("memo changed to %q after rejected write", got)
	}

	// exactly 30 runes is fine
	if err := setMemo(db, testPubID, 42, strings.Repeat("가", 30)); err != nil {
		t.Errorf("30-rune memo rejected: %v", err)
	}
}

func TestMemoEmptyDeletes(t *testing.T) {
	db := newTestDB(t)
	if err := setMemo(db, testPubID, 42, "메모"); err != nil {
		t.Fatalf("setMemo: %v", err)
	}
	if err := setMemo(db, testPubID, 42, ""); err != nil {
		t.Fatalf("setMemo: %v", err)
	}
	if memos := loadMemos(db, testPubID); len(memos) != 0 {
		t.Errorf("empty write should delete the entry, got %v", memos)
	}
}

func TestMemoCorruptPayload(t *testing.T) {
	db := newTestDB(t)
	if err := kvSet(db, userKey(memosKey, testPubID), "[]"); err != nil {
		t.Fatalf("kvSet: %v", err)
	}
	if memos := loadMemos(db, testPubID); len(memos) != 0 {
		t.Errorf("corrupt payload must read as empty, got %v", memos)
	}
}
