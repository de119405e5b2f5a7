package main

import (
	"time"
)

// --- User ---

type User struct {
	ID          uint   `gorm:"primaryKey"`
	PublicID    string `gorm:"uniqueIndex;size:36;not null"` // UUID stored in the cookie
	DisplayName *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// --- Cards & uploaded files ---

// Card is one vocabulary entry. Cards belong to exactly one WordFile and are
// never mutated after ingestion; id comes from the source line when present,
// otherwise it is generated from the ingestion batch base plus the line index.
type Card struct {
	ID              int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FileID          string    `gorm:"primaryKey;size:21" json:"-"`
	Position        int       `gorm:"not null" json:"-"`
	Lemma           string    `gorm:"not null" json:"lemma"`
	Gender          *string   `gorm:"size:1" json:"gender"` // "m" | "f" | "n" | null
	FullForm        string    `gorm:"not null" json:"full_form"`
	TranslationsKo  []string  `gorm:"serializer:json;not null" json:"translations_ko"`
	PromptKo        string    `gorm:"not null" json:"prompt_ko"`
	AcceptedAnswers []string  `gorm:"serializer:json;not null" json:"accepted_answers_de"`
	Level           string    `gorm:"index;not null" json:"level"`
	Topic           string    `gorm:"not null" json:"topic"`
	Language        string    `gorm:"index;not null" json:"language"`
	CreatedAt       time.Time `json:"-"`
}

// WordFile is one ingested upload. UserID nil marks a shared file seeded at
// startup, visible to every user.
type WordFile struct {
	ID        string    `gorm:"primaryKey;size:21" json:"id"`
	UserID    *uint     `gorm:"index" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	CardCount int       `gorm:"not null" json:"cardCount"`
	Cards     []Card    `gorm:"foreignKey:FileID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// --- Quiz sessions ---

const (
	modeQuiz   = "quiz"
	modeReview = "review" // pool drawn from the wrong-card store
	modeRetry  = "retry"  // pool is the previous session's wrong list, unshuffled
)

type QuizSession struct {
	ID         string        `gorm:"primaryKey;size:36" json:"id"`
	UserID     uint          `gorm:"index" json:"-"`
	Mode       string        `gorm:"size:16;not null" json:"mode"`
	Language   string        `json:"language,omitempty"`
	Level      string        `json:"level,omitempty"`
	Seed       *int64        `json:"-"`
	StartedAt  time.Time     `gorm:"not null" json:"startedAt"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty"`
	Cards      []SessionCard `gorm:"foreignKey:SessionID" json:"-"`
}

// SessionCard snapshots one drawn card as JSON so a session (and retry
// sessions built from it) stays intact when the source file is deleted.
type SessionCard struct {
	ID         uint   `gorm:"primaryKey"`
	SessionID  string `gorm:"index;not null"`
	Position   int    `gorm:"not null"` // 1..N
	CardRaw    string `gorm:"not null"` // JSON-encoded Card
	Language   string `gorm:"not null"`
	Level      string `gorm:"not null"`
	Topic      string `gorm:"not null"`
	Answered   bool   `gorm:"not null"`
	Correct    bool   `gorm:"not null"`
	AnsweredAt *time.Time
}

// --- Key-value store ---

// KVEntry backs the cross-session stores (wrong cards, memos). Values are
// JSON payloads; the schema of each payload is owned by its store.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
