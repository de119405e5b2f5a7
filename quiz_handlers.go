package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*** DTOs ***/

// QuestionDTO is what the quiz view gets per card: the prompt side only,
// never the accepted answers.
type QuestionDTO struct {
	Position int    `json:"position"`
	CardID   int64  `json:"cardId"`
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
	Level    string `json:"level"`
	Topic    string `json:"topic"`
}

type SessionDTO struct {
	SessionID string        `json:"sessionId"`
	Mode      string        `json:"mode"`
	Total     int           `json:"total"`
	Questions []QuestionDTO `json:"questions"`
}

func questionDTO(pos int, card Card) QuestionDTO {
	return QuestionDTO{
		Position: pos,
		CardID:   card.ID,
		Prompt:   card.PromptKo,
		Language: card.Language,
		Level:    card.Level,
		Topic:    card.Topic,
	}
}

// createSession persists a session with one snapshot row per drawn card.
func createSession(db *gorm.DB, uid uint, mode, language, level string, seed *int64, cards []Card) (SessionDTO, error) {
	session := QuizSession{
		ID:        uuid.New().String(),
		UserID:    uid,
		Mode:      mode,
		Language:  language,
		Level:     level,
		Seed:      seed,
		StartedAt: time.Now(),
	}
	questions := make([]QuestionDTO, 0, len(cards))
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		for i, card := range cards {
			raw, err := json.Marshal(card)
			if err != nil {
				return err
			}
			sc := SessionCard{
				SessionID: session.ID,
				Position:  i + 1,
				CardRaw:   string(raw),
				Language:  card.Language,
				Level:     card.Level,
				Topic:     card.Topic,
			}
			if err := tx.Create(&sc).Error; err != nil {
				return err
			}
			questions = append(questions, questionDTO(i+1, card))
		}
		return nil
	})
	if err != nil {
		return SessionDTO{}, err
	}
	return SessionDTO{
		SessionID: session.ID,
		Mode:      mode,
		Total:     len(cards),
		Questions: questions,
	}, nil
}

func findSession(db *gorm.DB, uid uint, id string) (QuizSession, error) {
	var session QuizSession
	err := db.First(&session, "id = ? AND user_id = ?", id, uid).Error
	return session, err
}

/*** Quiz mode ***/

type StartQuizReq struct {
	Language string `json:"language"`
	Level    string `json:"level"`
	Seed     *int64 `json:"seed"` // optional, for reproducible draws
}

func StartQuiz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		var req StartQuizReq
		if err := c.BindJSON(&req); err != nil || req.Language == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "language required"})
			return
		}

		cards, err := allCards(db, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		pool := filterPool(cards, req.Language, req.Level)
		if len(pool) == 0 {
			// no session is created; state is unchanged
			c.JSON(http.StatusBadRequest, gin.H{"error": "조건에 맞는 카드가 없습니다."})
			return
		}

		drawn := drawCards(pool, quizDrawLimit, req.Seed)
		dto, err := createSession(db, uid, modeQuiz, req.Language, req.Level, req.Seed, drawn)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// StartReview draws from the cross-session wrong-card store, ignoring
// language/level filters.
func StartReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, pubID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		var req StartQuizReq
		_ = c.ShouldBindJSON(&req) // body is optional; only seed is read

		pool := loadWrongCards(db, pubID)
		if len(pool) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "복습할 카드가 없습니다."})
			return
		}

		drawn := drawCards(pool, quizDrawLimit, req.Seed)
		dto, err := createSession(db, uid, modeReview, "", "", req.Seed, drawn)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

/*** Answering ***/

type AnswerReq struct {
	Position int    `json:"position"`
	Answer   string `json:"answer"`
}

func SubmitAnswer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, pubID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		session, err := findSession(db, uid, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if session.FinishedAt != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "session already finished"})
			return
		}
		var req AnswerReq
		if err := c.BindJSON(&req); err != nil || req.Position < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		var sc SessionCard
		if err := db.First(&sc, "session_id = ? AND position = ?", session.ID, req.Position).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}

		var card Card
		if err := json.Unmarshal([]byte(sc.CardRaw), &card); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "corrupt session card"})
			return
		}

		// A question scores exactly once; feedback re-submissions return the
		// recorded outcome unchanged.
		if sc.Answered {
			c.JSON(http.StatusOK, gin.H{
				"correct":         sc.Correct,
				"alreadyAnswered": true,
				"card":            card,
			})
			return
		}

		correct := isAcceptedAnswer(req.Answer, card.AcceptedAnswers)
		now := time.Now()
		sc.Answered = true
		sc.Correct = correct
		sc.AnsweredAt = &now
		if err := db.Save(&sc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		if !correct {
			if err := addWrongCard(db, pubID, card); err != nil {
				// the answer is already recorded; the review entry can be
				// re-added next time the card is missed
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"correct": correct,
			"card":    card,
		})
	}
}

/*** Finishing & retry ***/

// sessionSummary computes {total, correct, wrongCards}; wrong cards keep
// encounter order.
func sessionSummary(db *gorm.DB, sessionID string) (total, correct int, wrong []Card, err error) {
	var scs []SessionCard
	if err = db.Where("session_id = ?", sessionID).Order("position ASC").Find(&scs).Error; err != nil {
		return 0, 0, nil, err
	}
	wrong = []Card{}
	for _, sc := range scs {
		if !sc.Answered {
			continue
		}
		total++
		if sc.Correct {
			correct++
			continue
		}
		var card Card
		if err := json.Unmarshal([]byte(sc.CardRaw), &card); err != nil {
			continue
		}
		wrong = append(wrong, card)
	}
	return total, correct, wrong, nil
}

func FinishQuiz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		session, err := findSession(db, uid, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if session.FinishedAt == nil {
			now := time.Now()
			session.FinishedAt = &now
			if err := db.Save(&session).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
				return
			}
		}
		total, correct, wrong, err := sessionSummary(db, session.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"sessionId":  session.ID,
			"mode":       session.Mode,
			"total":      total,
			"correct":    correct,
			"wrongCards": wrong,
		})
	}
}

// RetryWrong spawns a new session over the finished session's wrong list,
// unshuffled relative to encounter order.
func RetryWrong(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		session, err := findSession(db, uid, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if session.FinishedAt == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "session not finished"})
			return
		}
		_, _, wrong, err := sessionSummary(db, session.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		if len(wrong) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "다시 풀 카드가 없습니다."})
			return
		}
		dto, err := createSession(db, uid, modeRetry, session.Language, session.Level, nil, wrong)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// GetSession returns a past or in-flight session with per-question state.
func GetSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		session, err := findSession(db, uid, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		var scs []SessionCard
		if err := db.Where("session_id = ?", session.ID).Order("position ASC").Find(&scs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		type ItemDTO struct {
			QuestionDTO
			Answered bool `json:"answered"`
			Correct  bool `json:"correct"`
		}
		items := make([]ItemDTO, 0, len(scs))
		for _, sc := range scs {
			var card Card
			if err := json.Unmarshal([]byte(sc.CardRaw), &card); err != nil {
				continue
			}
			items = append(items, ItemDTO{
				QuestionDTO: questionDTO(sc.Position, card),
				Answered:    sc.Answered,
				Correct:     sc.Correct,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"sessionId":  session.ID,
			"mode":       session.Mode,
			"language":   session.Language,
			"level":      session.Level,
			"startedAt":  session.StartedAt,
			"finishedAt": session.FinishedAt,
			"items":      items,
		})
	}
}
