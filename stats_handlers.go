package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatsResponse struct {
	TotalSessions     int64              `json:"totalSessions"`
	CompletedSessions int64              `json:"completedSessions"`
	TotalAnswers      int64              `json:"totalAnswers"`
	CorrectAnswers    int64              `json:"correctAnswers"`
	AccuracyOverall   *float64           `json:"accuracyOverall,omitempty"`
	AnswersLast30d    int64              `json:"answersLast30d"`
	CorrectLast30d    int64              `json:"correctLast30d"`
	AccuracyLast30d   *float64           `json:"accuracyLast30d,omitempty"`
	AccuracyByTopic   map[string]float64 `json:"accuracyByTopic,omitempty"`
	AnsweredByTopic   map[string]int64   `json:"answeredByTopic,omitempty"`
	AccuracyByLevel   map[string]float64 `json:"accuracyByLevel,omitempty"`
}

func Stats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}

		resp := StatsResponse{
			AccuracyByTopic: make(map[string]float64),
			AnsweredByTopic: make(map[string]int64),
			AccuracyByLevel: make(map[string]float64),
		}

		if err := db.Model(&QuizSession{}).Where("user_id = ?", uid).Count(&resp.TotalSessions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		if err := db.Model(&QuizSession{}).
			Where("user_id = ? AND finished_at IS NOT NULL", uid).
			Count(&resp.CompletedSessions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		// Load answered cards once, aggregate in Go.
		type AnsRow struct {
			Correct    bool
			Topic      string
			Level      string
			AnsweredAt *time.Time
		}
		var rows []AnsRow
		if err := db.Table("session_cards sc").
			Select("sc.correct as correct, sc.topic as topic, sc.level as level, sc.answered_at as answered_at").
			Joins("JOIN quiz_sessions s ON s.id = sc.session_id").
			Where("s.user_id = ? AND sc.answered = ?", uid, true).
			Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		since := time.Now().Add(-30 * 24 * time.Hour)
		topicTotals := map[string]int64{}
		topicCorrect := map[string]int64{}
		levelTotals := map[string]int64{}
		levelCorrect := map[string]int64{}
		for _, r := range rows {
			resp.TotalAnswers++
			if r.Correct {
				resp.CorrectAnswers++
			}
			if r.AnsweredAt != nil && r.AnsweredAt.After(since) {
				resp.AnswersLast30d++
				if r.Correct {
					resp.CorrectLast30d++
				}
			}
			topicTotals[r.Topic]++
			levelTotals[r.Level]++
			if r.Correct {
				topicCorrect[r.Topic]++
				levelCorrect[r.Level]++
			}
		}

		if resp.TotalAnswers > 0 {
			acc := float64(resp.CorrectAnswers) * 100.0 / float64(resp.TotalAnswers)
			resp.AccuracyOverall = &acc
		}
		if resp.AnswersLast30d > 0 {
			acc30 := float64(resp.CorrectLast30d) * 100.0 / float64(resp.AnswersLast30d)
			resp.AccuracyLast30d = &acc30
		}
		for topic, tot := range topicTotals {
			resp.AnsweredByTopic[topic] = tot
			resp.AccuracyByTopic[topic] = float64(topicCorrect[topic]) * 100.0 / float64(tot)
		}
		for level, tot := range levelTotals {
			resp.AccuracyByLevel[level] = float64(levelCorrect[level]) * 100.0 / float64(tot)
		}

		c.JSON(http.StatusOK, resp)
	}
}
