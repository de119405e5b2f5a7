package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

/*** Library (uploaded word files) ***/

type UploadFileReq struct {
	Name    string `json:"name"`
	Content string `json:"content"` // line-delimited JSON, one card per line
}

type FileSummaryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CardCount int       `json:"cardCount"`
	Shared    bool      `json:"shared"`
	CreatedAt time.Time `json:"createdAt"`
}

func fileSummary(f WordFile) FileSummaryDTO {
	return FileSummaryDTO{
		ID:        f.ID,
		Name:      f.Name,
		CardCount: f.CardCount,
		Shared:    f.UserID == nil,
		CreatedAt: f.CreatedAt,
	}
}

func UploadFile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		var req UploadFileReq
		if err := c.BindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and content required"})
			return
		}

		res, err := ingestCards(req.Content, time.Now().UnixMilli())
		if err != nil {
			// zero usable cards: the file is not added
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		file, err := addFile(db, &uid, req.Name, res.Cards)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		resp := gin.H{"file": fileSummary(file)}
		if res.Warning != "" {
			// partially corrupt input: the valid cards were still added
			resp["warning"] = res.Warning
		}
		c.JSON(http.StatusCreated, resp)
	}
}

func ListFiles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		files, err := listFiles(db, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		items := make([]FileSummaryDTO, 0, len(files))
		for _, f := range files {
			items = append(items, fileSummary(f))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func DeleteFile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		if err := removeFile(db, uid, c.Param("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

/*** Study / browse ***/

// ListCards returns the filtered catalog, paged.
// Query params: ?language=&level=&limit=50&offset=0 (limit max 200)
func ListCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		cards, err := allCards(db, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		cards = filterPool(cards, c.Query("language"), c.Query("level"))

		limit := 50
		offset := 0
		if l := c.Query("limit"); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n > 0 {
				if n > 200 {
					n = 200
				}
				limit = n
			}
		}
		if o := c.Query("offset"); o != "" {
			if n, err := strconv.Atoi(o); err == nil && n >= 0 {
				offset = n
			}
		}

		total := len(cards)
		if offset > total {
			offset = total
		}
		end := offset + limit
		if end > total {
			end = total
		}

		c.JSON(http.StatusOK, gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
			"items":  cards[offset:end],
		})
	}
}

func ListLanguages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		cards, err := allCards(db, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": availableLanguages(cards)})
	}
}

func ListLevels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		language := c.Query("language")
		if language == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "language required"})
			return
		}
		cards, err := allCards(db, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": levelsForLanguage(cards, language)})
	}
}

/*** Memos ***/

type MemoReq struct {
	Text string `json:"text"`
}

func GetMemos(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, pubID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"memos": loadMemos(db, pubID)})
	}
}

func PutMemo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, pubID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		cardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad card id"})
			return
		}
		var req MemoReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		if err := setMemo(db, pubID, cardID, req.Text); err != nil {
			if errors.Is(err, errMemoTooLong) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "메모는 30자 이내로 입력해주세요."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}

/*** Review (wrong-card) store ***/

func ListReviewCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, pubID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		cards := loadWrongCards(db, pubID)
		if cards == nil {
			cards = []Card{}
		}
		c.JSON(http.StatusOK, gin.H{"items": cards})
	}
}

func ClearReviewCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, pubID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		if err := clearWrongCards(db, pubID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}
