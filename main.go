package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 0) Environment (.env is optional)
	_ = godotenv.Load()

	// 1) DB
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "vocab.db"
	}
	db, err := OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// 2) Seed a shared word list (if the library is empty)
	if isEmpty, _ := IsLibraryEmpty(db); isEmpty {
		path := os.Getenv("SEED_FILE")
		if path == "" {
			path = "data/words.jsonl"
		}
		if _, err := os.Stat(path); err == nil {
			if err := SeedFromJSONL(db, path); err != nil {
				log.Fatalf("seed: %v", err)
			}
		} else {
			log.Printf("No seed file at %s; starting with an empty library", path)
		}
	}

	// 3) Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			// any http://localhost:PORT during development
			return strings.HasPrefix(origin, "http://localhost:")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secureCookies := os.Getenv("SECURE_COOKIES") == "true"
	r.Use(EnsureUser(db, secureCookies))

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	api := r.Group("/api/v1")
	{
		// Library
		api.POST("/files", UploadFile(db))
		api.GET("/files", ListFiles(db))
		api.DELETE("/files/:id", DeleteFile(db))

		// Study / browse
		api.GET("/cards", ListCards(db))
		api.GET("/languages", ListLanguages(db))
		api.GET("/levels", ListLevels(db))
		api.GET("/memos", GetMemos(db))
		api.PUT("/cards/:id/memo", PutMemo(db))

		// Quiz sessions
		api.POST("/quizzes", StartQuiz(db))
		api.GET("/quizzes/:id", GetSession(db))
		api.POST("/quizzes/:id/answers", SubmitAnswer(db))
		api.POST("/quizzes/:id/finish", FinishQuiz(db))
		api.POST("/quizzes/:id/retry", RetryWrong(db))

		// Review store
		api.GET("/review", ListReviewCards(db))
		api.DELETE("/review", ClearReviewCards(db))
		api.POST("/review/quizzes", StartReview(db))

		// User profile
		api.GET("/me", GetMe(db))
		api.PUT("/me", UpdateMe(db))
		api.GET("/me/export-key", ExportKey(db))
		api.POST("/me/restore", RestoreAccount(db, secureCookies))

		// Stats
		api.GET("/stats", Stats(db))
	}

	// 4) Server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on :%s (SecureCookies=%v, DB=%s)", port, secureCookies, dbPath)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("run: %v", err)
	}
}
