package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"
)

// SeedFromJSONL ingests a bundled word-list file into a shared WordFile
// (UserID nil) visible to every user. Called at boot when the library is
// empty; the file goes through the same ingestion pipeline as an upload.
func SeedFromJSONL(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res, err := ingestCards(string(raw), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	if res.Warning != "" {
		log.Printf("seed %s: %s", path, res.Warning)
	}

	if _, err := addFile(db, nil, filepath.Base(path), res.Cards); err != nil {
		return err
	}
	log.Printf("seed %s: %d cards loaded (%d invalid lines skipped)", path, len(res.Cards), res.Invalid)
	return nil
}
