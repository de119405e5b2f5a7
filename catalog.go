package main

import (
	"sort"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// The card catalog: uploaded files and the derivations the quiz and study
// surfaces are built on. Files are ordered by upload time; cards keep their
// within-file order. Files are never merged or edited, only added and removed.

func listFiles(db *gorm.DB, uid uint) ([]WordFile, error) {
	var files []WordFile
	err := db.
		Preload("Cards", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("user_id = ? OR user_id IS NULL", uid).
		Order("created_at ASC, id ASC").
		Find(&files).Error
	return files, err
}

// addFile stores one ingested upload. uid nil marks a shared seed file.
func addFile(db *gorm.DB, uid *uint, name string, cards []Card) (WordFile, error) {
	fileID, err := gonanoid.New()
	if err != nil {
		return WordFile{}, err
	}
	file := WordFile{
		ID:        fileID,
		UserID:    uid,
		Name:      name,
		CardCount: len(cards),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}
		for i := range cards {
			cards[i].FileID = fileID
			cards[i].Position = i + 1
		}
		if len(cards) == 0 {
			return nil
		}
		return tx.CreateInBatches(cards, 200).Error
	})
	return file, err
}

// removeFile deletes one of the user's own uploads and its cards. Shared seed
// files are not deletable through this path.
func removeFile(db *gorm.DB, uid uint, fileID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var file WordFile
		if err := tx.First(&file, "id = ? AND user_id = ?", fileID, uid).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Card{}, "file_id = ?", fileID).Error; err != nil {
			return err
		}
		return tx.Delete(&file).Error
	})
}

// allCards concatenates every visible file's cards in file-upload order, then
// card order within each file. Recomputed per call, never cached.
func allCards(db *gorm.DB, uid uint) ([]Card, error) {
	files, err := listFiles(db, uid)
	if err != nil {
		return nil, err
	}
	var cards []Card
	for _, f := range files {
		cards = append(cards, f.Cards...)
	}
	return cards, nil
}

// availableLanguages returns the distinct language tags, ascending.
func availableLanguages(cards []Card) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, c := range cards {
		if _, ok := seen[c.Language]; ok {
			continue
		}
		seen[c.Language] = struct{}{}
		out = append(out, c.Language)
	}
	sort.Strings(out)
	return out
}

// levelsForLanguage returns the distinct levels of one language, ascending,
// prefixed with the ALL sentinel.
func levelsForLanguage(cards []Card, language string) []string {
	seen := map[string]struct{}{}
	var levels []string
	for _, c := range cards {
		if c.Language != language {
			continue
		}
		if _, ok := seen[c.Level]; ok {
			continue
		}
		seen[c.Level] = struct{}{}
		levels = append(levels, c.Level)
	}
	sort.Strings(levels)
	return append([]string{levelAll}, levels...)
}
