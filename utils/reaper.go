package utils

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"academy/config"
	"academy/database"
	academyModels "academy/models/academy"

	"github.com/robfig/cron/v3"
)

// logReaper logs reaper events with timestamp
func logReaper(message string) {
	log.Printf("[UPLOAD-REAPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReaperScheduler runs the orphan-upload sweep every hour. A blob
// upload and its metadata insert are two separate steps; the failure path
// deletes the blob immediately, and this sweep covers the crash window in
// between.
func StartReaperScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", ReapOrphanUploads); err != nil {
		log.Printf("Error scheduling upload reaper: %v", err)
		return c
	}
	c.Start()
	logReaper("Scheduler started")
	return c
}

// ReapOrphanUploads removes upload files older than the grace period that no
// database row references.
func ReapOrphanUploads() {
	root := config.AppConfig.UploadDir
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.OrphanGraceHours) * time.Hour)

	removed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if isReferenced(rel) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			logReaper("Error removing orphan " + rel + ": " + err.Error())
			return nil
		}
		removed++
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		logReaper("Error walking upload dir: " + err.Error())
	}
	if removed > 0 {
		logReaper("Removed " + strconv.Itoa(removed) + " orphan uploads")
	}
}

// isReferenced checks every table that stores upload paths
func isReferenced(path string) bool {
	db := database.Database.Db

	var count int64
	db.Model(&academyModels.AssignmentSubmission{}).Where("file_url = ?", path).Count(&count)
	if count > 0 {
		return true
	}

	db.Model(&academyModels.CourseEnrollment{}).Where("payment_proof_url = ?", path).Count(&count)
	if count > 0 {
		return true
	}

	db.Model(&academyModels.Course{}).Where("thumbnail_url = ?", path).Count(&count)
	return count > 0
}
