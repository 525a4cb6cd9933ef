package utils

import (
	"fmt"
	"os"
	"time"

	"sales-management-backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

// CleanupExpiredFiles removes a generated report file once it is older than the TTL.
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		config.Logger.Info("Expired report file deleted", zap.String("file", filePath))
	}
	return nil
}

// CleanupAllExpired removes expired report files and drops the cached
// order-report keys that point at them.
func CleanupAllExpired(fileTTL time.Duration, redisClient *redis.Client) error {
	files, err := os.ReadDir(reportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		filePath := fmt.Sprintf("%s/%s", reportDir, file.Name())
		if err := CleanupExpiredFiles(filePath, fileTTL); err != nil {
			config.Logger.Warn("Error cleaning up file", zap.Error(err))
		}
	}

	if err := InvalidateCache(redisClient, "orders"); err != nil {
		return fmt.Errorf("error cleaning up cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup tasks daily at 1 AM with retries. It blocks
// and is meant to be started on its own goroutine.
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		config.Logger.Info("Running scheduled cleanup task")

		var retries int
		for retries < maxRetries {
			err := CleanupAllExpired(24*time.Hour, redisClient)
			if err == nil {
				config.Logger.Info("Cleanup successful")
				return
			}

			config.Logger.Warn("Cleanup attempt failed",
				zap.Int("attempt", retries+1),
				zap.Error(err))
			retries++
			time.Sleep(retryDelay)
		}

		config.Logger.Error("Cleanup task failed after retries",
			zap.Int("retries", retries))

		adminEmail := os.Getenv("ADMIN_EMAIL")
		if adminEmail != "" {
			SendEmail(
				adminEmail,
				"The scheduled report cleanup task failed after multiple attempts.",
				"Cleanup Task Failed",
				"",
			)
		}
	})

	c.Start()

	// Keep the goroutine alive so scheduled jobs keep firing
	select {}
}
