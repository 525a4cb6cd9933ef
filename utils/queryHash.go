package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// GenerateHash builds two cache keys for a filtered report: a search key
// (stable across time, used to find an existing report) and a storage key
// (unique per generation, used when writing a new one).
func GenerateHash(resourceType string, filters map[string]string, page, pageSize int) (string, string) {
	timestamp := Today().Unix()

	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	query := fmt.Sprintf("resource=%s&page=%d&page_size=%d", resourceType, page, pageSize)
	for _, key := range keys {
		query += fmt.Sprintf("&%s=%s", key, filters[key])
	}

	searchHash := sha256.Sum256([]byte(query))
	storageHash := sha256.Sum256([]byte(fmt.Sprintf("%s&timestamp=%d", query, timestamp)))

	searchKey := fmt.Sprintf("%s:%s", resourceType, hex.EncodeToString(searchHash[:]))
	storageKey := fmt.Sprintf("%s:%s", resourceType, hex.EncodeToString(storageHash[:]))

	return searchKey, storageKey
}

// FindMatchingFile looks for a cached report path under any key containing
// the search hash.
func FindMatchingFile(rdb *redis.Client, searchHash string) (string, error) {
	// SCAN instead of KEYS to avoid blocking Redis on large keyspaces
	iter := rdb.Scan(context.Background(), 0, fmt.Sprintf("*%s*", searchHash), 1).Iterator()
	for iter.Next(context.Background()) {
		filePath, err := rdb.Get(context.Background(), iter.Val()).Result()
		if err == nil {
			return filePath, nil
		}
	}
	if err := iter.Err(); err != nil {
		return "", err
	}

	return "", redis.Nil
}
