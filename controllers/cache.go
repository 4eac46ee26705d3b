package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/url"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const browseCachePrefix = "browse:"

// browseCacheKey hashes the query parameters so any filter combination gets
// a stable key under one invalidation prefix.
func browseCacheKey(queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return browseCachePrefix + hex.EncodeToString(sum[:])
}

// invalidateBrowseCache drops every cached browse result. Called after any
// property or workflow mutation, since all of them can change what the
// public directory shows.
func invalidateBrowseCache(redisClient *redis.Client) {
	ctx := context.Background()
	const scanPattern = browseCachePrefix + "*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error deleting %d browse cache keys: %v", len(keysToDelete), err)
		return
	}
	log.Printf("Browse cache invalidated, %d keys deleted", len(keysToDelete))
}
