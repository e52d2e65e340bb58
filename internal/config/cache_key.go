package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// LoginAttemptsKey returns the Redis counter key for login attempts from one client
// within the fixed window that starts at windowStart (unix seconds).
func (r *CacheKeyStruct) LoginAttemptsKey(clientIP string, windowStart int64) string {
	return fmt.Sprintf("ratelimit:login:%s:%d", clientIP, windowStart)
}

var CacheKey = NewCacheKeyStruct()
