package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
)

// Cache key prefixes
const (
	cacheKeyDashboard     = "dashboard:stats"
	cacheKeyReportSummary = "report:summary:"
)

// InterfaceRedisService defines the cache service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	Ping() error
	CacheDashboardStats(stats interface{}, expiration time.Duration) error
	GetDashboardStats(dest interface{}) error
	InvalidateDashboard() error
	CacheReportSummary(window string, summary interface{}, expiration time.Duration) error
	GetReportSummary(window string, dest interface{}) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// Ping checks the Redis connection
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err()
}

// CacheDashboardStats caches dashboard aggregates
func (s *RedisService) CacheDashboardStats(stats interface{}, expiration time.Duration) error {
	return s.Set(cacheKeyDashboard, stats, expiration)
}

// GetDashboardStats reads cached dashboard aggregates
func (s *RedisService) GetDashboardStats(dest interface{}) error {
	return s.Get(cacheKeyDashboard, dest)
}

// InvalidateDashboard drops the cached dashboard aggregates
func (s *RedisService) InvalidateDashboard() error {
	return s.Delete(cacheKeyDashboard)
}

// CacheReportSummary caches a report summary for a date window
func (s *RedisService) CacheReportSummary(window string, summary interface{}, expiration time.Duration) error {
	return s.Set(cacheKeyReportSummary+window, summary, expiration)
}

// GetReportSummary reads a cached report summary
func (s *RedisService) GetReportSummary(window string, dest interface{}) error {
	return s.Get(cacheKeyReportSummary+window, dest)
}
