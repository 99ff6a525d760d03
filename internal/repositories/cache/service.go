// Package cache fronts Redis for QR record lookups. A record never
// changes after creation, so cached entries cannot go stale; the TTL
// only bounds memory.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"basepay/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// GetQRCode returns the cached record for a wallet+URL pair. The
// second return value reports a cache hit; a miss is not an error.
func (s *CacheService) GetQRCode(ctx context.Context, walletAddress, websiteURL string) (*models.QRCode, bool, error) {
	data, err := s.client.Get(ctx, qrKey(walletAddress, websiteURL)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cache value: %w", err)
	}

	var qr models.QRCode
	if err := json.Unmarshal(data, &qr); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return &qr, true, nil
}

func (s *CacheService) SetQRCode(ctx context.Context, qr *models.QRCode) error {
	data, err := json.Marshal(qr)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, qrKey(qr.WalletAddress, qr.WebsiteURL), data, s.ttl).Err()
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

func qrKey(walletAddress, websiteURL string) string {
	return fmt.Sprintf("qr:%s:%s", walletAddress, websiteURL)
}
