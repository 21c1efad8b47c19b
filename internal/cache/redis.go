package cache

import (
	"context"
	"fmt"
	"time"

	"forge-backend/internal/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// pdfKeyFmt keys rendered PDFs by invoice ID plus the update timestamp, so
// an edited invoice never serves a stale document
const pdfKeyFmt = "invoice:pdf:%s:%d"

const pdfTTL = 24 * time.Hour

var client *redis.Client

// Init initializes the Redis connection. A failed connection leaves the
// cache disabled; every accessor degrades to a miss.
func Init(cfg *config.Config) error {
	addr := cfg.Redis.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

func pdfKey(invoiceID uuid.UUID, updatedAt time.Time) string {
	return fmt.Sprintf(pdfKeyFmt, invoiceID, updatedAt.Unix())
}

// GetCachedPDF returns a previously rendered PDF if present
func GetCachedPDF(ctx context.Context, invoiceID uuid.UUID, updatedAt time.Time) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, pdfKey(invoiceID, updatedAt)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CachePDF stores a rendered PDF
func CachePDF(ctx context.Context, invoiceID uuid.UUID, updatedAt time.Time, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, pdfKey(invoiceID, updatedAt), data, pdfTTL)
}

// InvalidatePDF removes every cached render of an invoice. Called on
// invoice update and delete.
func InvalidatePDF(ctx context.Context, invoiceID uuid.UUID) {
	if client == nil {
		return
	}
	pattern := fmt.Sprintf("invoice:pdf:%s:*", invoiceID)
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// IsHealthy returns true if the Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
