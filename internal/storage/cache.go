package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"digestease/internal/models"
)

const (
	rapportListKey = "digestease:rapports"
	rapportGenKey  = "digestease:rapports:gen"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

// RapportCache keeps the full rapport list in redis. Every Invalidate bumps a
// generation counter; a list read from the database before the bump is never
// written back.
type RapportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRapportCache(client *redis.Client, ttl time.Duration) *RapportCache {
	return &RapportCache{client: client, ttl: ttl}
}

func (c *RapportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get reports false on a cache miss.
func (c *RapportCache) Get(ctx context.Context) ([]models.Rapport, bool, error) {
	op := "internal/storage/cache.go Get"

	raw, err := c.client.Get(ctx, rapportListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var rapports []models.Rapport
	if err := json.Unmarshal(raw, &rapports); err != nil {
		return nil, false, fmt.Errorf("%s: decode cached rapports: %w", op, err)
	}
	return rapports, true, nil
}

// Generation returns the current invalidation counter. Take it before reading
// the database and hand it to Set.
func (c *RapportCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, rapportGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("internal/storage/cache.go Generation: %w", err)
	}
	return gen, nil
}

// Set stores rapports only while the generation is still gen. It reports
// false when an Invalidate happened in between and the list was dropped.
func (c *RapportCache) Set(ctx context.Context, gen int64, rapports []models.Rapport) (bool, error) {
	op := "internal/storage/cache.go Set"

	raw, err := json.Marshal(rapports)
	if err != nil {
		return false, fmt.Errorf("%s: encode rapports: %w", op, err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, rapportGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rapportListKey, raw, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, rapportGenKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}

func (c *RapportCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, rapportGenKey)
		pipe.Del(ctx, rapportListKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("internal/storage/cache.go Invalidate: %w", err)
	}
	return nil
}
