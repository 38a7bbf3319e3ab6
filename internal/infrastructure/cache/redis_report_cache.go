// Package cache guarda en Redis los reportes derivados del historial.
//
// Las claves llevan una generación: reports:v<gen>:<reporte>. Invalidate incrementa la generación,
// con lo que todas las entradas anteriores quedan huérfanas y expiran por TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/application/analytics"
	"github.com/jhoicas/sorveteria-estoque/internal/application/inventory"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "reports"
	generationKey = keyPrefix + ":gen"
)

var (
	_ analytics.ReportCache      = (*RedisReportCache)(nil)
	_ inventory.CacheInvalidator = (*RedisReportCache)(nil)
)

// RedisReportCache implementa analytics.ReportCache e inventory.CacheInvalidator sobre go-redis.
type RedisReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisReportCache construye la caché. ttl acota la vida de cada reporte aunque no haya movimientos.
func NewRedisReportCache(rdb *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{rdb: rdb, ttl: ttl}
}

// Ping verifica la conexión (arranque).
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get lee y decodifica un reporte. Devuelve también la generación observada, que el
// llamador pasa a Set. (false, gen, nil) si no existe.
func (c *RedisReportCache) Get(ctx context.Context, key string, dst any) (bool, int64, error) {
	gen, err := readGeneration(ctx, c.rdb)
	if err != nil {
		return false, 0, err
	}
	raw, err := c.rdb.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, gen, nil
	}
	if err != nil {
		return false, gen, fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, gen, fmt.Errorf("cache: decodificar %s: %w", key, err)
	}
	return true, gen, nil
}

// Set guarda un reporte con TTL bajo la generación gen. Si la generación avanzó desde el Get
// (hubo un movimiento mientras se calculaba), el reporte ya está viejo y no se guarda.
func (c *RedisReportCache) Set(ctx context.Context, gen int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: codificar %s: %w", key, err)
	}
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, entryKey(gen, key), raw, c.ttl)
			return nil
		})
		return err
	}, generationKey)
	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Invalidate descarta todos los reportes.
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("cache: invalidar: %w", err)
	}
	return nil
}

var errStaleGeneration = errors.New("cache: generación vencida")

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, r stringGetter) (int64, error) {
	gen, err := r.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache: generación: %w", err)
	}
	return gen, nil
}

func entryKey(gen int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, gen, key)
}
