package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trade_logger/internal/models"
	"trade_logger/internal/notion"
)

// RelationCache хранит идентификаторы страниц счетов и стратегий.
// Записи не инвалидируются: если страницу удалят в хранилище,
// кэш будет отдавать висячую ссылку до перезапуска процесса.
type RelationCache struct {
	mu         sync.RWMutex
	accounts   map[string]string
	strategies map[int64]string
}

// NewRelationCache создает пустой кэш
func NewRelationCache() *RelationCache {
	return &RelationCache{
		accounts:   make(map[string]string),
		strategies: make(map[int64]string),
	}
}

func (c *RelationCache) Account(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.accounts[name]

	return id, ok
}

func (c *RelationCache) PutAccount(name, pageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accounts[name] = pageID
}

func (c *RelationCache) Strategy(magic int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.strategies[magic]

	return id, ok
}

func (c *RelationCache) PutStrategy(magic int64, pageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.strategies[magic] = pageID
}

// StrategyTitle возвращает заголовок страницы стратегии
func StrategyTitle(magic int64) string {
	if magic == models.ManualMagicNumber {
		return "Manual (0)"
	}

	return fmt.Sprintf("Estrategia %d", magic)
}

// Resolver находит или создает страницы счетов и стратегий.
// Любая ошибка хранилища логируется, а вызывающий получает пустой
// идентификатор: сделка пишется без связи.
type Resolver struct {
	store       Store
	collections Collections
	cache       *RelationCache
	timeout     time.Duration
	logger      *slog.Logger

	// параллельные разрешения одного ключа схлопываются в один поиск/создание
	flights singleflight.Group
}

// NewResolver создает резолвер над кэшем cache
func NewResolver(store Store, collections Collections, cache *RelationCache, timeout time.Duration, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:       store,
		collections: collections,
		cache:       cache,
		timeout:     timeout,
		logger:      logger,
	}
}

// Cache возвращает кэш резолвера
func (r *Resolver) Cache() *RelationCache {
	return r.cache
}

// ResolveAccount возвращает id страницы счета name или ""
func (r *Resolver) ResolveAccount(ctx context.Context, name string) string {
	if id, ok := r.cache.Account(name); ok {
		return id
	}

	if r.collections.Accounts == "" {
		r.logger.Warn("Accounts database not configured, relation skipped", slog.String("account", name))
		return ""
	}

	v, _, _ := r.flights.Do("account:"+name, func() (any, error) {
		if id, ok := r.cache.Account(name); ok {
			return id, nil
		}

		id := r.findOrCreate(ctx, entitySpec{
			kind:       "account",
			key:        name,
			databaseID: r.collections.Accounts,
			filter:     notion.TitleEquals(PropName, name),
			props:      notion.NewProperties().Title(PropName, name),
		})
		if id != "" {
			r.cache.PutAccount(name, id)
		}

		return id, nil
	})

	return v.(string)
}

// ResolveStrategy возвращает id страницы стратегии magic или "".
// Magic 0 разрешается в отдельную страницу "Manual (0)".
func (r *Resolver) ResolveStrategy(ctx context.Context, magic int64) string {
	if id, ok := r.cache.Strategy(magic); ok {
		return id
	}

	if r.collections.Strategies == "" {
		r.logger.Warn("Strategies database not configured, relation skipped", slog.Int64("magic", magic))
		return ""
	}

	key := strconv.FormatInt(magic, 10)

	v, _, _ := r.flights.Do("strategy:"+key, func() (any, error) {
		if id, ok := r.cache.Strategy(magic); ok {
			return id, nil
		}

		id := r.findOrCreate(ctx, entitySpec{
			kind:       "strategy",
			key:        key,
			databaseID: r.collections.Strategies,
			filter:     notion.NumberEquals(PropMagicNumber, magic),
			props: notion.NewProperties().
				Title(PropName, StrategyTitle(magic)).
				Number(PropMagicNumber, float64(magic)),
		})
		if id != "" {
			r.cache.PutStrategy(magic, id)
		}

		return id, nil
	})

	return v.(string)
}

type entitySpec struct {
	kind       string
	key        string
	databaseID string
	filter     *notion.Filter
	props      notion.Properties
}

func (r *Resolver) findOrCreate(ctx context.Context, spec entitySpec) string {
	log := r.logger.With(slog.String("kind", spec.kind), slog.String("key", spec.key))

	qctx, cancel := context.WithTimeout(ctx, r.timeout)
	res, err := r.store.Query(qctx, spec.databaseID, notion.Query{
		Filter:   spec.filter,
		PageSize: lookupPageSize,
	})
	cancel()

	if err != nil {
		log.Error("Relation lookup failed", slog.Any("error", err))
		return ""
	}

	if len(res.Results) > 0 {
		return res.Results[0].ID
	}

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := r.store.Create(cctx, spec.databaseID, spec.props)
	if err != nil {
		log.Error("Relation create failed", slog.Any("error", err))
		return ""
	}

	log.Info("✅ Relation page created", slog.String("page_id", page.ID))

	return page.ID
}
