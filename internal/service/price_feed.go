// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package service

import (
	"context"
	"sync"
	"time"

	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

const defaultPollInterval = 10 * time.Second

type priceFeedService struct {
	sources []adapter.PriceSource
	logger  *logger.Logger

	mu          sync.RWMutex
	cache       models.PriceMap
	subscribers map[int]func(models.PriceMap)
	nextSubID   int

	jobMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPriceFeedService builds a [PriceFeedService] over the given sources in
// ranking order (most trusted first). The feed owns its cache and subscriber
// set; nothing is shared process-globally.
func NewPriceFeedService(sources []adapter.PriceSource, log *logger.Logger) PriceFeedService {
	return &priceFeedService{
		sources:     sources,
		logger:      log,
		cache:       models.PriceMap{},
		subscribers: map[int]func(models.PriceMap){},
	}
}

// FetchPrices implements [PriceFeedService]. Source selection is
// all-or-nothing: a source's result is used only when it covers every
// requested symbol, otherwise the next source is tried with the full list.
// A fetch whose context is cancelled never writes the cache.
func (s *priceFeedService) FetchPrices(ctx context.Context, symbols []string) (models.PriceMap, error) {
	for _, src := range s.sources {
		prices, err := src.FetchPrices(ctx, symbols)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("price source failed, trying next")
			continue
		}
		if !coversAll(prices, symbols) {
			s.logger.Debug().Int("got", len(prices)).Int("want", len(symbols)).Msg("partial price result, trying next source")
			continue
		}

		s.storeAndNotify(prices)
		return prices, nil
	}

	cached := s.cachedSnapshot(symbols)
	if len(cached) == 0 {
		return nil, ErrNoPriceData
	}

	s.logger.Warn().Msg("all price sources failed, serving cached prices")
	return cached, nil
}

// GetPrice implements [PriceFeedService].
func (s *priceFeedService) GetPrice(symbol string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pd, ok := s.cache[symbol]
	return pd.Price, ok
}

// GetPriceChange implements [PriceFeedService].
func (s *priceFeedService) GetPriceChange(symbol string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pd, ok := s.cache[symbol]
	return pd.Change24h, ok
}

// GetCachedPrices implements [PriceFeedService].
func (s *priceFeedService) GetCachedPrices() models.PriceMap {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(models.PriceMap, len(s.cache))
	for sym, pd := range s.cache {
		snapshot[sym] = pd
	}
	return snapshot
}

// Subscribe implements [PriceFeedService].
func (s *priceFeedService) Subscribe(fn func(models.PriceMap)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// StartPolling implements [PriceFeedService]. It stops any previously running
// loop first, so at most one polling goroutine exists per feed. The loop does
// an immediate fetch, then one per tick, and exits when ctx is cancelled or
// StopPolling is called.
func (s *priceFeedService) StartPolling(ctx context.Context, symbols []string, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	s.StopPolling()

	s.jobMu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.jobMu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		if _, err := s.FetchPrices(jobCtx, symbols); err != nil {
			s.logger.Warn().Err(err).Msg("initial price fetch failed")
		}

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := s.FetchPrices(jobCtx, symbols); err != nil {
					s.logger.Warn().Err(err).Msg("price poll failed")
				}
			}
		}
	}()
}

// StopPolling implements [PriceFeedService]. It cancels the polling goroutine
// and blocks until it has fully exited. A no-op when nothing is running.
func (s *priceFeedService) StopPolling() {
	s.jobMu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.jobMu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// storeAndNotify writes prices into the cache (last write wins per symbol)
// and calls every subscriber synchronously with a full snapshot.
func (s *priceFeedService) storeAndNotify(prices models.PriceMap) {
	s.mu.Lock()
	for sym, pd := range prices {
		s.cache[sym] = pd
	}

	snapshot := make(models.PriceMap, len(s.cache))
	for sym, pd := range s.cache {
		snapshot[sym] = pd
	}
	subs := make([]func(models.PriceMap), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// cachedSnapshot returns the cached entries for symbols, re-tagged as cached
// so the consumer can tell staleness from a live observation.
func (s *priceFeedService) cachedSnapshot(symbols []string) models.PriceMap {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(models.PriceMap, len(symbols))
	for _, sym := range symbols {
		if pd, ok := s.cache[sym]; ok {
			pd.Source = models.SourceCached
			out[sym] = pd
		}
	}
	return out
}

func coversAll(prices models.PriceMap, symbols []string) bool {
	for _, sym := range symbols {
		if _, ok := prices[sym]; !ok {
			return false
		}
	}
	return len(symbols) > 0
}
