package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
)

// Provider loads the watch list from a JSON file and refreshes it on a TTL.
// Readers always see a complete snapshot; a failed refresh keeps the
// previous one.
type Provider struct {
	path    string
	refresh time.Duration
	log     *logrus.Logger

	mu       sync.RWMutex
	resolver *Resolver
}

// NewProvider creates a provider for the given file path. A refresh interval
// of zero disables background reloading.
func NewProvider(path string, refresh time.Duration, log *logrus.Logger) *Provider {
	return &Provider{
		path:    path,
		refresh: refresh,
		log:     log,
	}
}

// Load reads the watch-list file and swaps in a fresh snapshot. The initial
// call must succeed before the service starts; later calls are retried on
// the refresh ticker and keep the old snapshot on failure.
func (p *Provider) Load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read watch list: %w", err)
	}

	var entities []TrackedEntity
	if err := json.Unmarshal(data, &entities); err != nil {
		return fmt.Errorf("parse watch list: %w", err)
	}

	valid := entities[:0]
	for _, e := range entities {
		if e.Address == "" {
			p.log.Warn("Watch-list entry without address, skipping")
			continue
		}
		if _, err := base58.Decode(e.Address); err != nil {
			p.log.WithFields(logrus.Fields{
				"address": e.Address,
				"name":    e.DisplayName,
			}).Warn("Watch-list address is not valid base58, skipping")
			continue
		}
		valid = append(valid, e)
	}

	resolver := NewResolver(valid)

	p.mu.Lock()
	p.resolver = resolver
	p.mu.Unlock()

	p.log.WithField("entities", resolver.Len()).Info("Watch list loaded")
	return nil
}

// Resolver returns the current snapshot, or an error when no snapshot has
// ever been loaded. Filtering is meaningless without a list, so callers
// treat this error as fatal for the whole batch.
func (p *Provider) Resolver() (*Resolver, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.resolver == nil {
		return nil, fmt.Errorf("watch list not loaded")
	}
	return p.resolver, nil
}

// Start launches the background TTL refresh loop. It returns immediately;
// the loop stops when ctx is cancelled.
func (p *Provider) Start(ctx context.Context) {
	if p.refresh <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(p.refresh)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := p.Load(); err != nil {
					p.log.WithError(err).Error("Watch-list refresh failed, keeping previous snapshot")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
