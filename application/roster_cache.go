package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"bonusbot/domain/entities"
	"bonusbot/domain/events"
	"bonusbot/domain/interfaces"
	"bonusbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// RosterCache holds every artist's bonus records in memory.
// Refresh swaps the whole map, so readers never see a partial reload.
type RosterCache struct {
	source    BonusSource
	publisher interfaces.EventPublisher
	now       func() time.Time

	mu            sync.RWMutex
	records       map[string][]entities.BonusRecord
	lastRefreshed time.Time

	refreshing atomic.Bool
}

// NewRosterCache creates an empty cache backed by source
func NewRosterCache(source BonusSource, publisher interfaces.EventPublisher) *RosterCache {
	return &RosterCache{
		source:    source,
		publisher: publisher,
		now:       time.Now,
		records:   make(map[string][]entities.BonusRecord),
	}
}

// Refresh reloads every record from the source.
// A call made while another refresh is running returns immediately.
func (c *RosterCache) Refresh(ctx context.Context) error {
	if !c.refreshing.CompareAndSwap(false, true) {
		log.Debug("Roster refresh already in progress, skipping")
		return nil
	}
	defer c.refreshing.Store(false)

	start := c.now()
	all, err := c.source.ListAll(ctx)
	duration := c.now().Sub(start)
	observability.GetMetrics().RecordRosterRefresh(duration, err)
	if err != nil {
		return fmt.Errorf("failed to load bonus records: %w", err)
	}

	byArtist := make(map[string][]entities.BonusRecord)
	for _, rec := range all {
		byArtist[rec.ArtistName] = append(byArtist[rec.ArtistName], rec)
	}

	refreshedAt := c.now()
	c.mu.Lock()
	c.records = byArtist
	c.lastRefreshed = refreshedAt
	c.mu.Unlock()

	log.WithFields(log.Fields{
		"artists":  len(byArtist),
		"records":  len(all),
		"duration": duration,
	}).Info("Roster cache refreshed")

	if c.publisher != nil {
		event := events.RosterRefreshedEvent{
			Artists:     len(byArtist),
			Records:     len(all),
			Duration:    duration,
			RefreshedAt: refreshedAt,
		}
		if err := c.publisher.Publish(event); err != nil {
			log.WithError(err).Warn("Failed to publish roster refreshed event")
		}
	}

	return nil
}

// Get returns a copy of artist's records, or nil when the artist is unknown
func (c *RosterCache) Get(artist string) []entities.BonusRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, ok := c.records[artist]
	if !ok {
		return nil
	}
	out := make([]entities.BonusRecord, len(records))
	copy(out, records)
	return out
}

// Artists returns the cached artist names in sorted order
func (c *RosterCache) Artists() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	artists := make([]string, 0, len(c.records))
	for name := range c.records {
		artists = append(artists, name)
	}
	sort.Strings(artists)
	return artists
}

// LastRefreshed returns when the cache last loaded successfully
func (c *RosterCache) LastRefreshed() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefreshed
}

// StartRefreshWorker refreshes the cache every interval until ctx is done.
// Returns a cleanup function to stop the worker.
func (c *RosterCache) StartRefreshWorker(ctx context.Context, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	stopChan := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		log.WithField("interval", interval).Info("Roster refresh worker started")

		for {
			select {
			case <-ctx.Done():
				log.Info("Roster refresh worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Roster refresh worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				if err := c.Refresh(ctx); err != nil {
					log.WithError(err).Error("Roster refresh failed")
				}
			}
		}
	}()

	return func() {
		once.Do(func() { close(stopChan) })
	}
}
