package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
)

// DefaultWorkStatuses is the fallback vocabulary used whenever no
// configuration exists for a classification. The first element is the
// initial status for new orders.
var DefaultWorkStatuses = []string{
	"In attesa",
	"In lavorazione 1",
	"In lavorazione 2",
	"Pronto",
	"Consegnato",
}

// StatusDownloaded is the overlay status written after a successful label
// print or export. It is never part of a configured vocabulary.
const StatusDownloaded = "Scaricato"

// WorkStatusRegistry resolves the ordered status vocabulary for a
// (product type, sub-category) pair, caching per key for the session.
// Resolution never fails: missing configuration, fetch errors and broken
// payloads all fall back to DefaultWorkStatuses.
type WorkStatusRegistry struct {
	store OrderStore
	mu    sync.Mutex
	cache map[string][]string
}

// NewWorkStatusRegistry builds a registry over the given store.
func NewWorkStatusRegistry(store OrderStore) *WorkStatusRegistry {
	return &WorkStatusRegistry{
		store: store,
		cache: make(map[string][]string),
	}
}

func vocabularyKey(productTypeID uint, subCategoryID *uint) string {
	if subCategoryID == nil {
		return fmt.Sprintf("%d:", productTypeID)
	}
	return fmt.Sprintf("%d:%d", productTypeID, *subCategoryID)
}

// Resolve returns the ordered status labels for the classification. A cache
// hit never touches the store; status selection is never blocked by a
// missing or unreadable configuration.
func (r *WorkStatusRegistry) Resolve(ctx context.Context, productTypeID uint, subCategoryID *uint) []string {
	key := vocabularyKey(productTypeID, subCategoryID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[key]; ok {
		return cloneStatuses(cached)
	}

	cfg, err := r.store.GetWorkStatuses(ctx, productTypeID, subCategoryID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			// Transport failure: serve the default but do not cache it, so
			// the next resolve retries the fetch.
			log.Printf("Work status fetch failed for %s: %v", key, err)
			return cloneStatuses(DefaultWorkStatuses)
		}
		// Definitively unconfigured: the default is the answer for this
		// session.
		r.cache[key] = cloneStatuses(DefaultWorkStatuses)
		return cloneStatuses(DefaultWorkStatuses)
	}

	statuses := decodeStatusList(key, cfg.StatusList)
	r.cache[key] = statuses
	return cloneStatuses(statuses)
}

// Invalidate drops the cached vocabulary for a classification. Called after
// an admin saves a new list so the next resolve refetches.
func (r *WorkStatusRegistry) Invalidate(productTypeID uint, subCategoryID *uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, vocabularyKey(productTypeID, subCategoryID))
}

// decodeStatusList parses the stored JSON list. Unparsable or empty payloads
// substitute the default vocabulary silently (logged only).
func decodeStatusList(key, encoded string) []string {
	var statuses []string
	if err := json.Unmarshal([]byte(encoded), &statuses); err != nil {
		log.Printf("Work status list for %s is unreadable, using default: %v", key, err)
		return cloneStatuses(DefaultWorkStatuses)
	}
	if len(statuses) == 0 {
		return cloneStatuses(DefaultWorkStatuses)
	}
	return statuses
}

func cloneStatuses(statuses []string) []string {
	out := make([]string, len(statuses))
	copy(out, statuses)
	return out
}
