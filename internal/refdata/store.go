// Package refdata owns the reference datasets the fare resolver works
// against: the station alias list and the public fare table. Both are small
// JSON files reloaded lazily on a fixed TTL.
package refdata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// File names of the reference datasets inside the store's data directory.
const (
	stationsFile = "stations_origin_merged.json"
	faresFile    = "travels.json"
)

// DefaultTTL is how long a loaded dataset stays fresh. Staleness beyond the
// TTL triggers a synchronous reload before the next lookup.
const DefaultTTL = 5 * time.Minute

// FareRow mirrors one row of the fare table. Field names follow the public
// dataset, which is French: origine/destination/service/classe1/classe2.
// Fare values are strings and may be non-numeric; non-numeric coerces to 0.
type FareRow struct {
	Origin      string `json:"origine"`
	Destination string `json:"destination"`
	Mode        string `json:"service"`
	ClassFirst  string `json:"classe1"`
	ClassSecond string `json:"classe2"`
}

// dataset is one immutable snapshot of both reference files.
// Reload builds a fresh dataset and swaps the pointer; in-flight readers keep
// the snapshot they started with.
type dataset struct {
	stations []domain.Station
	fares    map[string]FareRow
	fareKeys []string // sorted, so multi-row fare selection is deterministic
	loadedAt time.Time
}

// Store is the process-wide reference-data cache: an explicitly owned,
// TTL-gated holder around the current dataset snapshot. Concurrent reloads of
// a stale cache are not deduplicated (the files are small and reload is
// cheap), but the swap is atomic so readers never observe a half-loaded
// dataset.
type Store struct {
	dir string
	ttl time.Duration
	log *slog.Logger
	cur atomic.Pointer[dataset]
}

// NewStore creates a Store reading its datasets from dir.
// Nothing is loaded until the first lookup.
func NewStore(dir string, ttl time.Duration, log *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{dir: dir, ttl: ttl, log: log}
}

// Reload loads both reference files and swaps them in as the current
// snapshot, regardless of freshness.
func (s *Store) Reload() error {
	var stations []domain.Station
	if err := readJSON(filepath.Join(s.dir, stationsFile), &stations); err != nil {
		return fmt.Errorf("refdata.Store.Reload: stations: %w", err)
	}

	var fares map[string]FareRow
	if err := readJSON(filepath.Join(s.dir, faresFile), &fares); err != nil {
		return fmt.Errorf("refdata.Store.Reload: fares: %w", err)
	}

	keys := make([]string, 0, len(fares))
	for k := range fares {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s.cur.Store(&dataset{
		stations: stations,
		fares:    fares,
		fareKeys: keys,
		loadedAt: time.Now(),
	})

	s.log.Info("reference data loaded",
		"stations", len(stations),
		"fares", len(fares),
	)
	return nil
}

// snapshot returns the current dataset, reloading first when it is missing or
// older than the TTL. A failed refresh of an existing snapshot is logged and
// the stale data keeps serving; only the very first load is fatal.
func (s *Store) snapshot() (*dataset, error) {
	d := s.cur.Load()
	if d != nil && time.Since(d.loadedAt) <= s.ttl {
		return d, nil
	}

	if err := s.Reload(); err != nil {
		if d == nil {
			return nil, err
		}
		s.log.Warn("reference data refresh failed, serving stale snapshot", "error", err)
		return d, nil
	}
	return s.cur.Load(), nil
}

// station looks a station up by its display name, case-insensitively.
func (d *dataset) station(name string) (domain.Station, bool) {
	for _, st := range d.stations {
		if strings.EqualFold(st.Name, name) {
			return st, true
		}
	}
	return domain.Station{}, false
}

// readJSON reads the file at path and unmarshals it into v.
func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
