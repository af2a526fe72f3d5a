// Package store provides a thin bbolt wrapper for osmoh's local data store.
//
// The store holds two kinds of records: opening-hours documents saved
// under user-chosen names, and raw opening_hours tag values fetched from
// OpenStreetMap. Writes happen explicitly through schedule and fetch
// commands; nothing expires on its own.
//
// Buckets:
//
//	schedules — saved documents keyed by name
//	fetches   — raw fetched tag values keyed by element type/id
//	_meta     — internal: schema version, created_at
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Anastasialos/osmoh/internal/document"
)

// Current schema version. Bump when bucket layout or key format changes.
const schemaVersion = 1

// Bucket name constants.
var (
	bucketSchedules = []byte("schedules")
	bucketFetches   = []byte("fetches")
	bucketInternal  = []byte("_meta")
)

// AllBuckets lists every user-facing bucket for stats and clear operations.
var AllBuckets = []string{"schedules", "fetches"}

// Store wraps a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt database at path.
// Parent directories are created automatically.
// Runs schema migrations on every open.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening db %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path of the open database.
func (s *Store) Path() string {
	return s.db.Path()
}

// ─── Migrations ───────────────────────────────────────────────────────────────

// migrate ensures all buckets exist and schema is current.
func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSchedules, bucketFetches, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket(bucketInternal)
		if meta.Get([]byte("schema_version")) == nil {
			if err := meta.Put([]byte("schema_version"), []byte(fmt.Sprintf("%d", schemaVersion))); err != nil {
				return err
			}
			if err := meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
				return err
			}
		}
		return nil
	})
}

// ─── Schedules ────────────────────────────────────────────────────────────────

// Schedule is a saved opening-hours document. Canonical and RuleCount are
// stamped by the caller so listings never have to re-decode the document.
type Schedule struct {
	Name      string            `json:"name" yaml:"name"`
	Document  document.Document `json:"document" yaml:"document"`
	Canonical string            `json:"canonical" yaml:"canonical"`
	RuleCount int               `json:"rule_count" yaml:"rule_count"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" yaml:"updated_at"`
}

// PutSchedule saves a schedule under its name, stamping UpdatedAt and
// preserving CreatedAt across overwrites.
func (s *Store) PutSchedule(sched Schedule) error {
	if sched.Name == "" {
		return fmt.Errorf("schedule name is required")
	}
	now := time.Now().UTC()
	sched.UpdatedAt = now
	sched.CreatedAt = now
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSchedules)
		if prev := b.Get([]byte(sched.Name)); prev != nil {
			var old Schedule
			if err := json.Unmarshal(prev, &old); err == nil && !old.CreatedAt.IsZero() {
				sched.CreatedAt = old.CreatedAt
			}
		}
		data, err := json.Marshal(sched)
		if err != nil {
			return fmt.Errorf("encoding schedule: %w", err)
		}
		return b.Put([]byte(sched.Name), data)
	})
}

// GetSchedule retrieves a schedule by name.
// Returns (sched, true, nil) if found, (zero, false, nil) if not found.
func (s *Store) GetSchedule(name string) (Schedule, bool, error) {
	var sched Schedule
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSchedules).Get([]byte(name))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &sched)
	})
	if err != nil {
		return sched, false, err
	}
	return sched, sched.Name != "", nil
}

// ListSchedules returns all saved schedules, sorted by name.
func (s *Store) ListSchedules() ([]Schedule, error) {
	var scheds []Schedule
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSchedules).ForEach(func(k, v []byte) error {
			var sched Schedule
			if err := json.Unmarshal(v, &sched); err != nil {
				return err
			}
			scheds = append(scheds, sched)
			return nil
		})
	})
	return scheds, err
}

// DeleteSchedule removes a schedule by name.
func (s *Store) DeleteSchedule(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSchedules).Delete([]byte(name))
	})
}

// ─── Fetches ──────────────────────────────────────────────────────────────────

// Fetch is one raw opening_hours value pulled from OpenStreetMap, kept
// verbatim so later decoding never loses the original text.
type Fetch struct {
	ElementType string    `json:"element_type"`
	ElementID   int64     `json:"element_id"`
	Name        string    `json:"name,omitempty"`
	Value       string    `json:"value"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// FetchKey builds the canonical key for a fetch entry.
// Format: <type>/<id>, e.g. node/240095754.
func FetchKey(elementType string, elementID int64) string {
	return fmt.Sprintf("%s/%d", elementType, elementID)
}

// PutFetch stores a fetched tag value, stamping FetchedAt.
func (s *Store) PutFetch(f Fetch) error {
	f.FetchedAt = time.Now().UTC()
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding fetch: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFetches).Put([]byte(FetchKey(f.ElementType, f.ElementID)), data)
	})
}

// ListFetches returns all stored fetches, sorted by key.
func (s *Store) ListFetches() ([]Fetch, error) {
	var fetches []Fetch
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFetches).ForEach(func(k, v []byte) error {
			var f Fetch
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			fetches = append(fetches, f)
			return nil
		})
	})
	return fetches, err
}

// ClearFetches deletes all stored fetches.
func (s *Store) ClearFetches() error {
	return s.ClearBucket("fetches")
}

// ─── Stats & Maintenance ──────────────────────────────────────────────────────

// BucketStats holds row count and byte size for a single bucket.
type BucketStats struct {
	Name  string
	Count int
	Bytes int64
}

// Stats returns row counts and approximate sizes for all buckets.
func (s *Store) Stats() ([]BucketStats, error) {
	buckets := []struct {
		name string
		key  []byte
	}{
		{"schedules", bucketSchedules},
		{"fetches", bucketFetches},
	}

	var stats []BucketStats
	err := s.db.View(func(tx *bolt.Tx) error {
		for _, bucket := range buckets {
			b := tx.Bucket(bucket.key)
			if b == nil {
				continue
			}
			var count int
			var bytes int64
			b.ForEach(func(k, v []byte) error {
				count++
				bytes += int64(len(k) + len(v))
				return nil
			})
			stats = append(stats, BucketStats{Name: bucket.name, Count: count, Bytes: bytes})
		}
		return nil
	})
	return stats, err
}

// ClearBucket deletes all entries in the named bucket.
func (s *Store) ClearBucket(name string) error {
	bname := []byte(name)
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bname); err != nil {
			return fmt.Errorf("clearing bucket %s: %w", name, err)
		}
		_, err := tx.CreateBucket(bname)
		return err
	})
}

// ClearAll deletes all entries from every user-facing bucket.
func (s *Store) ClearAll() error {
	for _, name := range AllBuckets {
		if err := s.ClearBucket(name); err != nil {
			return err
		}
	}
	return nil
}
