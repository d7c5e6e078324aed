package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/kv"
	"github.com/dmitrijs2005/rentdesk/internal/validation"
)

const quarantineSuffix = ".quarantine"

// QuarantinedEntry is a row that was removed from a table because it could
// not be decoded or broke the table's schema.
type QuarantinedEntry struct {
	Raw           string    `json:"raw"`
	Reason        string    `json:"reason"`
	QuarantinedAt time.Time `json:"quarantinedAt"`
}

// loadTable decodes the table under key into validated rows. present is
// false when the key does not exist. Bad rows are quarantined and the table
// is rewritten without them.
func loadTable[T any](ctx context.Context, s *Store, repo kv.Repository, key string) (rows []T, present bool, err error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if raw == nil {
		return nil, false, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn(ctx, "table unreadable, quarantined", "key", key, "error", err)
		bad := []QuarantinedEntry{{Raw: string(raw), Reason: err.Error(), QuarantinedAt: s.now()}}
		if err := s.quarantine(ctx, repo, key, bad); err != nil {
			return nil, true, err
		}
		if err := saveTable[T](ctx, repo, key, nil); err != nil {
			return nil, true, err
		}
		return nil, true, nil
	}

	rows = make([]T, 0, len(items))
	var bad []QuarantinedEntry
	for _, item := range items {
		var row T
		if err := json.Unmarshal(item, &row); err != nil {
			bad = append(bad, QuarantinedEntry{Raw: string(item), Reason: err.Error(), QuarantinedAt: s.now()})
			continue
		}
		if err := validation.Struct(row); err != nil {
			bad = append(bad, QuarantinedEntry{Raw: string(item), Reason: err.Error(), QuarantinedAt: s.now()})
			continue
		}
		rows = append(rows, row)
	}

	if len(bad) > 0 {
		s.log.Warn(ctx, "malformed rows quarantined", "key", key, "count", len(bad))
		if err := s.quarantine(ctx, repo, key, bad); err != nil {
			return nil, true, err
		}
		if err := saveTable(ctx, repo, key, rows); err != nil {
			return nil, true, err
		}
	}

	return rows, true, nil
}

func saveTable[T any](ctx context.Context, repo kv.Repository, key string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return repo.Set(ctx, key, b)
}

func (s *Store) quarantine(ctx context.Context, repo kv.Repository, key string, entries []QuarantinedEntry) error {
	qkey := key + quarantineSuffix

	existing, err := s.quarantinedIn(ctx, repo, qkey)
	if err != nil {
		return err
	}
	return saveTable(ctx, repo, qkey, append(existing, entries...))
}

func (s *Store) quarantinedIn(ctx context.Context, repo kv.Repository, qkey string) ([]QuarantinedEntry, error) {
	raw, err := repo.Get(ctx, qkey)
	if err != nil || raw == nil {
		return nil, err
	}

	var entries []QuarantinedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// The quarantine itself is damaged; start over rather than lose new rows.
		s.log.Warn(ctx, "quarantine table unreadable, replaced", "key", qkey, "error", err)
		return nil, nil
	}
	return entries, nil
}

// Quarantined lists the rows removed from the table stored under key.
func (s *Store) Quarantined(ctx context.Context, key string) ([]QuarantinedEntry, error) {
	return s.quarantinedIn(ctx, s.repo(), key+quarantineSuffix)
}
