// Package backup serializes the whole catalog to a single versioned snapshot
// document and restores it with upsert semantics, so the same snapshot can be
// imported any number of times.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"art-inventory/internal/schema"
	"art-inventory/internal/store"
	"art-inventory/pkg/log"
)

const SnapshotVersion = "1.0"

// Snapshot is the exported backup document. Data is keyed by table name and
// carries rows in no particular order; ordering is applied on import.
type Snapshot struct {
	Version   string                     `json:"version"`
	Timestamp time.Time                  `json:"timestamp"`
	Data      map[string]json.RawMessage `json:"data"`
}

// TypeResult counts one table's import outcome.
type TypeResult struct {
	Attempted int    `json:"attempted"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
}

type ImportSummary struct {
	Types map[string]TypeResult `json:"types"`
}

type ClearSummary struct {
	Cleared []string          `json:"cleared"`
	Failed  map[string]string `json:"failed,omitempty"`
}

type Engine struct {
	entities *store.Entities
}

func New(entities *store.Entities) *Engine {
	return &Engine{entities: entities}
}

// Export serializes every entity type into one snapshot.
func (e *Engine) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Version:   SnapshotVersion,
		Timestamp: time.Now().UTC(),
		Data:      make(map[string]json.RawMessage, len(schema.Types())),
	}
	for _, name := range schema.Types() {
		rows, err := e.entities.GetAll(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", name, err)
		}
		raw, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", name, err)
		}
		snap.Data[name] = raw
	}
	return snap, nil
}

// Import restores a snapshot. Entity types run in insertion order, each in
// its own transaction, so a failure in one table never undoes tables already
// committed. Within a type, each row upserts under a savepoint: a malformed
// or rejected row is rolled back, logged and counted, and the rest of the
// table continues. After a table with rows lands, its id sequence is
// advanced past the highest imported id.
func (e *Engine) Import(ctx context.Context, snap *Snapshot) (*ImportSummary, error) {
	if snap == nil || snap.Data == nil {
		return nil, fmt.Errorf("%w: missing data section", store.ErrInvalidSnapshot)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unrecognized version %q", store.ErrInvalidSnapshot, snap.Version)
	}

	summary := &ImportSummary{Types: make(map[string]TypeResult)}
	for _, name := range schema.InsertionOrder() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		raw, ok := snap.Data[name]
		if !ok {
			continue
		}

		var rawRows []json.RawMessage
		if err := json.Unmarshal(raw, &rawRows); err != nil {
			summary.Types[name] = TypeResult{Error: fmt.Sprintf("rows are not an array: %v", err)}
			log.Warnf("import %s: %v", name, err)
			continue
		}

		result := TypeResult{Attempted: len(rawRows)}
		txErr := e.entities.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i, rr := range rawRows {
				rec, err := e.entities.DecodeRow(name, rr)
				if err != nil {
					log.Warnf("import %s row %d: %v", name, i, err)
					result.Failed++
					continue
				}

				sp := fmt.Sprintf("row_%d", i)
				if err := tx.SavePoint(sp).Error; err != nil {
					return err
				}
				if err := e.entities.Upsert(ctx, tx, rec); err != nil {
					log.Warnf("import %s row %d: %v", name, i, err)
					if err := tx.RollbackTo(sp).Error; err != nil {
						return err
					}
					result.Failed++
					continue
				}
				result.Succeeded++
			}
			return nil
		})
		if txErr != nil {
			result.Error = txErr.Error()
			result.Succeeded = 0
			result.Failed = result.Attempted
			summary.Types[name] = result
			log.Warnf("import %s: transaction failed: %v", name, txErr)
			continue
		}

		if result.Attempted > 0 {
			maxID, err := e.entities.MaxID(ctx, name)
			if err == nil {
				err = e.entities.ResetSequence(ctx, name, maxID+1)
			}
			if err != nil {
				log.Warnf("import %s: sequence repair failed: %v", name, err)
			}
		}
		summary.Types[name] = result
	}
	return summary, nil
}

// Clear deletes every row of every entity type in reverse dependency order
// and resets each sequence. A failing table is recorded and skipped so the
// caller sees exactly which tables were left partially cleared.
func (e *Engine) Clear(ctx context.Context) (*ClearSummary, error) {
	summary := &ClearSummary{Failed: make(map[string]string)}
	for _, name := range schema.DeletionOrder() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := e.entities.DeleteAll(ctx, name); err != nil {
			summary.Failed[name] = err.Error()
			log.Warnf("clear %s: %v", name, err)
			continue
		}
		if err := e.entities.ResetSequence(ctx, name, 1); err != nil {
			summary.Failed[name] = err.Error()
			log.Warnf("clear %s: sequence reset failed: %v", name, err)
			continue
		}
		summary.Cleared = append(summary.Cleared, name)
	}
	if len(summary.Failed) == 0 {
		summary.Failed = nil
	}
	return summary, nil
}
