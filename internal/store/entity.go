package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entities is the adapter the migration and backup engines drive. Single
// entity CRUD goes through gorm directly in the handlers; this type adds the
// bulk primitives gorm does not ship: type-keyed reads, upsert-by-id with
// full column overwrite, and sequence repair after a restore.
type Entities struct {
	db *gorm.DB
}

func NewEntities(db *gorm.DB) *Entities {
	return &Entities{db: db}
}

// DB exposes the underlying handle for typed queries and transactions.
func (s *Entities) DB() *gorm.DB { return s.db }

// Transaction runs fn atomically, the all-or-nothing unit for one logical
// entity and its link rows.
func (s *Entities) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// GetAll loads every row of the named type. The result is a pointer to a
// typed slice (e.g. *[]works.Artwork).
func (s *Entities) GetAll(ctx context.Context, name string) (interface{}, error) {
	et, err := typeFor(name)
	if err != nil {
		return nil, err
	}
	slice := et.newSlice()
	if err := s.db.WithContext(ctx).Table(et.table).Find(slice).Error; err != nil {
		return nil, err
	}
	return slice, nil
}

func (s *Entities) Count(ctx context.Context, name string) (int64, error) {
	et, err := typeFor(name)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.WithContext(ctx).Table(et.table).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// DecodeRows parses raw snapshot rows into the registered model for name and
// returns one pointer per row. Unknown JSON keys are dropped, mistyped values
// fail the decode, so arbitrary input can never choose its own column list.
func (s *Entities) DecodeRows(name string, raw json.RawMessage) ([]interface{}, error) {
	et, err := typeFor(name)
	if err != nil {
		return nil, err
	}
	slice := et.newSlice()
	if err := json.Unmarshal(raw, slice); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", name, err)
	}

	v := reflect.ValueOf(slice).Elem()
	rows := make([]interface{}, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		rows = append(rows, v.Index(i).Addr().Interface())
	}
	return rows, nil
}

// DecodeRow parses one raw snapshot row into the registered model for name.
func (s *Entities) DecodeRow(name string, raw json.RawMessage) (interface{}, error) {
	et, err := typeFor(name)
	if err != nil {
		return nil, err
	}
	rec := et.newRecord()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decode %s row: %w", name, err)
	}
	return rec, nil
}

// Upsert inserts row if its primary id is absent, otherwise overwrites every
// column except the id with the incoming values. Atomic per record. Pass a
// transaction handle to group upserts, or nil to run on the base connection.
func (s *Entities) Upsert(ctx context.Context, tx *gorm.DB, row interface{}) error {
	t := tx
	if t == nil {
		t = s.db
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

// MaxID returns the highest primary id present for the named type, 0 when
// the table is empty.
func (s *Entities) MaxID(ctx context.Context, name string) (int64, error) {
	et, err := typeFor(name)
	if err != nil {
		return 0, err
	}
	var max int64
	err = s.db.WithContext(ctx).
		Table(et.table).
		Select("COALESCE(MAX(id), 0)").
		Scan(&max).Error
	return max, err
}

// ResetSequence advances the id generator for the named type so the next
// insert without an explicit id produces next or greater.
func (s *Entities) ResetSequence(ctx context.Context, name string, next int64) error {
	et, err := typeFor(name)
	if err != nil {
		return err
	}
	if next < 1 {
		next = 1
	}

	db := s.db.WithContext(ctx)
	switch s.db.Dialector.Name() {
	case "postgres":
		return db.Exec(
			`SELECT setval(pg_get_serial_sequence(?, 'id'), ?, false)`,
			et.table, next,
		).Error
	case "sqlite":
		res := db.Exec(`UPDATE sqlite_sequence SET seq = ? WHERE name = ?`, next-1, et.table)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return db.Exec(`INSERT INTO sqlite_sequence (name, seq) VALUES (?, ?)`, et.table, next-1).Error
		}
		return nil
	default:
		return fmt.Errorf("reset sequence: unsupported dialect %s", s.db.Dialector.Name())
	}
}

// DeleteAll removes every row of the named type.
func (s *Entities) DeleteAll(ctx context.Context, name string) error {
	et, err := typeFor(name)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Exec("DELETE FROM " + et.table).Error
}
