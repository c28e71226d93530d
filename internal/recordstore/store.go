package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"investorparser/internal/profile"

	_ "embed"
)

//go:embed schema.sql
var Schema string

const upsertRecord = `
insert into investor_record (source_file, name, firm, extraction_method, investment_count, body)
values (?, ?, ?, ?, ?, ?)
on conflict (source_file) do update set
    name = excluded.name,
    firm = excluded.firm,
    extraction_method = excluded.extraction_method,
    investment_count = excluded.investment_count,
    body = excluded.body`

const selectRecord = `select body from investor_record where source_file = ?`

const selectAllRecords = `select body from investor_record order by source_file`

// Store keeps the latest parsed record of every source file.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Migrate creates the tables if they do not exist yet.
func (s Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, Schema)
	return err
}

// Put inserts the records, replacing any earlier record of the same source file.
func (s Store) Put(ctx context.Context, records ...profile.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		body, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode %s: %w", rec.SourceFile, err)
		}
		_, err = tx.ExecContext(
			ctx,
			upsertRecord,
			rec.SourceFile,
			rec.Name,
			rec.Firm,
			string(rec.ExtractionMethod),
			rec.InvestmentCount,
			string(body),
		)
		if err != nil {
			return fmt.Errorf("put %s: %w", rec.SourceFile, err)
		}
	}
	return tx.Commit()
}

// Get returns the record parsed from the given source file, the boolean is false
// when there is none.
func (s Store) Get(ctx context.Context, sourceFile string) (profile.Record, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx, selectRecord, sourceFile).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Record{}, false, nil
	}
	if err != nil {
		return profile.Record{}, false, err
	}

	var rec profile.Record
	err = json.Unmarshal([]byte(body), &rec)
	if err != nil {
		return profile.Record{}, false, fmt.Errorf("decode %s: %w", sourceFile, err)
	}
	return rec, true, nil
}

// All returns every stored record ordered by source file.
func (s Store) All(ctx context.Context) ([]profile.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectAllRecords)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []profile.Record
	for rows.Next() {
		var body string
		err = rows.Scan(&body)
		if err != nil {
			return nil, err
		}
		var rec profile.Record
		err = json.Unmarshal([]byte(body), &rec)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
