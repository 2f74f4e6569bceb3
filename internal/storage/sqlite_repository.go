package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens path, applies pending migrations and returns a ready
// repository.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateCycle(ctx context.Context, in CycleRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cycles (id, task, minutes_amount, start_time, status, finished_at, interrupted_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Task, in.MinutesAmount, mustTime(in.StartTime), in.Status,
		nullTime(in.FinishedAt), nullTime(in.InterruptedAt), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetCycle(ctx context.Context, id string) (CycleRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, task, minutes_amount, start_time, status, finished_at, interrupted_at, created_at
		FROM cycles WHERE id = ?`, id)
	rec, err := scanCycle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CycleRecord{}, ErrNotFound
		}
		return CycleRecord{}, err
	}
	return rec, nil
}

// UpdateCycle only moves lifecycle columns; task, minutes and start time are
// immutable.
func (r *SQLiteRepository) UpdateCycle(ctx context.Context, in CycleRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cycles
		SET status = ?, finished_at = ?, interrupted_at = ?
		WHERE id = ?`,
		in.Status, nullTime(in.FinishedAt), nullTime(in.InterruptedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListCycles(ctx context.Context, filter CycleListFilter) ([]CycleRecord, error) {
	query := `SELECT id, task, minutes_amount, start_time, status, finished_at, interrupted_at, created_at FROM cycles`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Since != nil {
		clauses = append(clauses, "start_time >= ?")
		args = append(args, mustTime(*filter.Since))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY start_time DESC, created_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CycleRecord, 0)
	for rows.Next() {
		rec, scanErr := scanCycle(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCycle(s scanner) (CycleRecord, error) {
	var out CycleRecord
	var start string
	var finished sql.NullString
	var interrupted sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.Task, &out.MinutesAmount, &start, &out.Status, &finished, &interrupted, &created); err != nil {
		return CycleRecord{}, err
	}
	startTime, err := parseRequiredTime(start)
	if err != nil {
		return CycleRecord{}, err
	}
	finishedAt, err := parseNullableTime(finished)
	if err != nil {
		return CycleRecord{}, err
	}
	interruptedAt, err := parseNullableTime(interrupted)
	if err != nil {
		return CycleRecord{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return CycleRecord{}, err
	}
	out.StartTime = startTime
	out.FinishedAt = finishedAt
	out.InterruptedAt = interruptedAt
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
