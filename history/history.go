// Package history stores classification results in SQL.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	"github.com/maastricht-university/veracity-pipeline/scoring"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

var ErrNotFound = errors.New("record not found")

// Record is one stored classification.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Source    string    `json:"source" yaml:"source"`
	scoring.Result `yaml:",inline"`
}

// NewRecord stamps r with a fresh id and the current time.
func NewRecord(source string, r scoring.Result) Record {
	return Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		Result:    r,
	}
}

type Store struct {
	db     *sql.DB
	driver Driver
}

// Open opens a DB and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite"
		if dsn == "" {
			dsn = "file:veracity.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx"
		if dsn == "" {
			dsn = "postgres://localhost:5432/veracity?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error { return s.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS results (
  id TEXT PRIMARY KEY,
  created_at BIGINT NOT NULL,
  source TEXT NOT NULL,
  label TEXT NOT NULL,
  explanation TEXT NOT NULL,
  facial_emotion_score DOUBLE PRECISION NOT NULL,
  body_language_score DOUBLE PRECISION NOT NULL,
  audio_score DOUBLE PRECISION NOT NULL,
  final_score DOUBLE PRECISION NOT NULL,
  failed_signals TEXT NOT NULL DEFAULT '',
  detail_json TEXT NOT NULL DEFAULT '{}'
);
`

// rebind rewrites ? placeholders for postgres.
func (s *Store) rebind(q string) string {
	if s.driver != DriverPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) Save(ctx context.Context, r Record) error {
	detail, err := json.Marshal(r.Result)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`
INSERT INTO results (id, created_at, source, label, explanation,
  facial_emotion_score, body_language_score, audio_score, final_score,
  failed_signals, detail_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		r.ID, r.CreatedAt.UnixMilli(), r.Source, r.Label, r.Explanation,
		r.FacialEmotionScore, r.BodyLanguageScore, r.AudioScore, r.FinalScore,
		strings.Join(r.FailedSignals, ","), string(detail))
	if err != nil {
		return fmt.Errorf("save result %s: %w", r.ID, err)
	}
	return nil
}

const selectCols = `SELECT id, created_at, source, detail_json FROM results`

func scan(row interface{ Scan(...any) error }) (Record, error) {
	var (
		r      Record
		ms     int64
		detail string
	)
	if err := row.Scan(&r.ID, &ms, &r.Source, &detail); err != nil {
		return Record{}, err
	}
	r.CreatedAt = time.UnixMilli(ms).UTC()
	if err := json.Unmarshal([]byte(detail), &r.Result); err != nil {
		return Record{}, fmt.Errorf("decode result %s: %w", r.ID, err)
	}
	return r, nil
}

// List returns the newest records first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(selectCols+` ORDER BY created_at DESC, id LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	r, err := scan(s.db.QueryRowContext(ctx, s.rebind(selectCols+` WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}
