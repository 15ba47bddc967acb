package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	createTableStatement = `CREATE TABLE IF NOT EXISTS watermark_report (
	id                INTEGER PRIMARY KEY CHECK (id = 1),
	timestamp         TEXT NOT NULL,
	status            TEXT NOT NULL,
	original_image    TEXT NOT NULL,
	watermarked_image TEXT NOT NULL,
	width             INTEGER NOT NULL,
	height            INTEGER NOT NULL,
	watermark_text    TEXT NOT NULL,
	method            TEXT NOT NULL,
	eof_marker        TEXT NOT NULL
)`

	upsertStatement = `INSERT INTO watermark_report
	(id, timestamp, status, original_image, watermarked_image, width, height, watermark_text, method, eof_marker)
VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	timestamp = excluded.timestamp,
	status = excluded.status,
	original_image = excluded.original_image,
	watermarked_image = excluded.watermarked_image,
	width = excluded.width,
	height = excluded.height,
	watermark_text = excluded.watermark_text,
	method = excluded.method,
	eof_marker = excluded.eof_marker`

	selectStatement = `SELECT timestamp, status, original_image, watermarked_image, width, height, watermark_text, method, eof_marker
FROM watermark_report WHERE id = 1`
)

var (
	ErrNoReport = errors.New("no report has been written yet")
)

// SQLiteSink keeps the latest report as the single row of the watermark_report table
type SQLiteSink struct {
	db *sql.DB
}

func OpenSQLiteSink(ctx context.Context, path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open report database: %w", err)
	}
	if _, err = db.ExecContext(ctx, createTableStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("create report table: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Write(ctx context.Context, r Report) error {
	_, err := s.db.ExecContext(ctx, upsertStatement,
		r.Timestamp.Format(time.RFC3339Nano),
		r.Status,
		r.OriginalImage,
		r.WatermarkedImage,
		r.Width,
		r.Height,
		r.WatermarkText,
		r.Method,
		r.EOFMarker,
	)
	if err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	return nil
}

// Last returns the report currently stored
func (s *SQLiteSink) Last(ctx context.Context) (Report, error) {
	var (
		r         Report
		timestamp string
	)
	err := s.db.QueryRowContext(ctx, selectStatement).Scan(&timestamp, &r.Status, &r.OriginalImage,
		&r.WatermarkedImage, &r.Width, &r.Height, &r.WatermarkText, &r.Method, &r.EOFMarker)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNoReport
	} else if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}

	r.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return Report{}, fmt.Errorf("read report timestamp: %w", err)
	}
	return r, nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
