package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Record is one sync decision for one subtitle against one media file.
type Record struct {
	ID            int64
	RunID         string
	MediaPath     string
	SubtitlePath  string
	Model         string
	OffsetFrames  int
	OffsetSeconds float64
	BestLoss      float64
	MeanLoss      float64
	LossStdDev    float64
	Confident     bool
	Accepted      bool
	CreatedAt     time.Time
}

const recordColumns = `id, run_id, media_path, subtitle_path, model,
    offset_frames, offset_seconds, best_loss, mean_loss, loss_stddev,
    confident, accepted, created_at`

// Add persists a sync decision and returns it with its identifier set.
func (s *Store) Add(ctx context.Context, record *Record) (*Record, error) {
	if record == nil {
		return nil, errors.New("record is nil")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO sync_history (
            run_id, media_path, subtitle_path, model,
            offset_frames, offset_seconds, best_loss, mean_loss, loss_stddev,
            confident, accepted, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.MediaPath,
		record.SubtitlePath,
		record.Model,
		record.OffsetFrames,
		record.OffsetSeconds,
		record.BestLoss,
		record.MeanLoss,
		record.LossStdDev,
		boolToInt(record.Confident),
		boolToInt(record.Accepted),
		record.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	record.ID = id
	return record, nil
}

// Recent returns the newest records, most recent first. A non-positive
// limit returns the default page of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+recordColumns+` FROM sync_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ForSubtitle returns every decision recorded for a subtitle path, most
// recent first.
func (s *Store) ForSubtitle(ctx context.Context, subtitlePath string) ([]Record, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+recordColumns+` FROM sync_history WHERE subtitle_path = ? ORDER BY id DESC`, subtitlePath)
	if err != nil {
		return nil, fmt.Errorf("query subtitle history: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// Clear removes all history records and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM sync_history`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (Record, error) {
	var (
		record    Record
		confident int
		accepted  int
		createdAt string
	)
	err := scanner.Scan(
		&record.ID,
		&record.RunID,
		&record.MediaPath,
		&record.SubtitlePath,
		&record.Model,
		&record.OffsetFrames,
		&record.OffsetSeconds,
		&record.BestLoss,
		&record.MeanLoss,
		&record.LossStdDev,
		&confident,
		&accepted,
		&createdAt,
	)
	if err != nil {
		return Record{}, err
	}
	record.Confident = confident != 0
	record.Accepted = accepted != 0
	if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		record.CreatedAt = ts
	}
	return record, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
