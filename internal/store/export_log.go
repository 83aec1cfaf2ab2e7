package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nexus/internal/model"
)

// CreateExportLog 写入一条导出记录；ID、CreatedAt 为空时自动填充
func (s *Store) CreateExportLog(ctx context.Context, log *model.ExportLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO export_logs (id, format, filename, category, start_date, end_date, rows, size_bytes, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.Format, log.Filename, log.Category, log.StartDate, log.EndDate,
		log.Rows, log.SizeBytes, log.RequestID, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create export log: %w", err)
	}
	return nil
}

// ListExportLogs 按时间倒序返回最近 limit 条导出记录
func (s *Store) ListExportLogs(ctx context.Context, limit int) ([]model.ExportLog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, format, filename, category, start_date, end_date, rows, size_bytes, request_id, created_at
		FROM export_logs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query export logs failed: %w", err)
	}
	defer rows.Close()

	out := []model.ExportLog{}
	for rows.Next() {
		var it model.ExportLog
		if err := rows.Scan(&it.ID, &it.Format, &it.Filename, &it.Category, &it.StartDate, &it.EndDate,
			&it.Rows, &it.SizeBytes, &it.RequestID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan export log failed: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export logs failed: %w", err)
	}
	return out, nil
}

// CountExportLogs 导出记录总数
func (s *Store) CountExportLogs(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM export_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count export logs failed: %w", err)
	}
	return n, nil
}
