package store

import (
	"context"
	"database/sql"

	"cascii/internal/faults"
)

const cutColumns = "id, project_id, source_file_id, file_path, size, start_seconds, end_seconds, duration, creation_date, custom_name"

// AddCut inserts a new video cut row.
func (s *Store) AddCut(ctx context.Context, cut *VideoCut) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO video_cuts (`+cutColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cut.ID,
		cut.ProjectID,
		cut.SourceFileID,
		cut.FilePath,
		cut.Size,
		cut.Start,
		cut.End,
		cut.Duration,
		formatTime(cut.CreationDate),
		nullableString(cut.CustomName),
	)
	if err != nil {
		return schemaErr("add cut", err)
	}
	return nil
}

// GetCut fetches a video cut by id.
func (s *Store) GetCut(ctx context.Context, id string) (*VideoCut, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+cutColumns+` FROM video_cuts WHERE id = ?`, id)
	cut, err := scanCut(row)
	if isNoRows(err) {
		return nil, faults.Wrap(faults.ErrNotFound, "store", "get cut", "no cut with id "+id, nil)
	}
	if err != nil {
		return nil, schemaErr("get cut", err)
	}
	return cut, nil
}

// CutsOfProject lists a project's video cuts, newest first.
func (s *Store) CutsOfProject(ctx context.Context, projectID string) ([]*VideoCut, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+cutColumns+` FROM video_cuts WHERE project_id = ? ORDER BY creation_date DESC`,
		projectID,
	)
	if err != nil {
		return nil, schemaErr("list cuts", err)
	}
	defer rows.Close()

	var cuts []*VideoCut
	for rows.Next() {
		cut, err := scanCut(rows)
		if err != nil {
			return nil, schemaErr("scan cut", err)
		}
		cuts = append(cuts, cut)
	}
	return cuts, rows.Err()
}

// UpdateCutCustomName sets or clears a cut's display name.
func (s *Store) UpdateCutCustomName(ctx context.Context, id, customName string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE video_cuts SET custom_name = ? WHERE id = ?`,
		nullableString(customName), id,
	)
	if err != nil {
		return schemaErr("update cut custom name", err)
	}
	return nil
}

// DeleteCut removes a video cut row.
func (s *Store) DeleteCut(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM video_cuts WHERE id = ?`, id)
	if err != nil {
		return schemaErr("delete cut", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return faults.Wrap(faults.ErrNotFound, "store", "delete cut", "no cut with id "+id, nil)
	}
	return nil
}

func scanCut(scanner rowScanner) (*VideoCut, error) {
	var (
		cut        VideoCut
		createdRaw string
		customName sql.NullString
	)
	if err := scanner.Scan(
		&cut.ID,
		&cut.ProjectID,
		&cut.SourceFileID,
		&cut.FilePath,
		&cut.Size,
		&cut.Start,
		&cut.End,
		&cut.Duration,
		&createdRaw,
		&customName,
	); err != nil {
		return nil, err
	}
	cut.CreationDate = parseTimeString(createdRaw)
	cut.CustomName = customName.String
	return &cut, nil
}
