package store

import (
	"context"
	"database/sql"

	"cascii/internal/faults"
)

const sourceColumns = "id, content_type, project_id, date_added, size, file_path, custom_name"

// AddSource inserts a new source file row.
func (s *Store) AddSource(ctx context.Context, source *SourceFile) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO source_content (`+sourceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		source.ID,
		string(source.ContentType),
		source.ProjectID,
		formatTime(source.DateAdded),
		source.Size,
		source.FilePath,
		nullableString(source.CustomName),
	)
	if err != nil {
		return schemaErr("add source", err)
	}
	return nil
}

// GetSource fetches a source file by id.
func (s *Store) GetSource(ctx context.Context, id string) (*SourceFile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sourceColumns+` FROM source_content WHERE id = ?`, id)
	source, err := scanSource(row)
	if isNoRows(err) {
		return nil, faults.Wrap(faults.ErrNotFound, "store", "get source", "no source file with id "+id, nil)
	}
	if err != nil {
		return nil, schemaErr("get source", err)
	}
	return source, nil
}

// SourcesOfProject lists a project's source files, oldest first.
func (s *Store) SourcesOfProject(ctx context.Context, projectID string) ([]*SourceFile, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+sourceColumns+` FROM source_content WHERE project_id = ? ORDER BY date_added ASC`,
		projectID,
	)
	if err != nil {
		return nil, schemaErr("list sources", err)
	}
	defer rows.Close()

	var sources []*SourceFile
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, schemaErr("scan source", err)
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// UpdateSourceCustomName sets or clears a source file's display name.
func (s *Store) UpdateSourceCustomName(ctx context.Context, id, customName string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE source_content SET custom_name = ? WHERE id = ?`,
		nullableString(customName), id,
	)
	if err != nil {
		return schemaErr("update source custom name", err)
	}
	return nil
}

// DeleteSource removes a source file row; dependent conversions, cuts and
// audio extractions cascade.
func (s *Store) DeleteSource(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM source_content WHERE id = ?`, id)
	if err != nil {
		return schemaErr("delete source", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return faults.Wrap(faults.ErrNotFound, "store", "delete source", "no source file with id "+id, nil)
	}
	return nil
}

func scanSource(scanner rowScanner) (*SourceFile, error) {
	var (
		source      SourceFile
		contentType string
		addedRaw    string
		customName  sql.NullString
	)
	if err := scanner.Scan(
		&source.ID,
		&contentType,
		&source.ProjectID,
		&addedRaw,
		&source.Size,
		&source.FilePath,
		&customName,
	); err != nil {
		return nil, err
	}
	source.ContentType = ParseSourceType(contentType)
	source.DateAdded = parseTimeString(addedRaw)
	source.CustomName = customName.String
	return &source, nil
}
