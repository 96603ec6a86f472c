package store

import (
	"context"
	"database/sql"

	"cascii/internal/faults"
)

const conversionColumns = "id, folder_name, folder_path, frame_count, source_file_id, project_id, luminance, font_ratio, columns, fps, frame_speed, color, creation_date, total_size, custom_name"

// AddConversion inserts a new ASCII conversion row with its embedded
// settings record.
func (s *Store) AddConversion(ctx context.Context, conversion *Conversion) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO ascii_conversions (`+conversionColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		conversion.ID,
		conversion.FolderName,
		conversion.FolderPath,
		conversion.FrameCount,
		conversion.SourceFileID,
		conversion.ProjectID,
		conversion.Settings.Luminance,
		conversion.Settings.FontRatio,
		conversion.Settings.Columns,
		conversion.Settings.FPS,
		conversion.Settings.FrameSpeed,
		boolToInt(conversion.Settings.Color),
		formatTime(conversion.CreationDate),
		conversion.TotalSize,
		nullableString(conversion.CustomName),
	)
	if err != nil {
		return schemaErr("add conversion", err)
	}
	return nil
}

// GetConversion fetches a conversion by id.
func (s *Store) GetConversion(ctx context.Context, id string) (*Conversion, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+conversionColumns+` FROM ascii_conversions WHERE id = ?`, id)
	conversion, err := scanConversion(row)
	if isNoRows(err) {
		return nil, faults.Wrap(faults.ErrNotFound, "store", "get conversion", "no conversion with id "+id, nil)
	}
	if err != nil {
		return nil, schemaErr("get conversion", err)
	}
	return conversion, nil
}

// ConversionsOfProject lists a project's conversions, newest first.
func (s *Store) ConversionsOfProject(ctx context.Context, projectID string) ([]*Conversion, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+conversionColumns+` FROM ascii_conversions WHERE project_id = ? ORDER BY creation_date DESC`,
		projectID,
	)
	if err != nil {
		return nil, schemaErr("list conversions", err)
	}
	defer rows.Close()

	var conversions []*Conversion
	for rows.Next() {
		conversion, err := scanConversion(rows)
		if err != nil {
			return nil, schemaErr("scan conversion", err)
		}
		conversions = append(conversions, conversion)
	}
	return conversions, rows.Err()
}

// ConversionByFolderPath returns the conversion whose frames live at
// folderPath, or nil when none is registered.
func (s *Store) ConversionByFolderPath(ctx context.Context, folderPath string) (*Conversion, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+conversionColumns+` FROM ascii_conversions WHERE folder_path = ? LIMIT 1`,
		folderPath,
	)
	conversion, err := scanConversion(row)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, schemaErr("conversion by folder path", err)
	}
	return conversion, nil
}

// DeleteConversionByFolderPath removes the conversion registered at
// folderPath. Missing rows are not an error: the caller may be cleaning up
// an orphaned folder.
func (s *Store) DeleteConversionByFolderPath(ctx context.Context, folderPath string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ascii_conversions WHERE folder_path = ?`, folderPath); err != nil {
		return schemaErr("delete conversion by folder path", err)
	}
	return nil
}

// UpdateConversionCustomName sets or clears a conversion's display name.
func (s *Store) UpdateConversionCustomName(ctx context.Context, id, customName string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE ascii_conversions SET custom_name = ? WHERE id = ?`,
		nullableString(customName), id,
	)
	if err != nil {
		return schemaErr("update conversion custom name", err)
	}
	return nil
}

// UpdateConversionFrameSpeed updates the playback speed stored with a
// conversion.
func (s *Store) UpdateConversionFrameSpeed(ctx context.Context, id string, frameSpeed int) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE ascii_conversions SET frame_speed = ? WHERE id = ?`,
		frameSpeed, id,
	)
	if err != nil {
		return schemaErr("update conversion frame speed", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return faults.Wrap(faults.ErrNotFound, "store", "update conversion frame speed", "no conversion with id "+id, nil)
	}
	return nil
}

func scanConversion(scanner rowScanner) (*Conversion, error) {
	var (
		conversion Conversion
		color      int
		createdRaw string
		customName sql.NullString
	)
	if err := scanner.Scan(
		&conversion.ID,
		&conversion.FolderName,
		&conversion.FolderPath,
		&conversion.FrameCount,
		&conversion.SourceFileID,
		&conversion.ProjectID,
		&conversion.Settings.Luminance,
		&conversion.Settings.FontRatio,
		&conversion.Settings.Columns,
		&conversion.Settings.FPS,
		&conversion.Settings.FrameSpeed,
		&color,
		&createdRaw,
		&conversion.TotalSize,
		&customName,
	); err != nil {
		return nil, err
	}
	conversion.Settings.Color = color != 0
	conversion.CreationDate = parseTimeString(createdRaw)
	conversion.CustomName = customName.String
	return &conversion, nil
}
