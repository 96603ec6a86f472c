package store

import (
	"context"
	"database/sql"

	"cascii/internal/faults"
)

const audioColumns = "id, source_file_id, project_id, folder_name, folder_path, creation_date, size, audio_track_beginning, audio_track_end, custom_name"

// AddAudioExtraction inserts a new audio extraction row.
func (s *Store) AddAudioExtraction(ctx context.Context, extraction *AudioExtraction) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO audio_extractions (`+audioColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		extraction.ID,
		extraction.SourceFileID,
		extraction.ProjectID,
		extraction.FolderName,
		extraction.FolderPath,
		formatTime(extraction.CreationDate),
		extraction.Size,
		extraction.AudioTrackBeginning,
		extraction.AudioTrackEnd,
		nullableString(extraction.CustomName),
	)
	if err != nil {
		return schemaErr("add audio extraction", err)
	}
	return nil
}

// GetAudioExtraction fetches an audio extraction by id.
func (s *Store) GetAudioExtraction(ctx context.Context, id string) (*AudioExtraction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+audioColumns+` FROM audio_extractions WHERE id = ?`, id)
	extraction, err := scanAudioExtraction(row)
	if isNoRows(err) {
		return nil, faults.Wrap(faults.ErrNotFound, "store", "get audio extraction", "no extraction with id "+id, nil)
	}
	if err != nil {
		return nil, schemaErr("get audio extraction", err)
	}
	return extraction, nil
}

// AudioExtractionsOfProject lists a project's audio extractions, newest first.
func (s *Store) AudioExtractionsOfProject(ctx context.Context, projectID string) ([]*AudioExtraction, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+audioColumns+` FROM audio_extractions WHERE project_id = ? ORDER BY creation_date DESC`,
		projectID,
	)
	if err != nil {
		return nil, schemaErr("list audio extractions", err)
	}
	defer rows.Close()

	var extractions []*AudioExtraction
	for rows.Next() {
		extraction, err := scanAudioExtraction(rows)
		if err != nil {
			return nil, schemaErr("scan audio extraction", err)
		}
		extractions = append(extractions, extraction)
	}
	return extractions, rows.Err()
}

// DeleteAudioExtraction removes an audio extraction row.
func (s *Store) DeleteAudioExtraction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audio_extractions WHERE id = ?`, id)
	if err != nil {
		return schemaErr("delete audio extraction", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return faults.Wrap(faults.ErrNotFound, "store", "delete audio extraction", "no extraction with id "+id, nil)
	}
	return nil
}

func scanAudioExtraction(scanner rowScanner) (*AudioExtraction, error) {
	var (
		extraction AudioExtraction
		createdRaw string
		customName sql.NullString
	)
	if err := scanner.Scan(
		&extraction.ID,
		&extraction.SourceFileID,
		&extraction.ProjectID,
		&extraction.FolderName,
		&extraction.FolderPath,
		&createdRaw,
		&extraction.Size,
		&extraction.AudioTrackBeginning,
		&extraction.AudioTrackEnd,
		&customName,
	); err != nil {
		return nil, err
	}
	extraction.CreationDate = parseTimeString(createdRaw)
	extraction.CustomName = customName.String
	return &extraction, nil
}
