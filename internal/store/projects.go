package store

import (
	"context"

	"cascii/internal/faults"
)

const projectColumns = "id, project_name, project_type, project_path, size, frames, creation_date, last_modified"

// CreateProject inserts a new project row.
func (s *Store) CreateProject(ctx context.Context, project *Project) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.Name,
		string(project.Type),
		project.Path,
		project.Size,
		project.Frames,
		formatTime(project.CreationDate),
		formatTime(project.LastModified),
	)
	if err != nil {
		return schemaErr("create project", err)
	}
	return nil
}

// GetProject fetches a project by id.
func (s *Store) GetProject(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if isNoRows(err) {
		return nil, faults.Wrap(faults.ErrNotFound, "store", "get project", "no project with id "+id, nil)
	}
	if err != nil {
		return nil, schemaErr("get project", err)
	}
	return project, nil
}

// AllProjects lists every project, most recently modified first.
func (s *Store) AllProjects(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY last_modified DESC`)
	if err != nil {
		return nil, schemaErr("list projects", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, schemaErr("scan project", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// UpdateProjectTotals refreshes a project's aggregate size and frame count,
// touching last_modified.
func (s *Store) UpdateProjectTotals(ctx context.Context, id string, size int64, frames int, now string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE projects SET size = ?, frames = ?, last_modified = ? WHERE id = ?`,
		size, frames, now, id,
	)
	if err != nil {
		return schemaErr("update project totals", err)
	}
	return nil
}

// RenameProject updates a project's display name. The folder name is
// derived at creation and never changes.
func (s *Store) RenameProject(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE projects SET project_name = ? WHERE id = ?`, name, id)
	if err != nil {
		return schemaErr("rename project", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return faults.Wrap(faults.ErrNotFound, "store", "rename project", "no project with id "+id, nil)
	}
	return nil
}

// SetProjectType updates a project's type classification.
func (s *Store) SetProjectType(ctx context.Context, id string, projectType ProjectType) error {
	_, err := s.db.ExecContext(ctx, `UPDATE projects SET project_type = ? WHERE id = ?`, string(projectType), id)
	if err != nil {
		return schemaErr("set project type", err)
	}
	return nil
}

// DeleteProject removes a project row; dependent rows go with it via the
// cascade constraints.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return schemaErr("delete project", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return faults.Wrap(faults.ErrNotFound, "store", "delete project", "no project with id "+id, nil)
	}
	return nil
}

func scanProject(scanner rowScanner) (*Project, error) {
	var (
		project     Project
		projectType string
		createdRaw  string
		modifiedRaw string
	)
	if err := scanner.Scan(
		&project.ID,
		&project.Name,
		&projectType,
		&project.Path,
		&project.Size,
		&project.Frames,
		&createdRaw,
		&modifiedRaw,
	); err != nil {
		return nil, err
	}
	project.Type = ParseProjectType(projectType)
	project.CreationDate = parseTimeString(createdRaw)
	project.LastModified = parseTimeString(modifiedRaw)
	return &project, nil
}
