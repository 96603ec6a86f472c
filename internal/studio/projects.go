package studio

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"cascii/internal/dialog"
	"cascii/internal/faults"
	"cascii/internal/fileutil"
	"cascii/internal/logging"
	"cascii/internal/paths"
	"cascii/internal/store"
)

// CreateProject creates the project row and directory tree, then ingests
// the given source paths. It returns the project after the full ingestion.
func (e *Engine) CreateProject(ctx context.Context, name string, sourcePaths []string) (*store.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, faults.Wrap(faults.ErrInvalidInput, "studio", "create_project", "project name is empty", nil)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	project := &store.Project{
		ID:           id,
		Name:         name,
		Type:         projectTypeFor(sourcePaths),
		Path:         fileutil.Slug(name) + "_" + fileutil.First8(id),
		CreationDate: now,
		LastModified: now,
	}

	outputDir, err := e.outputDir()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureProjectTree(outputDir, project.Path); err != nil {
		return nil, faults.Wrap(faults.ErrIO, "studio", "create_project", "create project directories", err)
	}
	if err := e.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	e.logger.Info("project created",
		logging.String(logging.FieldProjectID, project.ID),
		logging.String("name", project.Name),
		logging.String(logging.FieldPath, project.Path),
	)

	if len(sourcePaths) > 0 {
		e.ingestFiles(ctx, project, sourcePaths)
		if err := e.refreshProjectTotals(ctx, project.ID); err != nil {
			return nil, err
		}
	}
	return e.store.GetProject(ctx, project.ID)
}

func projectTypeFor(sourcePaths []string) store.ProjectType {
	if len(sourcePaths) > 1 {
		return store.ProjectAnimation
	}
	for _, path := range sourcePaths {
		if classifySource(path) == store.SourceVideo {
			return store.ProjectAnimation
		}
	}
	return store.ProjectImage
}

// GetProject fetches one project.
func (e *Engine) GetProject(ctx context.Context, id string) (*store.Project, error) {
	return e.store.GetProject(ctx, id)
}

// AllProjects lists projects, most recently modified first.
func (e *Engine) AllProjects(ctx context.Context) ([]*store.Project, error) {
	return e.store.AllProjects(ctx)
}

// RenameProject updates the display name. The on-disk folder keeps its
// original slug so existing artifact paths stay valid.
func (e *Engine) RenameProject(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return faults.Wrap(faults.ErrInvalidInput, "studio", "rename_project", "project name is empty", nil)
	}
	return e.store.RenameProject(ctx, id, name)
}

// DeleteProject removes the project row (cascading to all dependents) and
// then best-effort removes the project directory.
func (e *Engine) DeleteProject(ctx context.Context, id string) error {
	project, err := e.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	root, err := e.projectRoot(project)
	if err != nil {
		return err
	}
	if err := e.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	if err := os.RemoveAll(root); err != nil {
		e.logger.Warn("project directory left behind",
			logging.String(logging.FieldProjectID, id),
			logging.String(logging.FieldPath, root),
			logging.Error(err),
		)
	}
	e.logger.Info("project deleted", logging.String(logging.FieldProjectID, id))
	return nil
}

// OpenProjectDirectory reveals the project folder in the file manager.
func (e *Engine) OpenProjectDirectory(ctx context.Context, id string) error {
	project, err := e.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	root, err := e.projectRoot(project)
	if err != nil {
		return err
	}
	if !pathExists(root) {
		return faults.Wrap(faults.ErrNotFound, "studio", "open_directory", "project directory does not exist", nil)
	}
	return dialog.OpenDirectory(ctx, root)
}

// OpenDirectory reveals an arbitrary path in the file manager.
func (e *Engine) OpenDirectory(ctx context.Context, path string) error {
	if !pathExists(path) {
		return faults.Wrap(faults.ErrNotFound, "studio", "open_directory", "directory does not exist", nil)
	}
	return dialog.OpenDirectory(ctx, path)
}
