package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
)

type ProjectService interface {
	Create(ctx context.Context, name, description string) (*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, name, description *string) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
}

type projectService struct {
	projects repo.ProjectRepo
}

func NewProjectService(projects repo.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, name, description string) (*model.Project, error) {
	project := &model.Project{Name: name, Description: description}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, name, description *string) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		project.Name = *name
	}
	if description != nil {
		project.Description = *description
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project only. Its tasks survive with projectId
// cleared by the schema; there is no cascade.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}
