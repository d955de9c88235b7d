package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
)

// ProjectReport counts the tasks referencing one project.
type ProjectReport struct {
	ProjectID   uuid.UUID `json:"projectId"`
	ProjectName string    `json:"projectName"`
	TaskCount   int       `json:"taskCount"`
}

// UserReport counts the tasks assigned to one user.
type UserReport struct {
	UserID        uuid.UUID `json:"userId"`
	Username      string    `json:"username"`
	AssignedTasks int       `json:"assignedTasks"`
}

type ReportService interface {
	TasksByStatus(ctx context.Context) (map[string]int, error)
	ByProject(ctx context.Context) ([]ProjectReport, error)
	ByUser(ctx context.Context) ([]UserReport, error)
	ExportCSV(ctx context.Context) (string, error)
}

type reportService struct {
	tasks    repo.TaskRepo
	projects repo.ProjectRepo
	users    repo.UserRepo
}

func NewReportService(tasks repo.TaskRepo, projects repo.ProjectRepo, users repo.UserRepo) ReportService {
	return &reportService{tasks: tasks, projects: projects, users: users}
}

func (s *reportService) TasksByStatus(ctx context.Context) (map[string]int, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, t := range tasks {
		status := t.Status
		if status == "" {
			status = model.StatusPendiente
		}
		counts[string(status)]++
	}
	return counts, nil
}

// ByProject scans all tasks once per project. Quadratic, acceptable at
// this system's scale.
func (s *reportService) ByProject(ctx context.Context) ([]ProjectReport, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]ProjectReport, 0, len(projects))
	for _, p := range projects {
		count := 0
		for _, t := range tasks {
			if t.ProjectID != nil && *t.ProjectID == p.ID {
				count++
			}
		}
		report = append(report, ProjectReport{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			TaskCount:   count,
		})
	}
	return report, nil
}

func (s *reportService) ByUser(ctx context.Context) ([]UserReport, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]UserReport, 0, len(users))
	for _, u := range users {
		count := 0
		for _, t := range tasks {
			if t.AssignedTo != nil && *t.AssignedTo == u.ID {
				count++
			}
		}
		report = append(report, UserReport{
			UserID:        u.ID,
			Username:      u.Username,
			AssignedTasks: count,
		})
	}
	return report, nil
}

// ExportCSV keeps the original export dialect: a fixed 7-column header,
// every field after the id wrapped in double quotes and nothing else
// escaped. Fields containing a double quote would break the row; that
// limitation is part of the format.
func (s *reportService) ExportCSV(ctx context.Context) (string, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("ID,Título,Estado,Prioridad,Proyecto,Asignado,Fecha Vencimiento\n")

	for _, t := range tasks {
		projectName := "Sin proyecto"
		if t.Project != nil {
			projectName = t.Project.Name
		}
		assignedName := "Sin asignar"
		if t.Assignee != nil {
			assignedName = t.Assignee.Username
		}
		dueDate := "Sin fecha"
		if t.DueDate != nil {
			dueDate = t.DueDate.Format("02/01/2006")
		}

		fmt.Fprintf(&b, "%s,\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\"\n",
			t.ID, t.Title, t.Status, t.Priority, projectName, assignedName, dueDate)
	}
	return b.String(), nil
}
