package main

import (
	"context"
	"time"

	"github.com/samber/do"
	"github.com/taskmgr-io/taskmgr/internal/bootstrap"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
	"github.com/taskmgr-io/taskmgr/internal/pkg/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Development seed: wipes users, projects and tasks, then loads a small
// fixture set. Never run against production data.
func main() {
	inj := bootstrap.BuildContainer()

	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)
	hasher := do.MustInvoke[*auth.PasswordHasher](inj)

	ctx := context.Background()
	sug := log.Sugar()

	sug.Info("clearing existing data")
	for _, m := range []interface{}{
		&model.Notification{}, &model.History{}, &model.Comment{},
		&model.Task{}, &model.Project{}, &model.User{},
	} {
		if err := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			sug.Fatalw("clear table failed", "err", err)
		}
	}

	users := repo.NewUserRepo(db)
	projects := repo.NewProjectRepo(db)
	tasks := repo.NewTaskRepo(db)

	sug.Info("creating users")
	seedUsers := []struct {
		username, password string
		role               model.Role
	}{
		{"admin", "admin123", model.RoleAdmin},
		{"user1", "user123", model.RoleUser},
		{"user2", "user123", model.RoleUser},
	}
	created := make([]*model.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := hasher.Hash(su.password)
		if err != nil {
			sug.Fatalw("hash password failed", "err", err)
		}
		u := &model.User{Username: su.username, Password: hash, Role: su.role}
		if err := users.Create(ctx, u); err != nil {
			sug.Fatalw("create user failed", "username", su.username, "err", err)
		}
		created = append(created, u)
	}

	sug.Info("creating projects")
	seedProjects := []*model.Project{
		{Name: "Proyecto Demo", Description: "Proyecto de demostración inicial"},
		{Name: "Proyecto Alpha", Description: "Proyecto importante de alta prioridad"},
		{Name: "Proyecto Beta", Description: "Proyecto secundario en desarrollo"},
	}
	for _, p := range seedProjects {
		if err := projects.Create(ctx, p); err != nil {
			sug.Fatalw("create project failed", "name", p.Name, "err", err)
		}
	}

	sug.Info("creating tasks")
	dueInAWeek := time.Now().Add(7 * 24 * time.Hour)
	seedTasks := []*model.Task{
		{
			Title:          "Configurar entorno de desarrollo",
			Description:    "Instalar y configurar todas las herramientas necesarias",
			Status:         model.StatusCompletada,
			Priority:       model.PriorityAlta,
			ProjectID:      &seedProjects[0].ID,
			AssignedTo:     &created[1].ID,
			CreatedBy:      created[0].ID,
			EstimatedHours: 4,
			ActualHours:    3.5,
		},
		{
			Title:          "Diseñar base de datos",
			Description:    "Crear el esquema de la base de datos",
			Status:         model.StatusCompletada,
			Priority:       model.PriorityAlta,
			ProjectID:      &seedProjects[0].ID,
			AssignedTo:     &created[1].ID,
			CreatedBy:      created[0].ID,
			EstimatedHours: 6,
			ActualHours:    5,
		},
		{
			Title:          "Implementar autenticación",
			Description:    "Sistema de login con JWT",
			Status:         model.StatusEnProgreso,
			Priority:       model.PriorityCritica,
			ProjectID:      &seedProjects[1].ID,
			AssignedTo:     &created[2].ID,
			CreatedBy:      created[0].ID,
			DueDate:        &dueInAWeek,
			EstimatedHours: 8,
		},
		{
			Title:          "Crear componentes de interfaz",
			Description:    "Desarrollar componentes reutilizables",
			Status:         model.StatusPendiente,
			Priority:       model.PriorityMedia,
			ProjectID:      &seedProjects[1].ID,
			AssignedTo:     &created[1].ID,
			CreatedBy:      created[0].ID,
			EstimatedHours: 12,
		},
		{
			Title:          "Documentar API",
			Description:    "Crear documentación completa de endpoints",
			Status:         model.StatusPendiente,
			Priority:       model.PriorityBaja,
			ProjectID:      &seedProjects[2].ID,
			CreatedBy:      created[0].ID,
			EstimatedHours: 4,
		},
	}
	for _, t := range seedTasks {
		if err := tasks.Create(ctx, t); err != nil {
			sug.Fatalw("create task failed", "title", t.Title, "err", err)
		}
	}

	sug.Infow("seed completed",
		"users", len(created), "projects", len(seedProjects), "tasks", len(seedTasks))
	sug.Info("credentials: admin/admin123, user1/user123, user2/user123")
}
