package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nulzo/project-tracker-api/internal/cli"
	"github.com/nulzo/project-tracker-api/internal/config"
	"github.com/nulzo/project-tracker-api/internal/platform/logger"
	"github.com/nulzo/project-tracker-api/internal/store/model"
	"github.com/nulzo/project-tracker-api/internal/store/sqlstore"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fail(err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Color,
	})
	defer logger.Sync()

	logger.Debug("Opening store", zap.String("driver", cfg.Store.Driver))
	repo, err := sqlstore.Open(cfg.Store, logger.Get())
	if err != nil {
		fail(err)
	}
	defer repo.Close()

	ctx := context.Background()

	client, err := repo.Clients().Create(ctx, model.ClientFields{
		Name:  "Acme Corporation",
		Email: "projects@acme.example",
		Phone: "+1 555 0100",
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s Created client %s (id %d)\n", cli.CheckMark(), cli.Bold(client.Name), client.ID)

	status := "active"
	start := model.NewDate(2025, time.January, 6)
	due := model.NewDate(2025, time.March, 31)
	project, err := repo.Projects().Create(ctx, model.ProjectFields{
		ClientID:    client.ID,
		Name:        "Website Relaunch",
		Description: "New marketing site and CMS migration",
		Status:      &status,
		StartDate:   &start,
		DueDate:     &due,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s Created project %s (id %d)\n", cli.CheckMark(), cli.Bold(project.Name), project.ID)

	inProgress := model.TaskStatusInProgress
	high := "high"
	deadline := model.NewDate(2025, time.February, 14)
	task, err := repo.Tasks().Create(ctx, model.TaskFields{
		ProjectID:   project.ID,
		Title:       "Homepage wireframes",
		Description: "Low fidelity layouts for review",
		Status:      &inProgress,
		Priority:    &high,
		Deadline:    &deadline,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s Created task %s (id %d)\n", cli.CheckMark(), cli.Bold(task.Title), task.ID)

	fmt.Printf("\n%s Seeded %s\n", cli.Arrow(), cfg.Store.Driver)
	cli.PrettyPrint(task)
}

func fail(err error) {
	logger.Fatal(cli.CrossMark()+" Seeding failed", zap.Error(err))
}
