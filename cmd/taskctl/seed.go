package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/config"
	"taskboard/database"
	"taskboard/logger"
	"taskboard/repository"
	"taskboard/services"
	"taskboard/utils"
	"taskboard/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import team members, projects and tasks from a fixture file",
	Long: `Seed opens the configured database, applies migrations and imports the
fixture through the service layer, so every API rule applies. Records that
already exist (same email, project name or task title) are kept as they are.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "fixtures.json", "fixture file to import")
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := readFixture(seedFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logging.Level, cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.Database, cfg.Logging.Level, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	report, err := newSeeder(repository.New(db, log), log).seed(cmd.Context(), f)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report)
	return nil
}

type seedReport struct {
	created, existing [3]int
}

func (r seedReport) String() string {
	return fmt.Sprintf("team members: %d created, %d existing\nprojects: %d created, %d existing\ntasks: %d created, %d existing",
		r.created[0], r.existing[0], r.created[1], r.existing[1], r.created[2], r.existing[2])
}

type seeder struct {
	store    *repository.Store
	members  *services.TeamMemberService
	projects *services.ProjectService
	tasks    *services.TaskService
	log      *zap.SugaredLogger
}

func newSeeder(store *repository.Store, log *zap.SugaredLogger) *seeder {
	return &seeder{
		store:    store,
		members:  services.NewTeamMemberService(store, log),
		projects: services.NewProjectService(store, store, log),
		tasks:    services.NewTaskService(store, store, store, log),
		log:      log.Named("seed"),
	}
}

func (s *seeder) seed(ctx context.Context, f *Fixture) (seedReport, error) {
	var report seedReport

	for i, in := range f.TeamMembers {
		fields, err := validation.TeamMember(in)
		if err != nil {
			return report, fmt.Errorf("teamMembers[%d]: %w", i, err)
		}
		_, err = s.members.Create(ctx, fields)
		switch {
		case services.KindOf(err) == services.KindConflict:
			report.existing[0]++
		case err != nil:
			return report, fmt.Errorf("teamMembers[%d]: %w", i, err)
		default:
			report.created[0]++
		}
	}

	for i, p := range f.Projects {
		ids, err := s.memberIDs(ctx, p.TeamMembers)
		if err != nil {
			return report, fmt.Errorf("projects[%d]: %w", i, err)
		}
		fields, err := validation.Project(validation.ProjectInput{Name: p.Name, Description: p.Description, TeamMembers: ids})
		if err != nil {
			return report, fmt.Errorf("projects[%d]: %w", i, err)
		}
		_, err = s.projects.Create(ctx, fields)
		switch {
		case services.KindOf(err) == services.KindConflict:
			report.existing[1]++
		case err != nil:
			return report, fmt.Errorf("projects[%d]: %w", i, err)
		default:
			report.created[1]++
		}
	}

	for i, t := range f.Tasks {
		project, err := s.store.ProjectByName(ctx, strings.TrimSpace(t.Project))
		if err != nil {
			return report, fmt.Errorf("tasks[%d]: project %q: %w", i, t.Project, err)
		}
		ids, err := s.memberIDs(ctx, t.AssignedMembers)
		if err != nil {
			return report, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		fields, err := validation.Task(validation.TaskInput{
			Title:           t.Title,
			Description:     t.Description,
			Deadline:        t.Deadline,
			Project:         project.ID.String(),
			AssignedMembers: ids,
			Status:          t.Status,
		})
		if err != nil {
			return report, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		_, err = s.tasks.Create(ctx, fields)
		switch {
		case services.KindOf(err) == services.KindConflict:
			report.existing[2]++
		case err != nil:
			return report, fmt.Errorf("tasks[%d]: %w", i, err)
		default:
			report.created[2]++
		}
	}

	s.log.Infow("seed finished",
		"members", report.created[0], "projects", report.created[1], "tasks", report.created[2])
	return report, nil
}

// memberIDs turns member emails into id strings.
func (s *seeder) memberIDs(ctx context.Context, emails []string) ([]string, error) {
	ids := make([]string, 0, len(emails))
	for _, email := range emails {
		m, err := s.store.TeamMemberByEmail(ctx, utils.NormalizeEmail(email))
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("unknown team member %q", email)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, m.ID.String())
	}
	return ids, nil
}

