package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/woodshed/internal/collection"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/repositories"
	"github.com/desertthunder/woodshed/internal/services"
	"github.com/desertthunder/woodshed/internal/shared"
	"github.com/desertthunder/woodshed/internal/tasks"
	"github.com/desertthunder/woodshed/internal/ui"
	"github.com/urfave/cli/v3"
)

// practiceSession wires the in-memory collection to the activity journal for one run.
type practiceSession struct {
	db       *sql.DB
	sessions *repositories.SessionRepository
	activity *repositories.ActivityRepository
	session  *models.PracticeSession
	store    *collection.Store
	journal  *tasks.Journal
	detach   func()
	logger   *log.Logger
}

// openSession opens the database, runs migrations, starts a session and attaches the journal to a new store.
func openSession(config *shared.Config, logger *log.Logger) (*practiceSession, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, config.Database.Path, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	sessions := repositories.NewSessionRepository(db)
	session := models.NewPracticeSession()
	if err := sessions.Create(session); err != nil {
		db.Close()
		return nil, err
	}

	activity := repositories.NewActivityRepository(db)
	store := collection.New(collection.WithLogger(shared.WithLogger(logger, "component", "store")))
	journal := tasks.NewJournal(activity, session.ID(), shared.WithLogger(logger, "component", "journal"))

	return &practiceSession{
		db:       db,
		sessions: sessions,
		activity: activity,
		session:  session,
		store:    store,
		journal:  journal,
		detach:   journal.Attach(store),
		logger:   logger,
	}, nil
}

// searcher queries catalog directly on every search.
func (p *practiceSession) searcher(catalog services.Catalog, timeout time.Duration) *tasks.Searcher {
	return tasks.NewSearcher(catalog, timeout, shared.WithLogger(p.logger, "component", "search"))
}

// Close ends the session and closes the database.
func (p *practiceSession) Close() error {
	p.detach()

	recorded, failed := p.journal.Counts()
	p.logger.Info("session ended", "session", p.session.ID(), "recorded", recorded, "failed", failed)

	if err := p.sessions.End(p.session.ID(), time.Now()); err != nil {
		p.logger.Warn("failed to end session", "error", err)
	}
	return p.db.Close()
}

// TUI launches the interactive practice tracker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config, err := r.configFor(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(config.Log.File, shared.FileLogOpts{
		MaxSizeMB:  config.Log.MaxSizeMB,
		MaxBackups: config.Log.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLevel(config.Log.Level))
	r.SetLogger(fileLogger)

	ps, err := openSession(config, fileLogger)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer ps.Close()

	model := ui.NewModel(ctx, ui.Deps{
		Store:    ps.store,
		Searcher: ps.searcher(r.catalogFor(config), config.Catalog.Timeout()),
		Activity: ps.activity,
		Exporter: tasks.NewExporter(),
		Config:   *config,
		Logger:   shared.WithLogger(fileLogger, "component", "ui"),
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
