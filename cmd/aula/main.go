package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/aula/internal/catalog"
	"github.com/alexanderramin/aula/internal/cli"
	"github.com/alexanderramin/aula/internal/cli/formatter"
	"github.com/alexanderramin/aula/internal/config"
	"github.com/alexanderramin/aula/internal/db"
	"github.com/alexanderramin/aula/internal/logging"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/alexanderramin/aula/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}
}

func run() error {
	// AULA_CONFIG names an explicit config file; otherwise aula.yaml is
	// searched in the working directory and ~/.aula.
	cfg, err := config.Load(os.Getenv("AULA_CONFIG"), ".env")
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	idx, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database ready", zap.String("path", cfg.DB.Path))

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	termRepo := repository.NewSQLiteTermRepo(database)
	groupRepo := repository.NewSQLiteGroupRepo(database)
	loadRepo := repository.NewSQLiteAcademicLoadRepo(database)
	headerRepo := repository.NewSQLiteProgressHeaderRepo(database)
	lineRepo := repository.NewSQLiteProgressLineRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	observer := service.NewLogUseCaseObserver(logger)
	bounds := service.TermBounds{MinDays: cfg.Term.MinDays, MaxDays: cfg.Term.MaxDays}

	users := service.NewUserService(userRepo, observer)
	terms := service.NewTermService(termRepo, bounds, observer)
	groups := service.NewGroupService(groupRepo, terms, idx, uow, observer)
	loads := service.NewAcademicLoadService(loadRepo, groups, terms, users, idx, uow, observer)
	progress := service.NewProgressService(headerRepo, lineRepo, loads, idx, observer)

	app := &cli.App{
		Terms:    terms,
		Groups:   groups,
		Loads:    loads,
		Progress: progress,
		Users:    users,
		Catalog:  idx,
	}

	// Prompts only make sense on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

func loadCatalog(path string) (*catalog.Index, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
