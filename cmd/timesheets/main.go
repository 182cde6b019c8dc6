package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/timesheets/internal/cli"
	"github.com/alexanderramin/timesheets/internal/config"
	"github.com/alexanderramin/timesheets/internal/db"
	"github.com/alexanderramin/timesheets/internal/repository"
	"github.com/alexanderramin/timesheets/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Defaults, then config file, then TIMESHEETS_* environment
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	rules, err := cfg.EngineRules()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	timesheetRepo := repository.NewSQLiteTimesheetRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Wire services
	timesheetSvc, err := service.NewTimesheetService(employeeRepo, projectRepo, assignmentRepo, timesheetRepo, uow, rules, observer)
	if err != nil {
		return err
	}
	importSvc := service.NewImportService(uow, observer)

	app := &cli.App{
		Calendar:    service.NewCalendarService(rules.Workdays, observer),
		Assignments: service.NewAssignmentService(employeeRepo, assignmentRepo, observer),
		Timesheets:  timesheetSvc,
		Directory:   service.NewDirectoryService(employeeRepo, projectRepo),
		Import:      importSvc,

		SubmitEntries:   timesheetSvc,
		ImportReference: importSvc,

		Rules:           rules,
		DefaultEmployee: cfg.DefaultEmployee,
		LookbackDays:    cfg.LookbackDays,
	}

	// Forms and the fill view only run on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
