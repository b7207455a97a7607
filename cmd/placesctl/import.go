package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	_ "github.com/lib/pq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mlegeay/examslots/internal/config"
	archiveRepo "github.com/mlegeay/examslots/internal/infra/storage/archive"
	candidatRepo "github.com/mlegeay/examslots/internal/infra/storage/candidat"
	centreRepo "github.com/mlegeay/examslots/internal/infra/storage/centre"
	inspecteurRepo "github.com/mlegeay/examslots/internal/infra/storage/inspecteur"
	placeRepo "github.com/mlegeay/examslots/internal/infra/storage/place"
	"github.com/mlegeay/examslots/internal/integrations/mailgateway"
	"github.com/mlegeay/examslots/internal/service/reservations"
	importPlaces "github.com/mlegeay/examslots/internal/usecase/import_places"
	"github.com/mlegeay/examslots/pkg/logger"
	"github.com/mlegeay/examslots/pkg/simpletxmanager"
)

func newImportCmd() *cobra.Command {
	var (
		file        string
		departement string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Импорт мест экзаменов из CSV (Date;Heure;Matricule;Centre;Departement)",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runImport(configPath, file, departement)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "путь к CSV-файлу с местами")
	cmd.Flags().StringVar(&departement, "departement", "", "целевой департамент импорта")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("departement")

	return cmd
}

func runImport(configPath, file, departement string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	// Импорт использует тот же сервис бронирований, что и HTTP-сервер
	reservationSvc := reservations.NewService(
		placeRepo.NewRepository(db),
		candidatRepo.NewRepository(db),
		centreRepo.NewRepository(db),
		inspecteurRepo.NewRepository(db),
		archiveRepo.NewRepository(db),
		mailgateway.NewClient(cfg.MailGateway.URL, time.Duration(cfg.MailGateway.Timeout)*time.Second, nil, log),
		simpletxmanager.NewTransactionManager(db),
		log,
	)
	useCase := importPlaces.NewUseCase(reservationSvc, log)

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	result, err := useCase.Execute(context.Background(), &importPlaces.Request{
		Reader:      f,
		Departement: departement,
	})
	if err != nil {
		return err
	}

	renderReport(result)
	return nil
}

func renderReport(result *importPlaces.Response) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Ligne", "Matricule", "Centre", "Date", "Statut", "Détail"})

	for _, row := range result.Rows {
		date := ""
		if !row.Date.IsZero() {
			date = row.Date.Format("02/01/2006 15:04")
		}
		table.Append([]string{
			fmt.Sprintf("%d", row.Line),
			row.Matricule,
			row.NomCentre,
			date,
			string(row.Status),
			row.Message,
		})
	}
	table.Render()

	color.Green("créées: %d", result.Created)
	color.Yellow("doublons: %d", result.Duplicates)
	if result.Errors > 0 {
		color.Red("erreurs: %d", result.Errors)
	}
}
