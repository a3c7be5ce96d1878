package main

import (
	"context"
	"database/sql"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/drivers/database"
	"mindscreen-service/internal/app/drivers/logger"
	"mindscreen-service/internal/app/services/core/questionnaires"
	questionnaireResponses "mindscreen-service/internal/app/services/core/questionnaire_responses"
	"mindscreen-service/internal/app/services/core/seeding"
	"mindscreen-service/internal/migration"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	driverConfig   *config.DriverConfig
	internalConfig *config.InternalConfig
	zapLogger      *zap.Logger
	log            *logrus.Logger
}

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	a := &app{
		driverConfig:   driverConfig,
		internalConfig: internalConfig,
		zapLogger:      logger.NewZapLogger(driverConfig, internalConfig),
		log:            logger.NewLogrusLogger(internalConfig.App.Env),
	}

	rootCmd := &cobra.Command{
		Use:   "migration",
		Short: "Database operations for the mindscreen service",
	}
	rootCmd.AddCommand(a.upCmd())
	rootCmd.AddCommand(a.downCmd())
	rootCmd.AddCommand(a.statusCmd())
	rootCmd.AddCommand(a.seedCmd())

	if err := rootCmd.Execute(); err != nil {
		a.log.WithError(err).Fatal("Command failed")
	}
}

func (a *app) withDB(fn func(db *sql.DB) error) error {
	db := database.NewPostgresDB(a.driverConfig, a.zapLogger)
	defer db.Close()
	return fn(db)
}

func (a *app) upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(db *sql.DB) error {
				n, err := migration.Up(db)
				if err != nil {
					return err
				}
				a.log.Infof("Applied %d migrations!", n)
				return nil
			})
		},
	}
}

func (a *app) downCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return a.withDB(func(db *sql.DB) error {
				n, err := migration.Down(db, steps)
				if err != nil {
					return err
				}
				a.log.Infof("Rolled back %d migrations!", n)
				return nil
			})
		},
	}
	cmd.Flags().Int("steps", 1, "Number of migrations to roll back, 0 for all")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(db *sql.DB) error {
				statuses, err := migration.List(db)
				if err != nil {
					return err
				}
				for _, status := range statuses {
					entry := a.log.WithField("migration", status.ID)
					if status.Applied {
						entry.WithField("applied_at", status.AppliedAt).Info("applied")
						continue
					}
					entry.Info("pending")
				}
				return nil
			})
		},
	}
}

func (a *app) seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the PHQ-9 and GAD-7 presets with optional mock responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			responses, _ := cmd.Flags().GetInt("responses")
			organizationID, _ := cmd.Flags().GetString("organization-id")
			seed, _ := cmd.Flags().GetInt64("seed")
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			return a.withDB(func(db *sql.DB) error {
				questionnaireRepository := questionnaires.NewQuestionnairePostgresRepository(db, a.zapLogger)
				questionRepository := questionnaires.NewQuestionPostgresRepository(db, a.zapLogger)
				responseRepository := questionnaireResponses.NewResponsePostgresRepository(db, a.zapLogger)
				questionnaireUsecase := questionnaires.NewQuestionnaireUsecase(
					questionnaireRepository,
					questionRepository,
					responseRepository,
					a.internalConfig,
					a.zapLogger,
				)

				seeder := seeding.NewSeeder(
					questionnaireUsecase,
					questionnaireRepository,
					questionRepository,
					responseRepository,
					a.log,
					seed,
				)
				results, err := seeder.Seed(context.Background(), organizationID, responses)
				if err != nil {
					return err
				}
				for _, result := range results {
					a.log.WithFields(logrus.Fields{
						"preset_key":       result.PresetKey,
						"questionnaire_id": result.QuestionnaireID,
						"responses":        result.Responses,
						"scored":           result.Scored,
						"flagged":          result.Flagged,
					}).Info("Seed finished")
				}
				return nil
			})
		},
	}
	cmd.Flags().Int("responses", 0, "Mock responses to generate per questionnaire")
	cmd.Flags().String("organization-id", "", "Organization owning the seeded questionnaires")
	cmd.Flags().Int64("seed", 0, "Random seed for mock answers, 0 for time based")
	return cmd
}
