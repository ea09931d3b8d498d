package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"portfolio-service/internal/config"
	"portfolio-service/internal/database/mongo"
	"portfolio-service/internal/event"
	"portfolio-service/internal/models"
	"portfolio-service/internal/repository"
	"portfolio-service/internal/seed"
	"portfolio-service/internal/service"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored portfolio profile",
		Long: "Wipes the profile collection and inserts a single profile, either the " +
			"built-in default or the one read from --file (.json, .yaml, .yml).",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := loadProfile(file)
			if err != nil {
				return err
			}
			if err := profile.Validate(); err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Profile %q with %d projects is valid, nothing written\n",
					profile.Name, len(profile.Projects))
				return nil
			}

			return run(cmd.Context(), config.Load(), profile, cmd)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "profile file to seed instead of the built-in one")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the profile without touching the database")

	return cmd
}

func loadProfile(file string) (*models.Profile, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.Load(file)
}

func run(ctx context.Context, cfg *config.Config, profile *models.Profile, cmd *cobra.Command) error {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoDB.Timeout)
	client, err := mongo.Connect(connectCtx, cfg.MongoDB)
	cancel()
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if !client.IsConnected(ctx) {
		return fmt.Errorf("MongoDB at %s is unreachable", cfg.MongoDB.URI)
	}

	publisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
		publisher, _ = event.NewEventPublisher("", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	repo := repository.NewProfileRepository(client.Database(), cfg.MongoDB.Collection)
	svc := service.NewProfileService(repo, publisher)

	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	existing, err := repo.Count(seedCtx)
	if err != nil {
		return err
	}

	seeded, err := svc.SeedProfile(seedCtx, profile)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Data imported: replaced %d document(s) with profile %s (%s)\n",
		existing, seeded.ID.Hex(), seeded.Name)
	return nil
}
