package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/esports-hub/internal/app"
	"github.com/riskibarqy/esports-hub/internal/config"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/account/policy"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/usecase"
	"github.com/spf13/cobra"
)

func rootCmd(logger *logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "contentctl",
		Short:         "Maintenance tasks for esports hub content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(normalizeCmd(logger), seedCmd(logger), issueTokenCmd(logger))
	return cmd
}

func normalizeCmd(logger *logging.Logger) *cobra.Command {
	var (
		asJSON  bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "normalize [resource...]",
		Short: "Rewrite stored documents in their current shape",
		Long: `Loads every named resource (all of them when none are named) through the
upgrade chain and writes the result back, so legacy fields disappear from storage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.NormalizeWorkers = workers
			}
			cfg.SeedOnStart = false

			storage, err := app.OpenStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			result, err := app.NewMaintenanceService(storage.Backend, cfg.NormalizeWorkers, logger).Normalize(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := printNormalizeResult(cmd.OutOrStdout(), result, asJSON); err != nil {
				return err
			}
			if result.FailedCount > 0 {
				return fmt.Errorf("%d resource(s) failed to normalize", result.FailedCount)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (default NORMALIZE_WORKERS)")
	return cmd
}

func printNormalizeResult(w io.Writer, result usecase.NormalizeResult, asJSON bool) error {
	if asJSON {
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RESOURCE\tSTATUS\tRECORDS\tDURATION\tMESSAGE")
	for _, row := range result.Resources {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%dms\t%s\n", row.Resource, row.Status, row.Records, row.DurationMs, row.Message)
	}
	fmt.Fprintf(tw, "\nsucceeded: %d, failed: %d\n", result.SuccessCount, result.FailedCount)
	return tw.Flush()
}

func seedCmd(logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill empty resources with the demo dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.SeedOnStart = false

			storage, err := app.OpenStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			seeded, err := memory.Seed(cmd.Context(), storage.Backend)
			if err != nil {
				return err
			}
			if len(seeded) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing seeded: every resource already has content")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded: %s\n", strings.Join(seeded, ", "))
			return nil
		},
	}
}

func issueTokenCmd(logger *logging.Logger) *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Print a signed admin session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.SessionSecret) == "" {
				return fmt.Errorf("SESSION_SECRET is required to issue tokens")
			}

			admins, err := policy.NewStore(cfg.AdminEmails, cfg.AdminPolicyFile, logger)
			if err != nil {
				return fmt.Errorf("load admin policy: %w", err)
			}
			role, ok := admins.Role(email)
			if !ok {
				return fmt.Errorf("%s is not on the admin allow-list", email)
			}

			sessions, err := app.NewSessionManager(cfg)
			if err != nil {
				return err
			}
			token, err := sessions.Issue(email, ttl)
			if err != nil {
				return err
			}
			logger.Info("admin token issued", "email", email, "role", role, "ttl", ttl.String())
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email the token is issued for")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default SESSION_TTL)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
