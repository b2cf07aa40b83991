package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/carecompass/backend/internal/application/services"
	"github.com/carecompass/backend/internal/catalog"
	"github.com/carecompass/backend/internal/domain/repositories"
	"github.com/carecompass/backend/internal/evaluation"
	"github.com/carecompass/backend/internal/infrastructure/observability"
)

type options struct {
	casesPath   string
	catalogPath string
	k           int
	verbose     bool
	gate        evaluation.QualityGate
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score the symptom matcher against golden cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.casesPath, "cases", "config/golden_cases.json", "golden case file")
	flags.StringVar(&opts.catalogPath, "catalog", "", "catalog JSON file (embedded catalog when empty)")
	flags.IntVar(&opts.k, "k", evaluation.DefaultK, "cutoff for recall and MRR")
	flags.BoolVar(&opts.verbose, "verbose", false, "include per-case results")
	flags.Float64Var(&opts.gate.MinRecall, "min-recall", 0, "fail when average recall is lower")
	flags.Float64Var(&opts.gate.MinMRR, "min-mrr", 0, "fail when average MRR is lower")
	flags.Float64Var(&opts.gate.MinSpecialtyAccuracy, "min-specialty", 0, "fail when specialty accuracy is lower")
	flags.IntVar(&opts.gate.MaxFailed, "max-failed", 0, "fail when more cases error")

	observability.InitLogger("carecompass-evaluate", "development")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()

	var source repositories.CatalogSource = catalog.NewEmbeddedSource()
	if opts.catalogPath != "" {
		source = catalog.NewFileSource(opts.catalogPath)
	}
	cat, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Running from the repository root or from backend/ both work
	casesPath := opts.casesPath
	if _, err := os.Stat(casesPath); err != nil {
		if _, altErr := os.Stat("backend/" + casesPath); altErr == nil {
			casesPath = "backend/" + casesPath
		}
	}

	cases, err := evaluation.LoadGoldenCases(casesPath)
	if err != nil {
		return err
	}
	if err := evaluation.ValidateGoldenCases(cases, cat.Symptoms.Keys()); err != nil {
		return err
	}

	summary, err := evaluation.NewRunner(services.NewSymptomMatcher(cat), opts.k).Run(ctx, cases)
	if err != nil {
		return err
	}
	if !opts.verbose {
		summary.Results = nil
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if violations := opts.gate.Check(summary); len(violations) > 0 {
		log.Error().Str("catalog_version", cat.Version).Strs("violations", violations).Msg("quality gate failed")
		return fmt.Errorf("quality gate: %s", strings.Join(violations, "; "))
	}
	return nil
}
