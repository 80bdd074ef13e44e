// Command creative generates and evaluates short-form marketing content
// from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agmi-labs/creative-engine/internal/artifacts"
	"github.com/agmi-labs/creative-engine/internal/contextsource"
	"github.com/agmi-labs/creative-engine/internal/domain"
	"github.com/agmi-labs/creative-engine/internal/engine"
	"github.com/agmi-labs/creative-engine/internal/generation"
	"github.com/agmi-labs/creative-engine/internal/llm"
	"github.com/agmi-labs/creative-engine/internal/llm/providers"
)

var (
	flagModel    string
	flagAPIKey   string
	flagLogLevel string
	flagDir      string
)

func main() {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "creative",
		Short:         "Divergence-convergence content generation and creativity evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagModel, "model", "gpt-4o", "model name (gpt-*, o1-*, claude-*, gemini-*)")
	root.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "provider API key (defaults to the provider's env var)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagDir, "artifacts-dir", "artifacts", "directory for saved artifacts")

	root.AddCommand(newGenerateCmd(), newScoreCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(flagLogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveAPIKey falls back to the conventional env var of the provider the
// model name resolves to.
func resolveAPIKey(model string) string {
	if flagAPIKey != "" {
		return flagAPIKey
	}
	switch {
	case strings.HasPrefix(model, "claude-"):
		return os.Getenv("ANTHROPIC_API_KEY")
	case strings.HasPrefix(model, "gemini-"):
		return os.Getenv("GEMINI_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

func newLLMClient(ctx context.Context, logger *slog.Logger) (llm.Client, error) {
	return llm.NewClient(ctx, llm.Config{
		Model:    flagModel,
		Provider: providers.Config{APIKey: resolveAPIKey(flagModel)},
		Logger:   logger,
	})
}

func newGenerateCmd() *cobra.Command {
	var (
		url         string
		name        string
		description string
		audience    string
		painPoint   string
		benefit     string
		offer       string
		platform    string
		contentType string
		style       string
		creativity  float64
		threshold   float64
		evaluate    bool
		save        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate content from a product context or landing page URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger()

			client, err := newLLMClient(ctx, logger)
			if err != nil {
				return err
			}

			var pc domain.ProductContext
			if url != "" {
				extractor := contextsource.NewExtractor(client, nil)
				pc, err = extractor.Extract(ctx, url)
				if err != nil {
					return err
				}
				logger.Info("product context extracted", "url", url, "product", pc.Name)
			} else {
				pc = domain.ProductContext{
					Name:           name,
					Description:    description,
					TargetAudience: audience,
					PainPoint:      painPoint,
					KeyBenefit:     benefit,
					Offer:          offer,
					Platform:       platform,
				}
				if err := pc.Validate(); err != nil {
					return fmt.Errorf("product context: %w (provide --name or --url)", err)
				}
			}

			refs, err := generation.ReferenceExamples(style)
			if err != nil {
				return err
			}

			eng := engine.New(client, engine.Config{
				Store:  artifacts.NewFSStore(flagDir),
				Logger: logger,
			})

			result, err := eng.Generate(ctx, pc, domain.ContentType(contentType), refs, domain.CreativityConfig{
				CreativityLevel:  creativity,
				QualityThreshold: threshold,
			}, evaluate)
			if err != nil {
				return err
			}

			if save {
				genPath, evalPath, err := eng.SaveArtifacts(ctx, result)
				if err != nil {
					return err
				}
				logger.Info("artifacts saved", "generation", genPath, "evaluation", evalPath)
			}

			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "landing page URL to extract the product context from")
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&audience, "audience", "", "target audience")
	cmd.Flags().StringVar(&painPoint, "pain-point", "", "customer pain point")
	cmd.Flags().StringVar(&benefit, "benefit", "", "key benefit")
	cmd.Flags().StringVar(&offer, "offer", "", "call-to-action or promotion")
	cmd.Flags().StringVar(&platform, "platform", "", "distribution platform (default tiktok)")
	cmd.Flags().StringVar(&contentType, "content-type", string(domain.ContentTypeVideoScript), "content type to generate")
	cmd.Flags().StringVar(&style, "style", generation.StyleMixed, "reference example style (deadpan, sketch, mixed)")
	cmd.Flags().Float64Var(&creativity, "creativity", 0.5, "creativity level in [0,1]")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.7, "minimum judge score for selection in [0,1]")
	cmd.Flags().BoolVar(&evaluate, "evaluate", false, "run the creativity evaluation sweep on the result")
	cmd.Flags().BoolVar(&save, "save", false, "save artifacts to the artifacts directory")

	return cmd
}

func newScoreCmd() *cobra.Command {
	var (
		input     string
		name      string
		audience  string
		painPoint string
		benefit   string
		platform  string
		style     string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Evaluate the creativity of an already-drafted script",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger()

			raw, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			if !json.Valid(raw) {
				return fmt.Errorf("%s: not valid JSON", input)
			}

			pc := domain.ProductContext{
				Name:           name,
				TargetAudience: audience,
				PainPoint:      painPoint,
				KeyBenefit:     benefit,
				Platform:       platform,
			}
			if err := pc.Validate(); err != nil {
				return fmt.Errorf("product context: %w", err)
			}

			refs, err := generation.ReferenceExamples(style)
			if err != nil {
				return err
			}

			client, err := newLLMClient(ctx, logger)
			if err != nil {
				return err
			}
			eng := engine.New(client, engine.Config{Logger: logger})

			assessment, err := eng.Score(ctx, domain.DraftedContent{
				Type: domain.ContentTypeVideoScript,
				Raw:  raw,
			}, refs, pc)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), assessment)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "path to the script JSON to score")
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&audience, "audience", "", "target audience")
	cmd.Flags().StringVar(&painPoint, "pain-point", "", "customer pain point")
	cmd.Flags().StringVar(&benefit, "benefit", "", "key benefit")
	cmd.Flags().StringVar(&platform, "platform", "", "distribution platform (default tiktok)")
	cmd.Flags().StringVar(&style, "style", "", "calibration reference style (deadpan, sketch, mixed)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
