package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-roadmap/internal/config"
	"github.com/jonathan/interview-roadmap/internal/logging"
	"github.com/jonathan/interview-roadmap/internal/observability"
	"github.com/jonathan/interview-roadmap/internal/pipeline"
	"github.com/jonathan/interview-roadmap/internal/pipeline/steps"
	"github.com/jonathan/interview-roadmap/internal/roadmap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an interview preparation roadmap",
	Long: `Generates a roadmap for one company and role: company research -> prompt -> model -> validation -> JSON artifact.

Company, role and job description are prompted for when not given as flags; the job description is read until EOF (Ctrl+D, or Ctrl+Z then Enter on Windows).

Configuration can be loaded from a YAML or JSON file using --config, and from ROADMAP_* environment variables. Command-line flags override both.`,
	RunE: runGenerate,
}

var (
	generateConfigPath  string
	generateCompany     string
	generateRole        string
	generateJD          string
	generateJDURL       string
	generateOutputDir   string
	generateModel       string
	generateAPIKey      string
	generateSearch      string
	generateSkipSearch  bool
	generateOffline     bool
	generateMetricsFile string
	generateVerbose     bool
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to a YAML or JSON config file (defaults to ROADMAP_CONFIG)")

	generateCmd.Flags().StringVarP(&generateCompany, "company", "c", "", "Company name (prompted if omitted)")
	generateCmd.Flags().StringVarP(&generateRole, "role", "r", "", "Job role (prompted if omitted)")
	generateCmd.Flags().StringVarP(&generateJD, "jd", "j", "", "Path to job description file: .txt, .md, .html, .pdf or .docx (mutually exclusive with --jd-url)")
	generateCmd.Flags().StringVar(&generateJDURL, "jd-url", "", "URL of the job posting (mutually exclusive with --jd)")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "", "Directory for the roadmap JSON file")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Gemini model name")
	generateCmd.Flags().StringVar(&generateSearch, "search", "", "Search provider: duckduckgo, duckduckgo-html, google or none")
	generateCmd.Flags().BoolVar(&generateSkipSearch, "skip-search", false, "Skip company research")
	generateCmd.Flags().BoolVar(&generateOffline, "offline", false, "Skip the model and write the standard roadmap")
	generateCmd.Flags().StringVar(&generateMetricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")

	generateCmd.MarkFlagsMutuallyExclusive("jd", "jd-url")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintln(out, "Job Preparation Roadmap Generator")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	company := strings.TrimSpace(generateCompany)
	if company == "" {
		company, err = promptRequired(in, out, "Enter company name: ", "Company name is required. Please enter a company name.")
		if err != nil {
			return err
		}
	}
	role := strings.TrimSpace(generateRole)
	if role == "" {
		role, err = promptRequired(in, out, "Enter job role: ", "Job role is required. Please enter a job role.")
		if err != nil {
			return err
		}
	}

	var jdText string
	if generateJD == "" && generateJDURL == "" {
		jdText, err = readJobDescription(in, out)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\nGenerating roadmap for %s at %s...\n", role, company)

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Company:        company,
		Role:           role,
		JobDescription: jdText,
		JobPath:        generateJD,
		JobURL:         generateJDURL,
		Config:         cfg,
		Logger:         logger,
		Verbose:        generateVerbose,
		Out:            out,
		OnProgress:     progressPrinter(out),
	})
	if err != nil {
		var inputErr *pipeline.InputError
		if errors.As(err, &inputErr) {
			return err
		}
		return fmt.Errorf("roadmap generation failed: %w", err)
	}

	printer := observability.NewPrinter(out)
	printer.PrintRoadmap(&result.Roadmap, observability.RoadmapSummary{
		Path:            result.Path,
		Fallback:        result.Fallback(),
		Reason:          roadmap.ReasonLabel(result.Reason),
		ResearchMissing: !result.SearchAvailable,
	})
	if generateVerbose {
		printer.PrintWarnings(result.Warnings)
	}

	fmt.Fprintf(out, "\nComplete! Roadmap saved to: %s\n", result.Path)
	return nil
}

// loadGenerateConfig layers config file and environment, then applies flags
// that were set explicitly.
func loadGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(generateConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = generateOutputDir
	}
	if flags.Changed("model") {
		cfg.LLMModel = generateModel
	}
	if flags.Changed("api-key") {
		cfg.GeminiAPIKey = generateAPIKey
	}
	if flags.Changed("search") {
		cfg.SearchProvider = generateSearch
	}
	if generateSkipSearch {
		cfg.SearchProvider = config.SearchNone
	}
	if generateOffline {
		cfg.Offline = true
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsTextfile = generateMetricsFile
	}
	if generateVerbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// progressPrinter numbers pipeline events by their position in the run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func progressPrinter(out io.Writer) pipeline.ProgressCallback {
	order := steps.Order()
	position := make(map[string]int, len(order))
	for i, step := range order {
		position[step] = i + 1
	}
	return func(e pipeline.ProgressEvent) {
		fmt.Fprintf(out, "Step %d/%d: %s\n", position[e.Step], len(order), e.Message)
	}
}

// promptRequired asks until a non-blank line is entered.
func promptRequired(in *bufio.Reader, out io.Writer, prompt, retry string) (string, error) {
	for {
		fmt.Fprint(out, prompt)
		line, err := in.ReadString('\n')
		if value := strings.TrimSpace(line); value != "" {
			return value, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("input closed before a value was entered")
			}
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Fprintln(out, retry)
	}
}

// readJobDescription reads the pasted job description until EOF.
func readJobDescription(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "\nPlease paste the job description:")
	fmt.Fprintln(out, "(Press Ctrl+D when finished, or Ctrl+Z then Enter on Windows)")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", &pipeline.InputError{Field: "job description", Message: "job description cannot be empty"}
	}
	return text, nil
}
