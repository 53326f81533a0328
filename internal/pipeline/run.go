// Package pipeline provides the high-level orchestration for roadmap generation:
// research the company, ask the model, assemble a valid roadmap and write it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interview-roadmap/internal/artifact"
	"github.com/jonathan/interview-roadmap/internal/config"
	"github.com/jonathan/interview-roadmap/internal/fetch"
	"github.com/jonathan/interview-roadmap/internal/ingestion"
	"github.com/jonathan/interview-roadmap/internal/llm"
	"github.com/jonathan/interview-roadmap/internal/logging"
	"github.com/jonathan/interview-roadmap/internal/metrics"
	"github.com/jonathan/interview-roadmap/internal/observability"
	"github.com/jonathan/interview-roadmap/internal/pipeline/steps"
	"github.com/jonathan/interview-roadmap/internal/prompts"
	"github.com/jonathan/interview-roadmap/internal/roadmap"
	"github.com/jonathan/interview-roadmap/internal/search"
	"github.com/jonathan/interview-roadmap/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline. Exactly one of
// JobDescription, JobPath or JobURL supplies the job description.
type RunOptions struct {
	Company        string
	Role           string
	JobDescription string
	JobPath        string
	JobURL         string

	Config *config.Config // defaults when nil

	// Collaborators; built from Config when nil.
	Model    llm.Client
	Searcher search.Searcher
	Metrics  *metrics.Recorder

	Logger     *slog.Logger
	Clock      func() time.Time
	Verbose    bool
	Out        io.Writer // verbose research output; nothing is printed when nil
	OnProgress ProgressCallback
}

// Result is the outcome of a run that wrote its artifact.
type Result struct {
	RunID       string
	Path        string
	Roadmap     types.Roadmap
	Source      roadmap.Source
	Reason      error // why the fallback was used
	Warnings    []roadmap.Warning
	CompanyInfo string
	KeySkills   []string
	Steps       []steps.StepResult
	// SearchAvailable is false when the prompt carried the standard
	// interview process instead of company research.
	SearchAvailable bool
}

// Fallback reports whether the standard template was written.
func (r *Result) Fallback() bool {
	return r.Source == roadmap.SourceFallback
}

// run carries the per-run state shared by the steps.
type run struct {
	opts    RunOptions
	cfg     *config.Config
	id      string
	logger  *slog.Logger
	tracker *steps.Tracker
	metrics *metrics.Recorder
	now     func() time.Time
}

// Run executes one roadmap generation. Collaborator failures (search, model,
// malformed or invalid output) degrade to the fallback roadmap and never
// fail the run; only missing input and an unwritable artifact return an error.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	recorder := opts.Metrics
	if recorder == nil && cfg.MetricsTextfile != "" {
		recorder = metrics.NewRecorder()
	}

	r := &run{
		opts:    opts,
		cfg:     cfg,
		id:      uuid.NewString(),
		tracker: steps.NewTracker(),
		metrics: recorder,
		now:     now,
	}
	r.logger = logging.WithRun(logger, r.id)

	result, err := r.execute(ctx)
	r.finish(err == nil)
	return result, err
}

func (r *run) execute(ctx context.Context) (*Result, error) {
	company := strings.TrimSpace(r.opts.Company)
	role := strings.TrimSpace(r.opts.Role)
	if company == "" {
		return nil, &InputError{Field: "company", Message: "company name is required"}
	}
	if role == "" {
		return nil, &InputError{Field: "role", Message: "job role is required"}
	}

	r.logger.Info("generating roadmap", "company", company, "role", role)

	// Step 1: job description
	jd, err := r.ingest(ctx)
	if err != nil {
		return nil, err
	}

	// Step 2: company research
	companyInfo := r.research(ctx, company, role)

	// Steps 3-4: prompt and model
	modelText, modelErr := r.generate(ctx, prompts.RoadmapData{
		Company:        company,
		Role:           role,
		JobDescription: jd,
		CompanyInfo:    companyInfo,
	})

	// Step 5: assemble
	start := time.Now()
	if err := r.tracker.ValidateDependencies(steps.AssembleRoadmap); err != nil {
		return nil, err
	}
	var summary *string
	if companyInfo != "" {
		summary = &companyInfo
	}
	assembler := roadmap.NewAssembler(roadmap.NewValidator(roadmap.WithClock(r.now)), r.logger)
	outcome := assembler.Assemble(roadmap.Input{
		Company:       company,
		Role:          role,
		JDText:        jd,
		SearchSummary: summary,
		ModelText:     modelText,
	})
	r.observe(metrics.StageAssemble, start)
	reason := outcome.Reason
	if modelErr != nil && errors.Is(reason, roadmap.ErrNoModelOutput) {
		reason = fmt.Errorf("%w: %w", roadmap.ErrNoModelOutput, modelErr)
	}
	r.complete(steps.AssembleRoadmap, start, nil,
		fmt.Sprintf("Assembled %s roadmap with %d rounds", outcome.Source, len(outcome.Roadmap.Rounds)),
		outcome.Roadmap)

	// Step 6: write
	start = time.Now()
	if err := r.tracker.ValidateDependencies(steps.WriteArtifact); err != nil {
		return nil, err
	}
	path, err := artifact.Write(r.cfg.OutputDir, outcome.Roadmap)
	r.observe(metrics.StageWrite, start)
	if err != nil {
		r.complete(steps.WriteArtifact, start, err, "Failed to write roadmap", nil)
		return nil, err
	}
	r.complete(steps.WriteArtifact, start, nil, "Roadmap saved to "+path, path)
	r.logger.Info("roadmap saved", "path", path, "source", string(outcome.Source))

	if r.metrics != nil {
		r.metrics.RecordRoadmap(string(outcome.Source), roadmap.ReasonLabel(reason), len(outcome.Warnings))
	}

	return &Result{
		RunID:           r.id,
		Path:            path,
		Roadmap:         outcome.Roadmap,
		Source:          outcome.Source,
		Reason:          reason,
		Warnings:        outcome.Warnings,
		CompanyInfo:     companyInfo,
		KeySkills:       outcome.KeySkills,
		Steps:           r.tracker.Results(),
		SearchAvailable: outcome.SearchAvailable,
	}, nil
}

// ingest loads the job description from whichever source was given.
func (r *run) ingest(ctx context.Context) (string, error) {
	start := time.Now()

	var (
		doc *ingestion.Document
		err error
	)
	switch {
	case strings.TrimSpace(r.opts.JobDescription) != "":
		doc, err = ingestion.FromReader(strings.NewReader(r.opts.JobDescription), "input")
	case r.opts.JobPath != "":
		doc, err = ingestion.FromFile(r.opts.JobPath)
	case r.opts.JobURL != "":
		fetchOpts := fetch.DefaultOptions()
		if r.cfg.SearchTimeout > 0 {
			fetchOpts.Timeout = r.cfg.SearchTimeout
		}
		doc, err = ingestion.FromURL(ctx, r.opts.JobURL, fetchOpts)
	default:
		err = ingestion.ErrEmptyDocument
	}
	if err != nil {
		r.complete(steps.IngestJob, start, err, "Failed to load job description", nil)
		return "", &InputError{Field: "job description", Message: "job description cannot be empty or unreadable", Cause: err}
	}

	r.complete(steps.IngestJob, start, nil,
		fmt.Sprintf("Loaded job description from %s (%d characters)", doc.Source, len(doc.Text)), nil)
	return doc.Text, nil
}

// research returns the company summary, or "" when search is disabled or found nothing.
func (r *run) research(ctx context.Context, company, role string) string {
	start := time.Now()

	searcher := r.opts.Searcher
	if searcher == nil && r.cfg.SearchEnabled() {
		var err error
		searcher, err = NewSearcher(ctx, r.cfg)
		if err != nil {
			r.logger.Warn("company search unavailable", "error", err)
		}
	}
	if searcher == nil {
		r.recordSearch("skipped")
		r.skip(steps.ResearchCompany, "Company search disabled")
		return ""
	}

	searchCtx := ctx
	if r.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		// each query gets the per-request timeout; allow one per query
		searchCtx, cancel = context.WithTimeout(ctx, r.cfg.SearchTimeout*time.Duration(max(r.cfg.SearchMaxQueries, 1)))
		defer cancel()
	}

	lookup := search.NewCompanyLookup(searcher, r.logger)
	lookup.MaxQueries = r.cfg.SearchMaxQueries
	info, err := lookup.CompanyInfo(searchCtx, company, role)
	r.observe(metrics.StageSearch, start)

	switch {
	case errors.Is(err, search.ErrNoResults):
		r.recordSearch("empty")
		r.complete(steps.ResearchCompany, start, nil, "No company information found", nil)
		return ""
	case err != nil:
		r.recordSearch("error")
		r.logger.Warn("company search failed, continuing without it", "provider", searcher.Name(), "error", err)
		r.complete(steps.ResearchCompany, start, err, "Company search failed", nil)
		return ""
	}

	r.recordSearch("ok")
	r.complete(steps.ResearchCompany, start, nil,
		fmt.Sprintf("Gathered %d characters of company information", len(info)), info)
	if r.opts.Verbose && r.opts.Out != nil {
		observability.NewPrinter(r.opts.Out).PrintCompanyInfo(company, info)
	}
	return info
}

// generate builds the prompt and makes the single model call. A nil text
// means the model produced nothing usable; the error says why.
func (r *run) generate(ctx context.Context, data prompts.RoadmapData) (*string, error) {
	start := time.Now()
	if err := r.tracker.ValidateDependencies(steps.BuildPrompt); err != nil {
		return nil, err
	}

	if r.cfg.Offline {
		r.skip(steps.BuildPrompt, "Offline mode")
		r.skip(steps.GenerateRoadmap, "Offline mode, using standard roadmap")
		return nil, ErrOffline
	}

	prompt, err := prompts.BuildRoadmapPrompt(data)
	r.observe(metrics.StagePrompt, start)
	if err != nil {
		r.complete(steps.BuildPrompt, start, err, "Failed to build prompt", nil)
		return nil, err
	}
	r.complete(steps.BuildPrompt, start, nil, fmt.Sprintf("Built prompt (%d characters)", len(prompt)), nil)

	start = time.Now()
	if err := r.tracker.ValidateDependencies(steps.GenerateRoadmap); err != nil {
		return nil, err
	}

	model := r.opts.Model
	if model == nil {
		model, err = NewModel(ctx, r.cfg)
		if err != nil {
			r.logger.Warn("model unavailable, using standard roadmap", "error", err)
			r.complete(steps.GenerateRoadmap, start, err, "Model unavailable", nil)
			return nil, err
		}
		defer func() {
			if cerr := model.Close(); cerr != nil {
				r.logger.Debug("failed to close model client", "error", cerr)
			}
		}()
	}

	modelCtx := ctx
	if r.cfg.LLMTimeout > 0 {
		var cancel context.CancelFunc
		modelCtx, cancel = context.WithTimeout(ctx, r.cfg.LLMTimeout)
		defer cancel()
	}

	r.logger.Debug("calling model", "model", model.GetModel(llm.TierStandard))
	text, err := model.GenerateContent(modelCtx, prompt, llm.TierStandard)
	r.observe(metrics.StageModel, start)
	if err != nil {
		r.logger.Warn("model call failed, using standard roadmap", "error", err)
		r.complete(steps.GenerateRoadmap, start, err, "Model call failed", nil)
		return nil, err
	}

	r.complete(steps.GenerateRoadmap, start, nil, fmt.Sprintf("Model returned %d characters", len(text)), nil)
	return &text, nil
}

// complete records a step outcome and emits the matching progress event.
func (r *run) complete(step string, start time.Time, err error, message string, content any) {
	result := r.tracker.Record(step, steps.StatusCompleted, time.Since(start), err)
	r.emit(step, result.Status, message, content)
}

func (r *run) skip(step, message string) {
	r.tracker.Record(step, steps.StatusSkipped, 0, nil)
	r.emit(step, steps.StatusSkipped, message, nil)
}

// emit calls the progress callback if configured
func (r *run) emit(step, status, message string, content any) {
	if r.opts.OnProgress == nil {
		return
	}
	r.opts.OnProgress(ProgressEvent{
		Step:     step,
		Category: steps.StepRegistry[step].Category,
		Status:   status,
		Message:  message,
		RunID:    r.id,
		Content:  content,
	})
}

func (r *run) observe(stage string, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveStage(stage, time.Since(start))
	}
}

func (r *run) recordSearch(outcome string) {
	if r.metrics != nil {
		r.metrics.RecordSearch(outcome)
	}
}

// finish stamps the run in the metrics and writes the textfile if configured.
func (r *run) finish(success bool) {
	if r.metrics == nil {
		return
	}
	r.metrics.Finish(success, r.now())
	if r.cfg.MetricsTextfile == "" {
		return
	}
	if err := r.metrics.WriteTextfile(r.cfg.MetricsTextfile); err != nil {
		r.logger.Warn("failed to write metrics", "error", err)
	}
}
