package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cv-customizer/internal/domain"
	"cv-customizer/internal/model"
	"cv-customizer/internal/placeholder"
)

// ErrTemplateLoad is returned when the template cannot be opened. No output
// is written in that case.
var ErrTemplateLoad = errors.New("failed to load template")

// TemplateLoader opens a fresh copy of the template for one run.
type TemplateLoader func(path string) (domain.Document, error)

type RunsRepo interface {
	Save(ctx context.Context, j *domain.CustomizationJob) error
}

type Processor struct {
	load       TemplateLoader
	template   string
	outputRoot string
	replacer   *placeholder.Replacer
	exporter   *Exporter
	auditor    Auditor
	repo       RunsRepo
	now        func() time.Time
	log        *slog.Logger
}

type Option func(*Processor)

// WithRepo persists every job state change. Persistence is best-effort.
func WithRepo(r RunsRepo) Option { return func(p *Processor) { p.repo = r } }

// WithAuditor checks produced PDFs for tokens that survived substitution.
func WithAuditor(a Auditor) Option { return func(p *Processor) { p.auditor = a } }

func WithClock(now func() time.Time) Option { return func(p *Processor) { p.now = now } }

func NewProcessor(load TemplateLoader, template, outputRoot string, exporter *Exporter, log *slog.Logger, opts ...Option) *Processor {
	if log == nil {
		log = slog.Default()
	}
	p := &Processor{
		load:       load,
		template:   template,
		outputRoot: outputRoot,
		replacer:   placeholder.NewReplacer(log),
		exporter:   exporter,
		now:        time.Now,
		log:        log,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ProcessRecord validates a raw JSON job record and runs it. The returned job
// is non-nil whenever the record could be parsed.
func (p *Processor) ProcessRecord(ctx context.Context, source string, data []byte) (*domain.CustomizationJob, error) {
	m, err := model.ParseRecord(data)
	if err != nil {
		return nil, fmt.Errorf("invalid job record %s: %w", source, err)
	}
	job := domain.NewCustomizationJob(OutputName(m), source)
	return job, p.Process(ctx, job, m)
}

// Process runs one customization: substitute the mapping into a fresh copy of
// the template, save the document into a new run folder and export it to PDF.
func (p *Processor) Process(ctx context.Context, job *domain.CustomizationJob, m *model.Mapping) error {
	if job.Label == "" {
		job.Label = OutputName(m)
	}
	log := p.log.With("job", job.ID.String(), "label", job.Label)
	p.setStatus(ctx, job, domain.StatusRunning)

	doc, err := p.load(p.template)
	if err != nil {
		err = fmt.Errorf("%w %s: %v", ErrTemplateLoad, p.template, err)
		return p.fail(ctx, job, err)
	}

	rep := p.replacer.ReplaceAll(doc, m)
	job.Replaced = rep.Replaced
	job.Unresolved = rep.Unresolved
	log.Info("placeholders replaced", "keys", m.Len(), "replacements", rep.Total(), "paragraphs", rep.Paragraphs)

	dir := RunDir(p.outputRoot, p.now(), job.Label)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return p.fail(ctx, job, fmt.Errorf("failed to create output folder: %w", err))
	}
	job.OutputDir = dir
	log.Info("created output folder", "path", dir)

	docxPath := filepath.Join(dir, job.Label+".docx")
	if err := doc.Save(docxPath); err != nil {
		return p.fail(ctx, job, fmt.Errorf("failed to save document: %w", err))
	}
	job.DocxPath = docxPath
	log.Info("saved document", "path", docxPath)

	if p.exporter != nil {
		res, err := p.exporter.Export(ctx, docxPath, filepath.Join(dir, job.Label+".pdf"))
		if err != nil {
			return p.fail(ctx, job, err)
		}
		job.PDFPath = res.PDFPath
		job.Converter = res.Converter
		job.PageCount = res.Pages

		if p.auditor != nil {
			leftover, err := p.auditor.Leftover(res.PDFPath)
			if err != nil {
				log.Warn("pdf text audit failed", "error", err)
			}
			job.Leftover = leftover
			if len(leftover) > 0 {
				log.Warn("placeholders visible in pdf", "tokens", leftover)
			}
		}
	}

	p.setStatus(ctx, job, domain.StatusCompleted)
	log.Info("customization completed", "docx", job.DocxPath, "pdf", job.PDFPath)
	return nil
}

func (p *Processor) fail(ctx context.Context, job *domain.CustomizationJob, err error) error {
	job.Error = err.Error()
	p.setStatus(ctx, job, domain.StatusFailed)
	p.log.Error("customization failed", "job", job.ID.String(), "label", job.Label, "error", err)
	return err
}

func (p *Processor) setStatus(ctx context.Context, job *domain.CustomizationJob, status string) {
	job.Status = status
	job.UpdatedAt = p.now()
	if p.repo == nil {
		return
	}
	if err := p.repo.Save(ctx, job); err != nil {
		p.log.Warn("failed to persist job", "job", job.ID.String(), "error", err)
	}
}
