package http

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cv-customizer/internal/domain"
	"cv-customizer/internal/model"
	"cv-customizer/internal/usecase"
)

// RunStore looks up runs that are no longer held in memory.
type RunStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.CustomizationJob, error)
}

type Handler struct {
	processor *usecase.Processor
	store     RunStore
	log       *slog.Logger

	// runMu serializes customizations so one document completes before the
	// next starts.
	runMu sync.Mutex

	mu   sync.RWMutex
	runs map[uuid.UUID]domain.CustomizationJob
}

func NewHandler(p *usecase.Processor, store RunStore, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{processor: p, store: store, log: log, runs: map[uuid.UUID]domain.CustomizationJob{}}
}

// Register mounts the routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Post("/customizations", h.Create)
	app.Get("/customizations/:id", h.Get)
	app.Get("/customizations/:id/:artifact", h.Artifact)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Create runs a customization for the job record in the request body. With
// ?async=true the run is queued and 202 is returned immediately.
func (h *Handler) Create(c *fiber.Ctx) error {
	m, err := model.ParseRecord(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	job := domain.NewCustomizationJob(usecase.OutputName(m), "http")
	h.remember(job)

	if c.QueryBool("async") {
		accepted := fiber.Map{"jobId": job.ID.String(), "status": job.Status}
		go func(j *domain.CustomizationJob) {
			if err := h.run(context.Background(), j, m); err != nil {
				h.log.Warn("async customization failed", "job", j.ID.String(), "error", err)
			}
		}(job)
		return c.Status(fiber.StatusAccepted).JSON(accepted)
	}

	err = h.run(c.UserContext(), job, m)
	snapshot := *job
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(snapshot)
	case errors.Is(err, usecase.ErrTemplateLoad):
		return c.Status(fiber.StatusInternalServerError).JSON(snapshot)
	default:
		var convErr *usecase.ConversionError
		if errors.As(err, &convErr) {
			return c.Status(fiber.StatusBadGateway).JSON(snapshot)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(snapshot)
	}
}

func (h *Handler) run(ctx context.Context, job *domain.CustomizationJob, m *model.Mapping) error {
	h.runMu.Lock()
	defer h.runMu.Unlock()
	err := h.processor.Process(ctx, job, m)
	h.remember(job)
	return err
}

func (h *Handler) remember(job *domain.CustomizationJob) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs[job.ID] = *job
}

func (h *Handler) lookup(ctx context.Context, id uuid.UUID) (*domain.CustomizationJob, error) {
	h.mu.RLock()
	j, ok := h.runs[id]
	h.mu.RUnlock()
	if ok {
		return &j, nil
	}
	if h.store == nil {
		return nil, nil
	}
	return h.store.Get(ctx, id)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	job, status, err := h.find(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(job)
}

// Artifact downloads the .docx or .pdf produced by a run.
func (h *Handler) Artifact(c *fiber.Ctx) error {
	job, status, err := h.find(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	var path string
	switch c.Params("artifact") {
	case "docx":
		path = job.DocxPath
	case "pdf":
		path = job.PDFPath
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "artifact must be docx or pdf"})
	}
	if path == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artifact not available", "status": job.Status})
	}
	return c.Download(path, filepath.Base(path))
}

func (h *Handler) find(c *fiber.Ctx) (*domain.CustomizationJob, int, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("invalid id")
	}
	job, err := h.lookup(c.UserContext(), id)
	if err != nil {
		h.log.Warn("run lookup failed", "id", id.String(), "error", err)
		return nil, fiber.StatusInternalServerError, errors.New("lookup failed")
	}
	if job == nil {
		return nil, fiber.StatusNotFound, errors.New("run not found")
	}
	return job, fiber.StatusOK, nil
}
