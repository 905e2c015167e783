package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// CustomizationJob tracks one template customization run from request to
// output files.
type CustomizationJob struct {
	ID         uuid.UUID      `json:"id"`
	Label      string         `json:"label"`
	Source     string         `json:"source,omitempty"`
	Status     string         `json:"status"`
	OutputDir  string         `json:"output_dir,omitempty"`
	DocxPath   string         `json:"docx_path,omitempty"`
	PDFPath    string         `json:"pdf_path,omitempty"`
	Converter  string         `json:"converter,omitempty"`
	PageCount  int            `json:"page_count,omitempty"`
	Replaced   map[string]int `json:"replaced,omitempty"`
	Unresolved []string       `json:"unresolved,omitempty"`
	Leftover   []string       `json:"pdf_leftover,omitempty"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func NewCustomizationJob(label, source string) *CustomizationJob {
	now := time.Now()
	return &CustomizationJob{
		ID:        uuid.New(),
		Label:     label,
		Source:    source,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
