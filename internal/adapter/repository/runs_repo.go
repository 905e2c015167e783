package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"cv-customizer/internal/domain"
)

// RunsRepo stores customization runs. A repo without a pool discards writes,
// so the tool works without a database.
type RunsRepo struct {
	pool *pgxpool.Pool
}

func NewRunsRepo(pool *pgxpool.Pool) *RunsRepo {
	return &RunsRepo{pool: pool}
}

func (r *RunsRepo) Enabled() bool { return r != nil && r.pool != nil }

func (r *RunsRepo) Save(ctx context.Context, j *domain.CustomizationJob) error {
	if !r.Enabled() {
		return nil
	}
	replaced, unresolved, leftover, err := encodeReport(j)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO customization_runs (id, label, source, status, output_dir, docx_path, pdf_path, converter, page_count, replaced, unresolved, pdf_leftover, error, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, output_dir = EXCLUDED.output_dir, docx_path = EXCLUDED.docx_path, pdf_path = EXCLUDED.pdf_path, converter = EXCLUDED.converter, page_count = EXCLUDED.page_count, replaced = EXCLUDED.replaced, unresolved = EXCLUDED.unresolved, pdf_leftover = EXCLUDED.pdf_leftover, error = EXCLUDED.error, updated_at = EXCLUDED.updated_at`,
		j.ID, j.Label, j.Source, j.Status, j.OutputDir, j.DocxPath, j.PDFPath, j.Converter, j.PageCount,
		replaced, unresolved, leftover, j.Error, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert run %s: %w", j.ID, err)
	}
	return nil
}

// Get loads a run by ID. It returns nil without error when the run is unknown
// or persistence is disabled.
func (r *RunsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.CustomizationJob, error) {
	if !r.Enabled() {
		return nil, nil
	}
	var (
		j                              domain.CustomizationJob
		replaced, unresolved, leftover []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, label, source, status, output_dir, docx_path, pdf_path, converter, page_count, replaced, unresolved, pdf_leftover, error, created_at, updated_at
		FROM customization_runs WHERE id = $1`, id).Scan(
		&j.ID, &j.Label, &j.Source, &j.Status, &j.OutputDir, &j.DocxPath, &j.PDFPath, &j.Converter, &j.PageCount,
		&replaced, &unresolved, &leftover, &j.Error, &j.CreatedAt, &j.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	if err := decodeReport(&j, replaced, unresolved, leftover); err != nil {
		return nil, err
	}
	return &j, nil
}

func encodeReport(j *domain.CustomizationJob) (replaced, unresolved, leftover []byte, err error) {
	if replaced, err = json.Marshal(orEmptyMap(j.Replaced)); err != nil {
		return
	}
	if unresolved, err = json.Marshal(orEmptySlice(j.Unresolved)); err != nil {
		return
	}
	leftover, err = json.Marshal(orEmptySlice(j.Leftover))
	return
}

func decodeReport(j *domain.CustomizationJob, replaced, unresolved, leftover []byte) error {
	for _, f := range []struct {
		raw []byte
		dst interface{}
	}{{replaced, &j.Replaced}, {unresolved, &j.Unresolved}, {leftover, &j.Leftover}} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return fmt.Errorf("failed to decode run report: %w", err)
		}
	}
	return nil
}

func orEmptyMap(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
