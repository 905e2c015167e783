package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-customizer/internal/adapter/memdoc"
)

func writeRecords(t *testing.T, records map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range records {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

var batchRecords = map[string]string{
	"01_acme.json":    `{"company_name": "Acme", "job_title": "Backend Engineer", "skills": ["Go", "SQL"]}`,
	"02_broken.json":  `{"company_name": {"nested": true}}`,
	"03_globex.json":  `{"company_name": "Globex", "job_title": "SRE"}`,
	"notes.txt":       `not a record`,
	"04_invalid.json": `{"company_name": `,
}

func TestRunBatch_IsolatesFailures(t *testing.T) {
	dir := writeRecords(t, batchRecords)
	var docs []*memdoc.Document
	exp := NewExporter(nil, 0, nil, &fakeConverter{name: "soffice"})
	p := NewProcessor(loaderFor(&docs), "t.docx", t.TempDir(), exp, nil, WithClock(fixedClock()))

	res, err := p.RunBatch(context.Background(), dir, false)
	require.NoError(t, err)
	assert.False(t, res.OK())

	require.Len(t, res.Succeeded, 2)
	assert.Equal(t, "CV_Acme_Backend_Engineer", res.Succeeded[0].Label)
	assert.Equal(t, "CV_Globex_SRE", res.Succeeded[1].Label)
	for _, j := range res.Succeeded {
		assert.FileExists(t, j.DocxPath)
		assert.FileExists(t, j.PDFPath)
	}

	require.Len(t, res.Failed, 2)
	assert.Equal(t, "02_broken.json", filepath.Base(res.Failed[0].File))
	assert.Equal(t, "04_invalid.json", filepath.Base(res.Failed[1].File))
	assert.Nil(t, res.Failed[0].Job)
	assert.Len(t, docs, 2)
}

func TestRunBatch_FailFast(t *testing.T) {
	dir := writeRecords(t, batchRecords)
	var docs []*memdoc.Document
	p := NewProcessor(loaderFor(&docs), "t.docx", t.TempDir(), nil, nil, WithClock(fixedClock()))

	res, err := p.RunBatch(context.Background(), dir, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "02_broken.json")
	assert.Len(t, res.Succeeded, 1)
	assert.Len(t, res.Failed, 1)
}

func TestRunBatch_ConversionFailureContinues(t *testing.T) {
	dir := writeRecords(t, map[string]string{
		"a.json": `{"company_name": "A", "job_title": "One"}`,
		"b.json": `{"company_name": "B", "job_title": "Two"}`,
	})
	var docs []*memdoc.Document
	exp := NewExporter(nil, 0, nil, &fakeConverter{name: "soffice", err: assert.AnError})
	p := NewProcessor(loaderFor(&docs), "t.docx", t.TempDir(), exp, nil)

	res, err := p.RunBatch(context.Background(), dir, false)
	require.NoError(t, err)
	require.Len(t, res.Failed, 2)
	for _, f := range res.Failed {
		require.NotNil(t, f.Job)
		assert.FileExists(t, f.Job.DocxPath)
	}
}

func TestRunBatch_Cancelled(t *testing.T) {
	dir := writeRecords(t, batchRecords)
	var docs []*memdoc.Document
	p := NewProcessor(loaderFor(&docs), "t.docx", t.TempDir(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := p.RunBatch(ctx, dir, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Succeeded)
	assert.Empty(t, docs)
}

func TestRunBatch_MissingDirectory(t *testing.T) {
	var docs []*memdoc.Document
	p := NewProcessor(loaderFor(&docs), "t.docx", t.TempDir(), nil, nil)
	_, err := p.RunBatch(context.Background(), filepath.Join(t.TempDir(), "nope"), false)
	assert.Error(t, err)
}
