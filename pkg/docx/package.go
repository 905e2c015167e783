package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cv-customizer/internal/domain"
)

const (
	mainPart = "word/document.xml"

	relTypeHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

var ErrNotDocx = errors.New("not a valid DOCX file")

type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

type relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Relationship []relationship `xml:"Relationship"`
}

// Document is an opened .docx package.
type Document struct {
	zr       *zip.Reader
	files    map[string]*zip.File
	main     *part
	parts    map[string]*part
	sections []*Section
}

// Open reads the .docx file at path into memory.
func Open(filePath string) (*Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Read(bytes.NewReader(content), int64(len(content)))
}

// Read parses a .docx package from r.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}
	d := &Document{
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
		parts: map[string]*part{},
	}
	for _, f := range zr.File {
		d.files[f.Name] = f
	}
	if _, ok := d.files[mainPart]; !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotDocx, mainPart)
	}

	d.main, err = d.loadPart(mainPart)
	if err != nil {
		return nil, err
	}
	if err := d.resolveSections(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) loadPart(name string) (*part, error) {
	if p, ok := d.parts[name]; ok {
		return p, nil
	}
	data, err := d.readFile(name)
	if err != nil {
		return nil, err
	}
	p, err := parsePart(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	d.parts[name] = p
	return p, nil
}

func (d *Document) readFile(name string) ([]byte, error) {
	f, ok := d.files[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}
	return content, nil
}

// relationshipsOf returns the relationships of partName keyed by ID. A part
// without a relationships file has none.
func (d *Document) relationshipsOf(partName string) (map[string]relationship, error) {
	dir, base := path.Split(partName)
	relPath := path.Join(dir, "_rels", base+".rels")
	out := map[string]relationship{}
	if _, ok := d.files[relPath]; !ok {
		return out, nil
	}
	content, err := d.readFile(relPath)
	if err != nil {
		return nil, err
	}
	var rels relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	for _, r := range rels.Relationship {
		out[r.ID] = r
	}
	return out, nil
}

func (d *Document) resolveSections() error {
	rels, err := d.relationshipsOf(mainPart)
	if err != nil {
		return err
	}
	resolve := func(ids []string, relType string) ([]*Story, error) {
		var out []*Story
		for _, id := range ids {
			rel, ok := rels[id]
			if !ok || rel.Type != relType || rel.TargetMode == "External" {
				continue
			}
			name := resolveTarget(mainPart, rel.Target)
			if _, ok := d.files[name]; !ok {
				continue
			}
			p, err := d.loadPart(name)
			if err != nil {
				return nil, err
			}
			out = append(out, &p.story)
		}
		return out, nil
	}
	for _, sec := range d.main.sections {
		if sec.headers, err = resolve(sec.headerIDs, relTypeHeader); err != nil {
			return err
		}
		if sec.footers, err = resolve(sec.footerIDs, relTypeFooter); err != nil {
			return err
		}
	}
	d.sections = d.main.sections
	return nil
}

func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(source), target))
}

func (d *Document) Body() domain.Story { return &d.main.story }

func (d *Document) Sections() []domain.Section {
	out := make([]domain.Section, len(d.sections))
	for i, s := range d.sections {
		out[i] = s
	}
	return out
}

// Modified reports whether any run has pending changes.
func (d *Document) Modified() bool {
	for _, p := range d.parts {
		if p.dirty() {
			return true
		}
	}
	return false
}

// Save writes the package to filePath.
func (d *Document) Save(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filePath, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes the package to w, keeping the original entry order. Parts
// without changes are copied without recompression.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, f := range d.zr.File {
		p, ok := d.parts[f.Name]
		if !ok || !p.dirty() {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("failed to copy %s: %w", f.Name, err)
			}
			continue
		}
		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		}
		out, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", f.Name, err)
		}
		if _, err := out.Write(p.render()); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	return zw.Close()
}

// Load opens the template at filePath as a domain.Document.
func Load(filePath string) (domain.Document, error) {
	d, err := Open(filePath)
	if err != nil {
		return nil, err
	}
	return d, nil
}
