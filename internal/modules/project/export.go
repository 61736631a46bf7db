package project

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/auto-explainer/core/internal/models"
	"github.com/auto-explainer/core/internal/pkg/apperrors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

const (
	FormatJSON = "json"
	FormatTXT  = "txt"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatMD   = "md"
	FormatHTML = "html"
)

// pdf and docx carry the plain text blob under their MIME types.
var exportContentTypes = map[string]string{
	FormatTXT:  "text/plain",
	FormatPDF:  "application/pdf",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatMD:   "text/markdown",
	FormatHTML: "text/html; charset=utf-8",
}

var exportEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(htmlrenderer.WithHardWraps()),
)

// Export is a rendered download. Project is set only for the json format.
type Export struct {
	Project     *models.Project
	Filename    string
	ContentType string
	Body        []byte
}

func buildExport(p *models.Project, format string) (*Export, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == FormatJSON {
		return &Export{Project: p}, nil
	}
	contentType, ok := exportContentTypes[f]
	if !ok {
		return nil, apperrors.Client("Unsupported export format", nil)
	}

	body := []byte(textBlob(p))
	if f == FormatHTML {
		var err error
		if body, err = renderHTML(body); err != nil {
			return nil, err
		}
	}
	return &Export{
		Filename:    "export." + f,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// textBlob flattens title and outputs into one document. Languages follow
// models.SupportedLanguages and sections follow models.Sections; any other
// keys come after them in sorted order.
func textBlob(p *models.Project) string {
	langOrder := make([]string, len(models.SupportedLanguages))
	for i, l := range models.SupportedLanguages {
		langOrder[i] = string(l)
	}

	lines := []string{"Title: " + p.Title}
	for _, lang := range orderedKeys(p.Outputs, langOrder) {
		lines = append(lines, "\n=== "+strings.ToUpper(lang)+" ===")
		sections := p.Outputs[lang]
		for _, sec := range orderedKeys(sections, models.Sections) {
			lines = append(lines, "\n## "+sec+"\n"+sections[sec])
		}
	}
	return strings.Join(lines, "\n")
}

func renderHTML(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := exportEngine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("render html export: %w", err)
	}
	return buf.Bytes(), nil
}

// orderedKeys returns the keys of m present in known, in that order, then
// the remaining keys sorted.
func orderedKeys[V any](m map[string]V, known []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(known))
	for _, k := range known {
		if _, ok := m[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
