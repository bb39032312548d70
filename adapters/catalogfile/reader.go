// Package catalogfile reads model-catalog seed files (.xlsx or .csv)
// into ModelProfile entries. Used by cmd/seed; the running service never
// touches seed files.
package catalogfile

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"modeladvisor/models"

	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
)

// Reader handles reading Excel and CSV catalog files
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given seed file.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// ReadCatalog reads all catalog rows from the seed file.
func (r *Reader) ReadCatalog() ([]models.ModelProfile, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog file not found: %s", r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("catalog file has no data rows")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "name"} {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("catalog file missing required column %q", required)
		}
	}

	profiles := make([]models.ModelProfile, 0, len(rows)-1)
	for i, row := range rows[1:] {
		m, err := parseRow(header, row)
		if err != nil {
			log.Printf("[catalogfile] skipping row %d: %v", i+2, err)
			continue
		}
		profiles = append(profiles, m)
	}

	log.Printf("[catalogfile] read %d catalog entries from %s", len(profiles), r.filePath)
	return profiles, nil
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *Reader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

func parseRow(header map[string]int, row []string) (models.ModelProfile, error) {
	get := func(col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	id := get("id")
	name := get("name")
	if id == "" || name == "" {
		return models.ModelProfile{}, fmt.Errorf("missing id or name")
	}

	m := models.ModelProfile{
		ID:          id,
		Name:        name,
		Provider:    get("provider"),
		Family:      get("family"),
		Modality:    orDefault(get("modality"), "text"),
		HostingMode: get("api_type"),
		License:     get("license"),
		Source:      get("source"),
		URL:         get("url"),

		ContextWindow:   parseNumber(get("context_window")),
		LatencyMs:       parseNumber(get("latency_ms")),
		CostPer1KTokens: parseNumber(get("cost_per_1k_tokens")),

		DomainTags:      splitList(get("domain_tags")),
		Pros:            splitList(get("pros")),
		Cons:            splitList(get("cons")),
		RAGTips:         splitList(get("rag_tips")),
		TypicalUseCases: splitList(get("typical_use_cases")),
		Strengths:       splitList(get("strengths")),
		Limitations:     splitList(get("limitations")),
	}
	return m, nil
}

// parseNumber maps blank or malformed cells onto the unknown sentinel.
func parseNumber(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// splitList parses "a|b|c" cells into tag arrays.
func splitList(s string) pq.StringArray {
	if s == "" {
		return pq.StringArray{}
	}
	parts := strings.Split(s, "|")
	out := make(pq.StringArray, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
