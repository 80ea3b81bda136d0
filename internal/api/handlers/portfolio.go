package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/oortis/tempscore/pkg/logger"
)

// PortfolioHandler turns uploaded portfolio files into JSON records so the
// UI can feed them back into the score endpoint.
type PortfolioHandler struct {
	logger *logger.Logger
}

// NewPortfolioHandler creates a portfolio handler.
func NewPortfolioHandler(log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{logger: log}
}

// Parse reads an uploaded portfolio CSV and returns its rows as JSON
// objects keyed by the header. The "skiprows" form field skips leading
// preamble rows before the header. Fully empty rows are dropped.
// POST /parse_portfolio
func (h *PortfolioHandler) Parse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondError(w, http.StatusBadRequest, "file exceeds the 10 MB upload limit")
		return
	}

	skipRows := 0
	if raw := r.FormValue("skiprows"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "skiprows must be a non-negative integer")
			return
		}
		skipRows = parsed
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid CSV file: %v", err))
		return
	}

	if skipRows >= len(records) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"portfolio": []map[string]string{}})
		return
	}
	records = records[skipRows:]

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		empty := true
		for i, name := range header {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			row[strings.TrimSpace(name)] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"portfolio": rows})
}
