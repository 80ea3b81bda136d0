package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/oortis/tempscore/internal/providers"
	"github.com/oortis/tempscore/internal/providers/csvfile"
	"github.com/oortis/tempscore/pkg/config"
	"github.com/oortis/tempscore/pkg/logger"
)

// maxImportSize caps uploaded data-provider files at 10 MB.
const maxImportSize = 10 << 20

// ProviderHandler serves the data-provider endpoints.
type ProviderHandler struct {
	registry *providers.Registry
	specs    []config.ProviderSpec
	logger   *logger.Logger
}

// NewProviderHandler creates a provider handler.
func NewProviderHandler(registry *providers.Registry, specs []config.ProviderSpec, log *logger.Logger) *ProviderHandler {
	return &ProviderHandler{
		registry: registry,
		specs:    specs,
		logger:   log,
	}
}

// List returns the configured data providers.
// GET /data_providers
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	out := make([]config.ProviderSpec, 0, len(h.specs))
	for _, spec := range h.specs {
		out = append(out, config.ProviderSpec{Name: spec.Name, Type: spec.Type})
	}
	respondJSON(w, http.StatusOK, out)
}

// Import replaces the backing data file of a CSV provider with an uploaded
// one. The provider is selected with the "provider" form field; "kind"
// chooses the company or target file (default company).
// POST /import_data_provider
func (h *ProviderHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondError(w, http.StatusBadRequest, "file exceeds the 10 MB upload limit")
		return
	}

	target, err := h.importPath(r.FormValue("provider"), r.FormValue("kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		respondError(w, http.StatusBadRequest, "only .csv files can be imported")
		return
	}

	if err := h.replaceFile(target, file); err != nil {
		h.logger.WithError(err).Error("Provider import failed")
		respondError(w, http.StatusInternalServerError, "file could not be saved")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"path": target,
		"file": header.Filename,
		"size": header.Size,
	}).Info("Data provider file imported")

	respondJSON(w, http.StatusOK, map[string]string{"message": "data provider imported"})
}

// importPath resolves the destination file for an import. Only CSV
// providers have replaceable files.
func (h *ProviderHandler) importPath(name, kind string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("provider field is required")
	}

	for _, p := range h.registry.All() {
		if p.Name() != name {
			continue
		}
		csvProv, ok := p.(*csvfile.Provider)
		if !ok {
			return "", fmt.Errorf("provider %q is not file-backed", name)
		}
		if kind == "target" {
			return csvProv.TargetPath(), nil
		}
		return csvProv.CompanyPath(), nil
	}
	return "", fmt.Errorf("unknown provider %q", name)
}

// replaceFile writes the upload next to the destination and renames it into
// place, so a half-written upload never replaces live data.
func (h *ProviderHandler) replaceFile(dst string, src io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".import-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dst)
}
