package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oortis/tempscore/internal/providers"
	"github.com/oortis/tempscore/internal/providers/csvfile"
	"github.com/oortis/tempscore/pkg/config"
	"github.com/oortis/tempscore/pkg/logger"
)

func newProviderHandler(t *testing.T) (*ProviderHandler, *csvfile.Provider) {
	t.Helper()
	dir := t.TempDir()
	companyPath := filepath.Join(dir, "companies.csv")
	targetPath := filepath.Join(dir, "targets.csv")
	require.NoError(t, os.WriteFile(companyPath, []byte("company_id\n"), 0o644))
	require.NoError(t, os.WriteFile(targetPath, []byte("company_id\n"), 0o644))

	csvProv, err := csvfile.New("primary", companyPath, targetPath)
	require.NoError(t, err)

	registry := providers.NewRegistry([]providers.Provider{csvProv, &stubProvider{name: "vendor"}}, false, logger.Discard())
	specs := []config.ProviderSpec{
		{Name: "primary", Type: "csv", Parameters: map[string]string{"company_data": companyPath}},
		{Name: "vendor", Type: "stub"},
	}
	return NewProviderHandler(registry, specs, logger.Discard()), csvProv
}

func TestList(t *testing.T) {
	h, _ := newProviderHandler(t)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/data_providers", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []config.ProviderSpec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	require.Len(t, out, 2)
	assert.Equal(t, "primary", out[0].Name)
	assert.Equal(t, "csv", out[0].Type)
	// Parameters hold file paths and credentials, never exposed.
	assert.Nil(t, out[0].Parameters)
}

func postImport(t *testing.T, h *ProviderHandler, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content, fields)
	req := httptest.NewRequest(http.MethodPost, "/import_data_provider", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Import(rec, req)
	return rec
}

func TestImport(t *testing.T) {
	h, csvProv := newProviderHandler(t)

	uploaded := "company_id,company_name\nA,Acme Inc\n"
	rec := postImport(t, h, "new.csv", uploaded, map[string]string{"provider": "primary"})
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := os.ReadFile(csvProv.CompanyPath())
	require.NoError(t, err)
	assert.Equal(t, uploaded, string(data))

	// The provider reads the file per query, so the upload is live.
	records, err := csvProv.CompanyData(context.Background(), []string{"A"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme Inc", records[0].CompanyName)
}

func TestImport_TargetKind(t *testing.T) {
	h, csvProv := newProviderHandler(t)

	uploaded := "company_id,scope_category\nA,s1s2\n"
	rec := postImport(t, h, "targets.csv", uploaded, map[string]string{"provider": "primary", "kind": "target"})
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := os.ReadFile(csvProv.TargetPath())
	require.NoError(t, err)
	assert.Equal(t, uploaded, string(data))
}

func TestImport_BadRequests(t *testing.T) {
	h, _ := newProviderHandler(t)

	tests := []struct {
		name     string
		filename string
		fields   map[string]string
	}{
		{"missing provider field", "new.csv", nil},
		{"unknown provider", "new.csv", map[string]string{"provider": "nope"}},
		{"provider not file-backed", "new.csv", map[string]string{"provider": "vendor"}},
		{"non-csv upload", "data.xlsx", map[string]string{"provider": "primary"}},
		{"missing file", "", map[string]string{"provider": "primary"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postImport(t, h, tt.filename, "company_id\n", tt.fields)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
