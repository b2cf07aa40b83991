package handlers

import "net/http"

// CatalogReader exposes the static tables behind the symptom picker.
type CatalogReader interface {
	CommonSymptoms() []string
	SymptomKeys() []string
	CatalogVersion() string
}

// CatalogHandler serves catalog metadata
type CatalogHandler struct {
	catalog CatalogReader
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListSymptoms handles GET /api/symptoms
func (h *CatalogHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"common": h.catalog.CommonSymptoms(),
		"keys":   h.catalog.SymptomKeys(),
	})
}

// Version handles GET /api/catalog/version
func (h *CatalogHandler) Version(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"version": h.catalog.CatalogVersion(),
	})
}
