package siteapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/FocusWW/SiteAPI/internal/services/tracking"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

func (a *SiteAPI) getPublicTracking(w http.ResponseWriter, r *http.Request) {
	n := tracking.NormalizeNumber(chi.URLParam(r, "trackingNumber"))
	if n == "" {
		writeError(w, http.StatusBadRequest, "Tracking number is required")
		return
	}

	view, err := a.tracking.PublicTracking(r.Context(), n)
	switch {
	case errors.Is(err, tracking.ErrNotFound):
		// Наружу уходит нормализованный номер, не сырой ввод.
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":          "Tracking number not found",
			"trackingNumber": n,
		})
		return
	case err != nil:
		slog.Error("public tracking lookup failed", "trackingNumber", n, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *SiteAPI) getStaffTracking(w http.ResponseWriter, r *http.Request) {
	caseID := strings.TrimSpace(chi.URLParam(r, "caseID"))
	if caseID == "" {
		writeError(w, http.StatusBadRequest, "Case ID is required")
		return
	}

	view, err := a.tracking.StaffTracking(r.Context(), caseID)
	switch {
	case errors.Is(err, tracking.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":  "Case not found",
			"caseId": caseID,
		})
		return
	case err != nil:
		slog.Error("staff tracking lookup failed", "caseId", caseID, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *SiteAPI) searchStaffTracking(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < 3 {
		writeError(w, http.StatusBadRequest, "Search query must be at least 3 characters")
		return
	}

	found, err := a.tracking.Search(r.Context(), q)
	if err != nil {
		slog.Error("staff tracking search failed", "q", q, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, found)
}
