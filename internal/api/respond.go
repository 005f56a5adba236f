package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"deckbox-api/internal/scrapers/deckbox"
)

const report_api_respond = "api.respond"

type httpError struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details,omitempty"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, details map[string]any) {
	e := httpError{}
	e.Error.Code = code
	e.Error.Message = msg
	e.Error.Details = details
	writeJSON(w, status, e)
}

// fail maps errors coming out of the scraper onto a status code, anything
// upstream related is a bad gateway.
func (h *handler) fail(w http.ResponseWriter, err error) {
	var (
		filterErr  *deckbox.FilterError
		fetchErr   *deckbox.FetchError
		extractErr *deckbox.ExtractionError
		catalogErr *deckbox.CatalogError
	)

	switch {
	case errors.As(err, &filterErr):
		details := map[string]any{"kind": filterErr.Kind, "value": filterErr.Value}
		if filterErr.Suggestion != "" {
			details["suggestion"] = filterErr.Suggestion
		}
		writeError(w, http.StatusBadRequest, "INVALID_FILTER", err.Error(), details)
	case errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "deckbox has no such page", map[string]any{"url": fetchErr.URL})
	case errors.As(err, &fetchErr):
		h.tel.ReportWarning(report_api_respond, err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", err.Error(), nil)
	case errors.As(err, &extractErr):
		h.tel.ReportBroken(report_api_respond, err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_MARKUP", err.Error(), map[string]any{"field": extractErr.Field})
	case errors.As(err, &catalogErr):
		h.tel.ReportBroken(report_api_respond, err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_MARKUP", err.Error(), map[string]any{"region": catalogErr.Region})
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", err.Error(), nil)
	default:
		h.tel.ReportBroken(report_api_respond, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, "BAD_REQUEST", msg, nil)
}
