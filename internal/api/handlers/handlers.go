package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rpatwari/replacement-tracker/internal/api/middleware"
	"github.com/rpatwari/replacement-tracker/internal/tracker"
)

// Service is the slice of the tracker core the HTTP layer depends on.
// This interface enables mocking and testing of the handlers.
type Service interface {
	Submit(ctx context.Context, sub tracker.Submission) (int, error)
	ListClients(ctx context.Context) ([]string, error)
	FilterClients(ctx context.Context, q string) ([]string, error)
	SummarizeClient(ctx context.Context, client string) ([]tracker.ModelTotal, error)
	ClientDetails(ctx context.Context, client string) ([]tracker.Detail, error)
	OverallSummary(ctx context.Context) (*tracker.Summary, error)
}

// TrackerHandler serves the entry-form and summary endpoints.
type TrackerHandler struct {
	svc Service
	log zerolog.Logger
}

// NewTrackerHandler creates a new tracker handler.
func NewTrackerHandler(svc Service, log zerolog.Logger) *TrackerHandler {
	return &TrackerHandler{
		svc: svc,
		log: log,
	}
}

// flexString accepts a JSON string or number. HTML number inputs submit
// quantities as strings while other clients send bare numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("qty must be a string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// lineItem mirrors one product line of the form payload.
type lineItem struct {
	ModelNo string     `json:"modelNo"`
	BatchNo string     `json:"batchNo"`
	Qty     flexString `json:"qty"`
}

func toLineItems(items []lineItem) []tracker.LineItem {
	out := make([]tracker.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, tracker.LineItem{
			ModelNo: item.ModelNo,
			BatchNo: item.BatchNo,
			Qty:     string(item.Qty),
		})
	}
	return out
}

// Submit handles POST /submit
func (h *TrackerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName string     `json:"clientName"`
		Date       string     `json:"date"`
		Incoming   []lineItem `json:"incoming"`
		Outgoing   []lineItem `json:"outgoing"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.ClientName) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "clientName is required")
		return
	}

	sub := tracker.Submission{
		ClientName: req.ClientName,
		Date:       req.Date,
		Incoming:   toLineItems(req.Incoming),
		Outgoing:   toLineItems(req.Outgoing),
	}

	inserted, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		var verr *tracker.ValidationError
		if errors.As(err, &verr) {
			middleware.WriteError(w, http.StatusBadRequest, "No valid rows to insert")
			return
		}
		h.log.Error().Err(err).Str("client", req.ClientName).Msg("Failed to store submission")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to append to sheet")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"inserted": inserted,
	})
}

// ListClients handles GET /clients. An optional q parameter narrows the
// directory with the case-insensitive autocomplete match.
func (h *TrackerHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.FilterClients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list clients")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list clients")
		return
	}

	// Return an empty array rather than null for frontend compatibility
	if clients == nil {
		clients = []string{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"clients": clients,
		"count":   len(clients),
	})
}

// ClientSummary handles GET /client-summary
func (h *TrackerHandler) ClientSummary(w http.ResponseWriter, r *http.Request) {
	client := r.URL.Query().Get("client")
	if client == "" {
		middleware.WriteError(w, http.StatusBadRequest, "client query parameter is required")
		return
	}

	totals, err := h.svc.SummarizeClient(r.Context(), client)
	if err != nil {
		h.log.Error().Err(err).Str("client", client).Msg("Failed to summarize client")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to summarize client")
		return
	}

	rows := make([][]interface{}, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []interface{}{t.ModelNo, t.In, t.Out})
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"headers": []string{"Model No", "IN", "OUT"},
		"rows":    rows,
	})
}

// ClientDetails handles GET /client-details
func (h *TrackerHandler) ClientDetails(w http.ResponseWriter, r *http.Request) {
	client := r.URL.Query().Get("client")
	if client == "" {
		middleware.WriteError(w, http.StatusBadRequest, "client query parameter is required")
		return
	}

	details, err := h.svc.ClientDetails(r.Context(), client)
	if err != nil {
		h.log.Error().Err(err).Str("client", client).Msg("Failed to load client details")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load client details")
		return
	}

	rows := make([][]interface{}, 0, len(details))
	for _, d := range details {
		rows = append(rows, []interface{}{d.Timestamp, d.Date, d.ModelNo, d.BatchNo, d.Qty, d.Status})
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"headers": []string{"TimeStamp", "Date", "Model No", "Batch No", "Qty", "Status"},
		"rows":    rows,
	})
}

// OverallSummary handles GET /overall-summary
func (h *TrackerHandler) OverallSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.OverallSummary(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build overall summary")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to build overall summary")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, summary)
}
