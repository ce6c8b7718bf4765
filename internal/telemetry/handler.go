package telemetry

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// defaultThresholdMS is the breach threshold applied when a request leaves
// it unset.
const defaultThresholdMS = 180

// StatsRequest is the body of a latency aggregation request.
type StatsRequest struct {
	Regions     []string `json:"regions"`
	ThresholdMS float64  `json:"threshold_ms"`
}

// Handler serves POST requests that aggregate the telemetry collection by
// region.
type Handler struct {
	records []Record
	logger  *zap.Logger
}

// NewHandler returns a handler over a fixed telemetry collection. A nil
// logger is replaced with a no-op logger.
func NewHandler(records []Record, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{records: records, logger: logger}
}

// ServeHTTP answers a StatsRequest with a region-keyed JSON object of
// RegionStats. Only POST is accepted; malformed bodies get a 400.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("bad_request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ThresholdMS <= 0 {
		req.ThresholdMS = defaultThresholdMS
	}

	stats := Aggregate(h.records, req.Regions, req.ThresholdMS)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.logger.Error("encode_response_failed", zap.Error(err))
	}
}
