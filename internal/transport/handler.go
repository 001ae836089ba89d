package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"kakaku/internal/logging"
	"kakaku/internal/model"
	"kakaku/internal/pipeline"
	"kakaku/internal/record"
	"kakaku/internal/telemetry"
)

// Client-visible messages are fixed; internal error text only goes to the
// server-side log.
const (
	msgInvalidParameters = "Invalid Parameters"
	msgInternalError     = "Internal Server Error"
)

type predictResponse struct {
	Status    string  `json:"status"`
	Predicted float64 `json:"predicted"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler terminates one prediction request: parse, augment with the trade
// date, transform, score, render. All faults are absorbed here; nothing
// propagates past ServeHTTP.
type Handler struct {
	pipe *pipeline.Pipeline
	mdl  model.Model

	// now is read exactly once per request so a single, self-consistent
	// timestamp flows through the pipeline run. Swappable in tests.
	now func() time.Time
}

func NewHandler(p *pipeline.Pipeline, m model.Model) *Handler {
	return &Handler{pipe: p, mdl: m, now: time.Now}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	reqID := uuid.NewString()
	w.Header().Set("X-Request-Id", reqID)
	log := logging.With("request_id", reqID)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, msgInvalidParameters)
		telemetry.ObservePrediction("bad_request", started)
		return
	}

	rec, err := parseBody(r)
	if err != nil {
		log.Warn("rejected request", "err", err)
		writeError(w, http.StatusBadRequest, msgInvalidParameters)
		telemetry.ObservePrediction("bad_request", started)
		return
	}

	rec.Set(record.FieldTradeDate, record.Timestamp(h.now()))

	fv, err := h.pipe.Transform(rec)
	if err != nil {
		if errors.Is(err, record.ErrMalformedFeature) || errors.Is(err, record.ErrMissingField) {
			log.Warn("rejected request", "err", err)
			writeError(w, http.StatusBadRequest, msgInvalidParameters)
			telemetry.ObservePrediction("bad_request", started)
			return
		}
		log.Error("pipeline failure", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		telemetry.ObservePrediction("internal_error", started)
		return
	}

	predicted, err := h.score(fv)
	if err != nil {
		log.Error("model failure", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		telemetry.ObservePrediction("internal_error", started)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{Status: "OK", Predicted: predicted})
	telemetry.ObservePrediction("ok", started)
}

// score invokes the opaque model. A panicking artifact is request-fatal,
// never process-fatal.
func (h *Handler) score(fv record.Record) (predicted float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panic: %v", r)
		}
	}()
	return h.mdl.Predict(fv)
}

// parseBody decodes the JSON body and validates the raw-input contract:
// address non-empty text, area and building_year numeric. Unknown extra
// fields are tolerated and dropped.
func parseBody(r *http.Request) (record.Record, error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("body: %w: %v", record.ErrMalformedFeature, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("body: %w: empty record", record.ErrMalformedFeature)
	}

	rec := make(record.Record, 4)

	addr, err := stringField(payload, record.FieldAddress)
	if err != nil {
		return nil, err
	}
	rec.Set(record.FieldAddress, record.String(addr))

	for _, name := range []string{record.FieldArea, record.FieldBuildingYear} {
		n, err := numberField(payload, name)
		if err != nil {
			return nil, err
		}
		rec.Set(name, record.Number(n))
	}
	return rec, nil
}

func stringField(payload map[string]any, name string) (string, error) {
	v, ok := payload[name]
	if !ok {
		return "", fmt.Errorf("field %q: %w", name, record.ErrMissingField)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("field %q: %w: want non-empty string", name, record.ErrMalformedFeature)
	}
	return s, nil
}

func numberField(payload map[string]any, name string) (float64, error) {
	v, ok := payload[name]
	if !ok {
		return 0, fmt.Errorf("field %q: %w", name, record.ErrMissingField)
	}
	n, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %q: %w: want number, got %T", name, record.ErrMalformedFeature, v)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Status: "Error", Message: msg})
}
