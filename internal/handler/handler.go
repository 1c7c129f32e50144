package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	units "github.com/docker/go-units"

	"topoconf/internal/codec"
	"topoconf/internal/domain"
	"topoconf/internal/service"
)

// DefaultMaxBodyBytes bounds request bodies accepted by save, import and save_simulation
const DefaultMaxBodyBytes = 10 << 20

// Envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WelcomeText is served at the root path
const WelcomeText = "Welcome to the Topology Configuration Server!"

// SimulationAck is the fixed reply of the legacy save_simulation endpoint
const SimulationAck = "Simulation configuration saved successfully!"

// Envelope wraps topology responses
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// TopologyHandler handles topology API requests
type TopologyHandler struct {
	svc          *service.TopologyService
	reports      *service.ReportService
	logger       *log.Logger
	maxBodyBytes int64
}

// NewTopologyHandler creates a new topology handler
func NewTopologyHandler(svc *service.TopologyService, reports *service.ReportService, logger *log.Logger) *TopologyHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &TopologyHandler{
		svc:          svc,
		reports:      reports,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// WithMaxBodyBytes sets the request body limit
func (h *TopologyHandler) WithMaxBodyBytes(n int64) *TopologyHandler {
	if n > 0 {
		h.maxBodyBytes = n
	}
	return h
}

// Home returns the plain-text welcome message
func (h *TopologyHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, WelcomeText)
}

// LoadTopology returns the current record
func (h *TopologyHandler) LoadTopology(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, Envelope{Status: StatusSuccess, Data: h.svc.Load()}, http.StatusOK)
}

// SaveTopology replaces the record with the JSON body
func (h *TopologyHandler) SaveTopology(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if _, err := h.svc.Save(r.Context(), body); err != nil {
		h.writeServiceError(w, "save topology", err)
		return
	}

	h.writeJSON(w, Envelope{Status: StatusSuccess, Message: "Topology saved."}, http.StatusOK)
}

// ResetTopology restores the default record
func (h *TopologyHandler) ResetTopology(w http.ResponseWriter, r *http.Request) {
	h.svc.Reset(r.Context())
	h.writeJSON(w, Envelope{Status: StatusSuccess, Message: "Topology reset to default."}, http.StatusOK)
}

// StaticTopology returns the visualization layout of the current record, unwrapped
func (h *TopologyHandler) StaticTopology(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Layout(), http.StatusOK)
}

// NetworkMetrics returns the placeholder QoS metrics, unwrapped
func (h *TopologyHandler) NetworkMetrics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Metrics(), http.StatusOK)
}

// QoSReport streams the report file as an attachment
func (h *TopologyHandler) QoSReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Open()
	if err != nil {
		h.writeServiceError(w, "open report", err)
		return
	}
	defer report.Close()

	h.logger.Debug("serving report", "name", report.Name, "size", units.HumanSize(float64(report.Size)))

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": report.Name}))
	http.ServeContent(w, r, report.Name, report.ModTime, report)
}

// SaveSimulation accepts any JSON payload, logs it and stores nothing.
// Kept for older clients that still post here.
func (h *TopologyHandler) SaveSimulation(w http.ResponseWriter, r *http.Request) {
	var payload interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)).Decode(&payload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		h.writeError(w, fmt.Sprintf("invalid simulation payload: %v", err), http.StatusBadRequest)
		return
	}

	h.logger.Info("received simulation data", "payload", payload)
	h.writeJSON(w, map[string]string{"message": SimulationAck}, http.StatusOK)
}

// ExportTopology returns the current record as a downloadable document
func (h *TopologyHandler) ExportTopology(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	c, err := codec.ForFormat(format)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Export(c, &buf); err != nil {
		h.logger.Error("failed to export topology", "format", c.Format(), "err", err)
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", c.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": "topology." + c.Extension()}))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ImportTopology replaces the record with a JSON or YAML document.
// The format comes from ?format= or, failing that, the Content-Type.
func (h *TopologyHandler) ImportTopology(w http.ResponseWriter, r *http.Request) {
	var c codec.Codec
	if format := r.URL.Query().Get("format"); format != "" {
		var err error
		if c, err = codec.ForFormat(format); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		c = codec.ForContentType(r.Header.Get("Content-Type"))
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if _, err := h.svc.Import(r.Context(), c, body, domain.RevisionImport); err != nil {
		h.writeServiceError(w, "import topology", err)
		return
	}

	h.writeJSON(w, Envelope{Status: StatusSuccess, Message: "Topology imported."}, http.StatusOK)
}

// TopologyHistory returns journaled revisions, newest first
func (h *TopologyHandler) TopologyHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = n
	}

	revs, err := h.svc.History(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, "list history", err)
		return
	}

	h.writeJSON(w, Envelope{Status: StatusSuccess, Data: revs}, http.StatusOK)
}

// Helper methods

// writeServiceError maps service errors onto HTTP statuses
func (h *TopologyHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		h.writeError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, service.ErrMalformedTopology):
		h.logger.Debug("rejected payload", "op", op, "err", err)
		h.writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrReportNotFound):
		h.writeError(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("request failed", "op", op, "err", err)
		h.writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *TopologyHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(w, h.logger, data, statusCode)
}

func (h *TopologyHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, h.logger, Envelope{Status: StatusError, Message: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON", "err", err)
	}
}
