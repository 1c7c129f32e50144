package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topoconf/internal/domain"
	"topoconf/internal/repository/memory"
	"topoconf/internal/repository/sqlite"
	"topoconf/internal/service"
)

type fixture struct {
	store  *memory.Store
	router http.Handler
	report string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	journal, err := sqlite.New(sqlite.MemoryDSN, 100)
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	logger := log.New(io.Discard)
	store := memory.New()
	svc := service.NewTopologyService(store, journal, service.NewEventBus(), logger)

	report := filepath.Join(t.TempDir(), "test.txt")
	h := NewTopologyHandler(svc, service.NewReportService(report), logger)

	return &fixture{
		store:  store,
		router: NewRouter(h, RouterOptions{Logger: logger}),
		report: report,
	}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHome(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, WelcomeText, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
}

func TestLoadDefault(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/topology/load", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `{
		"status": "success",
		"data": {
			"numUPFs": 0,
			"upfConfigs": [],
			"numGNBs": 0,
			"gnbAssignments": {},
			"links": [],
			"dnsName": "Remote Surgery",
			"dnsUpfConnections": []
		}
	}`, rec.Body.String())
}

func TestSaveThenLoad(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/topology/save",
		`{"numUPFs":2,"upfConfigs":[{"type":"edge"},{}],"numGNBs":1,"gnbAssignments":{"0":[1]},"links":[{"nodeA":"upf0","nodeB":"upf1"}],"numUEs":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","message":"Topology saved."}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/topology/load", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	data := env["data"].(map[string]any)
	assert.EqualValues(t, 2, data["numUPFs"])
	assert.EqualValues(t, 1, data["numGNBs"])
	assert.Equal(t, "Remote Surgery", data["dnsName"])
	assert.Equal(t, []any{}, data["dnsUpfConnections"])
	assert.NotContains(t, data, "numUEs")
}

func TestSaveMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"numUPFs":`},
		{"empty body", ``},
		{"null", `null`},
		{"array", `[1,2]`},
		{"wrong type", `{"numUPFs":"three"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			before := f.do(t, http.MethodPost, "/api/topology/save", `{"numUPFs":4}`)
			require.Equal(t, http.StatusOK, before.Code)

			req := httptest.NewRequest(http.MethodPost, "/api/topology/save", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, StatusError, env["status"])
			assert.NotEmpty(t, env["message"])

			assert.Equal(t, 4, f.store.Get().UPFCount, "store must be untouched")
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
	}{
		{"save", "/api/topology/save", "application/json", `{"numUPFs":1,"dnsName":"far too long for the limit"}`},
		{"import yaml", "/api/topology/import?format=yaml", "application/x-yaml", "numUPFs: 1\ndnsName: far too long for the limit\n"},
		{"import json", "/api/topology/import", "application/json", `{"numUPFs":1,"dnsName":"far too long for the limit"}`},
		{"save_simulation", "/save_simulation", "application/json", `{"numUPFs":1,"dnsName":"far too long for the limit"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := log.New(io.Discard)
			store := memory.New()
			svc := service.NewTopologyService(store, nil, nil, logger)
			h := NewTopologyHandler(svc, service.NewReportService("test.txt"), logger).WithMaxBodyBytes(16)
			router := NewRouter(h, RouterOptions{Logger: logger})

			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
			assert.Equal(t, StatusError, decodeEnvelope(t, rec)["status"])
			assert.Equal(t, domain.DefaultTopology(), store.Get())
		})
	}
}

func TestResetIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/topology/save", `{"numUPFs":3,"dnsName":"Core"}`)

	for i := 0; i < 2; i++ {
		rec := f.do(t, http.MethodPost, "/api/topology/reset", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"success","message":"Topology reset to default."}`, rec.Body.String())
		assert.Equal(t, domain.DefaultTopology(), f.store.Get())
	}
}

func TestStaticTopologyScenario(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/topology/save", `{"numUPFs":3,"gnbAssignments":{"0":[0,1]}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/simulation/static_topology", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var layout domain.VisualizationLayout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layout))

	third, twoThirds := 1.0/3.0, 2.0/3.0
	assert.Equal(t, []domain.Point{
		{X: third, Y: third},
		{X: twoThirds, Y: third},
		{X: third, Y: twoThirds},
	}, layout.UPFCoords)
	assert.Equal(t, map[string][]int{"0": {0, 1}}, layout.GNBAssignments)
	assert.Empty(t, layout.Links)
	assert.Equal(t, "Remote Surgery", layout.DNSName)
	assert.Empty(t, layout.DNSUPFConnections)
}

func TestStaticTopologyEmpty(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/simulation/static_topology", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"upfCoords": [],
		"gnbAssignments": {},
		"links": [],
		"dnsName": "Remote Surgery",
		"dnsUpfConnections": []
	}`, rec.Body.String())
}

func TestNetworkMetrics(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/network-metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"latency":4,"packetLoss":2,"jitter":2}`, rec.Body.String())
}

func TestQoSReport(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/qos-report", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, StatusError, decodeEnvelope(t, rec)["status"])
	})

	t.Run("present", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, os.WriteFile(f.report, []byte("latency ok\n"), 0o644))

		rec := f.do(t, http.MethodGet, "/api/qos-report", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "latency ok\n", rec.Body.String())
		assert.Equal(t, "attachment; filename=test.txt", rec.Header().Get("Content-Disposition"))
	})
}

func TestSaveSimulation(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/topology/save", `{"numUPFs":2}`)
	before := f.store.Get()

	rec := f.do(t, http.MethodPost, "/save_simulation", `{"numUPFs":9,"anything":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"`+SimulationAck+`"}`, rec.Body.String())
	assert.Same(t, before, f.store.Get())

	rec = f.do(t, http.MethodPost, "/save_simulation", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Same(t, before, f.store.Get())
}

func TestExportImport(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/topology/save", `{"numUPFs":2,"numGNBs":3,"dnsName":"Core","dnsUpfConnections":[1]}`)
	saved := f.store.Get()

	rec := f.do(t, http.MethodGet, "/api/topology/export?format=yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=topology.yaml", rec.Header().Get("Content-Disposition"))
	exported := rec.Body.String()
	assert.Contains(t, exported, "numUPFs: 2")

	f.do(t, http.MethodPost, "/api/topology/reset", "")

	req := httptest.NewRequest(http.MethodPost, "/api/topology/import", strings.NewReader(exported))
	req.Header.Set("Content-Type", "application/x-yaml")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, saved, f.store.Get())

	rec = f.do(t, http.MethodGet, "/api/topology/export?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/topology/import?format=yaml", "numUPFs: [")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, saved, f.store.Get())
}

func TestTopologyHistory(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/topology/save", `{"numUPFs":1}`)
	f.do(t, http.MethodPost, "/api/topology/reset", "")

	rec := f.do(t, http.MethodGet, "/api/topology/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Data   []domain.Revision `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatusSuccess, body.Status)
	require.Len(t, body.Data, 2)
	assert.Equal(t, domain.RevisionReset, body.Data[0].Action)
	assert.Equal(t, domain.RevisionSave, body.Data[1].Action)
	assert.Equal(t, 1, body.Data[1].Record.UPFCount)

	rec = f.do(t, http.MethodGet, "/api/topology/history?limit=1", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)

	rec = f.do(t, http.MethodGet, "/api/topology/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS(t *testing.T) {
	f := newFixture(t)

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/", ""},
		{http.MethodGet, "/api/topology/load", ""},
		{http.MethodPost, "/api/topology/save", `{}`},
		{http.MethodPost, "/api/topology/reset", ""},
		{http.MethodGet, "/api/simulation/static_topology", ""},
		{http.MethodGet, "/api/network-metrics", ""},
		{http.MethodGet, "/api/qos-report", ""},
		{http.MethodPost, "/save_simulation", `{}`},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			var body io.Reader
			if rt.body != "" {
				body = strings.NewReader(rt.body)
			}
			req := httptest.NewRequest(rt.method, rt.path, body)
			req.Header.Set("Origin", "http://localhost:3000")
			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)

			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/topology/save", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Less(t, rec.Code, 300)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})
}

func TestRecover(t *testing.T) {
	logger := log.New(io.Discard)
	h := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"internal server error"}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, StatusError, decodeEnvelope(t, rec)["status"])
}
