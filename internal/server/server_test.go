package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/onboard/internal/metrics"
	"github.com/imamik/onboard/internal/onboarding"
)

type harness struct {
	t       *testing.T
	srv     *Server
	handler http.Handler
	rec     *metrics.Recorder

	mu        sync.Mutex
	delivered []onboarding.FormState
}

func newHarness(t *testing.T, opts ...Option) *harness {
	h := &harness{t: t, rec: metrics.New()}
	h.srv = New(func() *onboarding.Wizard {
		return onboarding.NewWizard(
			onboarding.DelivererFunc(func(_ context.Context, f onboarding.FormState) error {
				h.mu.Lock()
				defer h.mu.Unlock()
				h.delivered = append(h.delivered, f)
				return nil
			}),
			onboarding.WithSleep(func(time.Duration) {}),
		)
	}, append([]Option{WithMetrics(h.rec)}, opts...)...)
	h.handler = h.srv.Handler()
	return h
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) create() string {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/v1/sessions", "")
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())
	var sv SessionView
	require.NoError(h.t, json.NewDecoder(rec.Body).Decode(&sv))
	return sv.ID
}

func (h *harness) command(id, body string) StateView {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/v1/sessions/"+id+"/commands", body)
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	var st StateView
	require.NoError(h.t, json.NewDecoder(rec.Body).Decode(&st))
	return st
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var ev errorView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ev))
	return ev.Error
}

func TestCreateSession(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var sv SessionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sv))
	assert.Len(t, sv.ID, 36)
	assert.Equal(t, "INTRO", sv.State.Step)
	assert.Equal(t, 0, sv.State.Index)
	assert.Equal(t, onboarding.PhaseIdle, sv.State.Phase)
	require.Len(t, sv.State.Sections, 4)
	assert.Equal(t, onboarding.SectionActive, sv.State.Sections[0].Status)
	assert.Equal(t, 1, h.srv.sessions.len())
}

func TestGetSession(t *testing.T) {
	h := newHarness(t)
	id := h.create()

	rec := h.do(http.MethodGet, "/v1/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st StateView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "INTRO", st.Step)
	assert.Nil(t, st.Form.ProductA.Image)
}

func TestUnknownSession(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{
		"/v1/sessions/0b6f3b1e-8a4c-4c1e-9d55-3f7c2b1a9e10",
		"/v1/sessions/not-a-uuid",
	} {
		rec := h.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, errSessionNotFound.Error(), decodeError(t, rec))
	}

	rec := h.do(http.MethodPost, "/v1/sessions/not-a-uuid/commands", `{"type":"advance"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodDelete, "/v1/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommandsNavigateAndEdit(t *testing.T) {
	h := newHarness(t)
	id := h.create()

	st := h.command(id, `{"type":"advance"}`)
	assert.Equal(t, "NAME", st.Step)
	assert.Equal(t, onboarding.SectionPast, st.Sections[0].Status)

	st = h.command(id, `{"type":"set-field","field":"businessName","value":"Luna"}`)
	assert.Equal(t, "Luna", st.Form.BusinessName)

	st = h.command(id, `{"type":"set-product-field","product":"productB","field":"price","value":"9.90"}`)
	assert.Equal(t, "9.90", st.Form.ProductB.Price)
	assert.Empty(t, st.Form.ProductA.Price)

	st = h.command(id, `{"type":"set-product-field","product":"productA","field":"image","value":"data:image/png;base64,AA=="}`)
	require.NotNil(t, st.Form.ProductA.Image)

	st = h.command(id, `{"type":"set-product-field","product":"productA","field":"image"}`)
	assert.Nil(t, st.Form.ProductA.Image)

	h.command(id, `{"type":"retreat"}`)
	st = h.command(id, `{"type":"retreat"}`)
	assert.Equal(t, "INTRO", st.Step)
	assert.Equal(t, "Luna", st.Form.BusinessName)
}

func TestBadCommands(t *testing.T) {
	h := newHarness(t)
	id := h.create()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `advance`},
		{"unknown property", `{"type":"advance","extra":1}`},
		{"unknown type", `{"type":"jump"}`},
		{"unknown field", `{"type":"set-field","field":"nickname","value":"x"}`},
		{"unknown product", `{"type":"set-product-field","product":"productC","field":"name","value":"x"}`},
		{"missing value", `{"type":"set-field","field":"email"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(http.MethodPost, "/v1/sessions/"+id+"/commands", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}

	rec := h.do(http.MethodGet, "/v1/sessions/"+id, "")
	var st StateView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "INTRO", st.Step)
	assert.Equal(t, onboarding.FormState{}, st.Form)
}

func TestAdvanceAtFinanceSubmitsAndDropsSession(t *testing.T) {
	h := newHarness(t)
	id := h.create()

	h.command(id, `{"type":"set-field","field":"financeDetails","value":"cash"}`)
	var st StateView
	for i := 0; i < onboarding.IndexOf(onboarding.StepFinance); i++ {
		st = h.command(id, `{"type":"advance"}`)
	}
	require.Equal(t, "FINANCE", st.Step)
	assert.Equal(t, 1, h.srv.sessions.len())

	st = h.command(id, `{"type":"advance"}`)
	assert.Equal(t, "SUCCESS", st.Step)
	assert.Equal(t, onboarding.PhaseTerminal, st.Phase)
	assert.False(t, st.Syncing)
	assert.InDelta(t, 1.0, st.Progress, 1e-9)

	h.mu.Lock()
	require.Len(t, h.delivered, 1)
	assert.Equal(t, "cash", h.delivered[0].FinanceDetails)
	h.mu.Unlock()

	// The final state has been read, so the session is gone.
	assert.Equal(t, 0, h.srv.sessions.len())
	rec := h.do(http.MethodGet, "/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitCommand(t *testing.T) {
	h := newHarness(t)
	id := h.create()

	st := h.command(id, `{"type":"submit"}`)
	assert.Equal(t, "SUCCESS", st.Step)
	assert.Len(t, h.delivered, 1)
}

func TestDeleteSession(t *testing.T) {
	h := newHarness(t)
	id := h.create()

	rec := h.do(http.MethodDelete, "/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, h.srv.sessions.len())

	rec = h.do(http.MethodDelete, "/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.create()
	h.create()

	rec := h.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "onboard_sessions_active 2")

	n, err := testutil.GatherAndCount(h.rec.Registry(), "onboard_sessions_active")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetricsEndpointDisabled(t *testing.T) {
	srv := New(func() *onboarding.Wizard { return onboarding.NewWizard(nil) })

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdleSessionsExpire(t *testing.T) {
	var (
		mu  sync.Mutex
		now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	tick := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	h := newHarness(t, WithSessionTTL(10*time.Minute), WithClock(clock))
	idle := h.create()
	active := h.create()
	assert.Contains(t, h.do(http.MethodGet, "/metrics", "").Body.String(), "onboard_sessions_active 2")

	tick(6 * time.Minute)
	h.command(active, `{"type":"advance"}`)
	assert.Zero(t, h.srv.ExpireIdle())

	tick(6 * time.Minute)
	assert.Equal(t, 1, h.srv.ExpireIdle())
	assert.Equal(t, 1, h.srv.sessions.len())
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/v1/sessions/"+idle, "").Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/v1/sessions/"+active, "").Code)
	assert.Contains(t, h.do(http.MethodGet, "/metrics", "").Body.String(), "onboard_sessions_active 1")
}

func TestExpiryDisabledWithoutTTL(t *testing.T) {
	h := newHarness(t)
	h.create()
	assert.Zero(t, h.srv.ExpireIdle())
	assert.Equal(t, 1, h.srv.sessions.len())
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := New(func() *onboarding.Wizard { return onboarding.NewWizard(nil) })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
