package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"woodsim/internal/domain/game"
)

type staticStats game.Summary

func (s staticStats) Snapshot() game.Summary { return game.Summary(s) }

func newTestServer(t *testing.T, stats StatsSource, hub *Hub) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	NewStatusHandler(zap.NewNop().Sugar(), stats, hub).Router(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleStats(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	stats := staticStats{
		RunID:  "run-3",
		Total:  3,
		Counts: map[game.Outcome]int{game.OutcomeBlack: 1, game.OutcomeWhite: 2},
	}
	srv := newTestServer(t, stats, NewHub(zap.NewNop().Sugar()))

	// --- Act ---
	resp, err := http.Get(srv.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	// --- Assert ---
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Status int          `json:"Status"`
		Body   game.Summary `json:"Body"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, http.StatusOK, body.Status)
	require.Equal(t, "run-3", body.Body.RunID)
	require.Equal(t, 2, body.Body.Counts[game.OutcomeWhite])
}

func TestHub_BroadcastsResults(t *testing.T) {
	t.Parallel()

	hub := NewHub(zap.NewNop().Sugar())
	srv := newTestServer(t, staticStats{}, hub)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	result := game.Result{RunID: "run-9", GameIndex: 5, WhiteStone: "tb", Outcome: game.OutcomeWhite}
	require.NoError(t, hub.Observe(context.Background(), result))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got game.Result
	require.NoError(t, conn.ReadJSON(&got))
	require.Equal(t, 5, got.GameIndex)
	require.Equal(t, "tb", got.WhiteStone)
	require.Equal(t, game.OutcomeWhite, got.Outcome)

	hub.Close()
	_, _, err = conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "expected a normal close, got %v", err)
	require.Equal(t, 0, hub.Clients())
}

func TestHub_ObserveWithoutClients(t *testing.T) {
	t.Parallel()
	hub := NewHub(zap.NewNop().Sugar())

	require.NoError(t, hub.Observe(context.Background(), game.Result{GameIndex: 1}))
}

func TestServer_StartShutdown(t *testing.T) {
	t.Parallel()
	log := zap.NewNop().Sugar()
	handler := NewStatusHandler(log, staticStats{Total: 1}, NewHub(log))

	srv, err := NewServer("127.0.0.1:0", handler, log)
	require.NoError(t, err)
	srv.Start()

	resp, err := http.Get("http://" + srv.Addr() + "/stats")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestHealthServer(t *testing.T) {
	t.Parallel()

	hs, err := NewHealthServer("127.0.0.1:0", zap.NewNop().Sugar())
	require.NoError(t, err)
	hs.Start()
	defer hs.Stop()

	conn, err := grpc.NewClient(hs.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	check := func() healthpb.HealthCheckResponse_ServingStatus {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		require.NoError(t, err)
		return resp.GetStatus()
	}

	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check())
	hs.SetServing(true)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, check())
	hs.SetServing(false)
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check())
}
