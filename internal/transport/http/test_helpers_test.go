package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chessmate-server/internal/config"
	"github.com/vovakirdan/chessmate-server/internal/core"
	"github.com/vovakirdan/chessmate-server/internal/proto"
)

// wireOutbound mirrors proto.Outbound with the payload left raw.
type wireOutbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.StaticDir = ""
	cfg.RoomIdleTTL = 0
	return cfg
}

func startTestServer(t *testing.T, cfg config.Config) (*httptest.Server, *core.Hub) {
	t.Helper()

	logger := zerolog.Nop()
	hub := core.NewHub(core.Options{
		InitialPosition: cfg.InitialPosition,
		DefaultRating:   cfg.DefaultRating,
		Logger:          &logger,
		Registry:        []core.RegistryOption{core.WithCoinFlip(func() bool { return true })},
	})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, nil, &cfg, &logger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, hub
}

// dial opens a socket and consumes the session greeting.
func dial(ctx context.Context, t *testing.T, ts *httptest.Server) (*websocket.Conn, string) {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })

	out := readEvent(ctx, t, conn, "session")
	var greeting proto.EventSession
	require.NoError(t, json.Unmarshal(out.Data, &greeting))
	require.NotEmpty(t, greeting.ID)
	return conn, greeting.ID
}

func send(ctx context.Context, t *testing.T, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}))
}

// readEvent reads frames until one with the given event name arrives.
func readEvent(ctx context.Context, t *testing.T, conn *websocket.Conn, event string) wireOutbound {
	t.Helper()

	for {
		var out wireOutbound
		require.NoError(t, wsjson.Read(ctx, conn, &out), "waiting for %s", event)
		if out.Event == event {
			return out
		}
	}
}
