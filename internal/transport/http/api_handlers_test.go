package http

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chessmate-server/internal/core"
)

func getJSON(t *testing.T, client *http.Client, url string, v any) int {
	t.Helper()

	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestRosterEndpoint(t *testing.T) {
	ts, hub := startTestServer(t, testConfig())

	bob := core.NewClient("conn-bob", 8)
	alice := core.NewClient("conn-alice", 8)
	hub.RegisterClient(bob)
	hub.RegisterClient(alice)
	hub.Dispatch(bob, &core.Command{Kind: core.CommandIdentify, Profile: core.Profile{UID: "u-bob", Name: "bob", Rating: 900}})
	hub.Dispatch(alice, &core.Command{Kind: core.CommandIdentify, Profile: core.Profile{UID: "u-alice", Name: "alice"}})

	var roster RosterResponse
	status := getJSON(t, ts.Client(), ts.URL+"/api/roster", &roster)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, roster.Users, 2)
	assert.Equal(t, "alice", roster.Users[0].Name)
	assert.Equal(t, 400, roster.Users[0].Rating)
	assert.Equal(t, "bob", roster.Users[1].Name)
	assert.Equal(t, 900, roster.Users[1].Rating)
}

func TestRoomEndpoint(t *testing.T) {
	ts, hub := startTestServer(t, testConfig())

	var missing ErrorResponse
	status := getJSON(t, ts.Client(), ts.URL+"/api/rooms/nowhere", &missing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "room not found", missing.Error)

	creator := core.NewClient("conn-1", 8)
	hub.RegisterClient(creator)
	hub.Dispatch(creator, &core.Command{Kind: core.CommandCreateRoom, Room: "open-game", ColorChoice: core.ChoiceWhite})

	var room RoomResponse
	status = getJSON(t, ts.Client(), ts.URL+"/api/rooms/open-game", &room)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, RoomResponse{
		ID:       "open-game",
		Status:   string(core.RoomWaiting),
		Players:  1,
		Position: testConfig().InitialPosition,
		Moves:    0,
	}, room)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>board</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := testConfig()
	cfg.StaticDir = dir
	ts, _ := startTestServer(t, cfg)

	read := func(path string) (int, string) {
		resp, err := ts.Client().Get(ts.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	status, body := read("/app.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "console.log(1)", body)

	status, body = read("/game/abc")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<html>board</html>", body)

	status, _ = read("/api/unknown")
	assert.Equal(t, http.StatusNotFound, status)
}
