package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/config"
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/events"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
	"github.com/zeusync/skyloop/internal/core/observability/log"
	"github.com/zeusync/skyloop/internal/core/render"
)

type clickRecorder chan geom.Point

func (c clickRecorder) Click(p geom.Point) { c <- p }

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		if resp != nil {
			_ = resp.Body.Close()
		}
	})
	return conn
}

func newTestSpectator(t *testing.T, interval int) (*Spectator, *httptest.Server, clickRecorder) {
	t.Helper()
	clicks := make(clickRecorder, 4)
	cfg := config.Default().Spectator
	cfg.FrameInterval = interval
	s := NewSpectator(cfg, clicks, log.NewNop())
	srv := httptest.NewServer(NewHTTPServer(cfg, s, log.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return s, srv, clicks
}

func readJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, v))
}

func TestSpectator(t *testing.T) {
	t.Run("frames", func(t *testing.T) {
		s, srv, _ := newTestSpectator(t, 2)
		conn := dial(t, srv)
		require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 5*time.Millisecond)

		slot := &buffer.Slot{
			Step: 1,
			Drawables: []render.Drawable{
				{Kind: render.KindShip, Position: geom.P(3, 4), Category: render.CategoryHostile, Label: "Rook"},
			},
			Targets: []buffer.Target{{Ship: 9, Center: geom.P(3, 4), Radius: 10}},
			HUD:     buffer.HUD{System: "Sol"},
		}
		s.Render(slot) // skipped by the interval
		slot.Step = 2
		s.Render(slot)

		var got frameMessage
		readJSON(t, conn, &got)
		require.Equal(t, typeFrame, got.Type)
		require.Equal(t, 2, got.Step)
		require.Equal(t, "Sol", got.HUD.System)
		require.Len(t, got.Objects, 1)
		require.Equal(t, "ship", got.Objects[0].Kind)
		require.Equal(t, "hostile", got.Objects[0].Category)
		require.Equal(t, geom.P(3, 4), got.Objects[0].Position)
		require.Equal(t, uint64(9), got.Targets[0].Ship)
	})

	t.Run("events", func(t *testing.T) {
		s, srv, _ := newTestSpectator(t, 1)
		conn := dial(t, srv)
		require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 5*time.Millisecond)

		model := &content.ShipModel{Name: "Sparrow", Radius: 10, MaxHull: 100}
		gov := content.NewGovernment("Merchant", "yellow", false)
		target := models.NewShip("Victim", model, gov)
		require.NoError(t, s.OnEvent(events.New(events.Hit|events.Provoke, 7, 3, gov, target)))

		var got eventMessage
		readJSON(t, conn, &got)
		require.Equal(t, typeEvent, got.Type)
		require.Equal(t, "hit|provoke", got.Kind)
		require.Equal(t, 7, got.Step)
		require.Equal(t, uint64(3), got.Actor)
		require.Equal(t, uint64(target.ID()), got.Target)
	})

	t.Run("clicks", func(t *testing.T) {
		_, srv, clicks := newTestSpectator(t, 1)
		conn := dial(t, srv)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
		require.NoError(t, conn.WriteJSON(controlMessage{Action: "wave"}))
		require.NoError(t, conn.WriteJSON(controlMessage{Action: actionClick, X: 12, Y: -3}))

		select {
		case p := <-clicks:
			require.Equal(t, geom.P(12, -3), p)
		case <-time.After(2 * time.Second):
			t.Fatal("click was not forwarded")
		}
	})

	t.Run("close disconnects", func(t *testing.T) {
		s, srv, _ := newTestSpectator(t, 1)
		conn := dial(t, srv)
		require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 5*time.Millisecond)

		s.Close()
		require.Zero(t, s.Clients())
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, _, err := conn.ReadMessage()
		require.Error(t, err)
	})
}
