package spectate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/game"
)

func startTestHub(t *testing.T) (*Hub, string, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws", cancel
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("viewers = %d, want %d", hub.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func testSnapshot(score int) game.Snapshot {
	return game.Snapshot{
		Width:   40,
		Height:  20,
		State:   "running",
		Player:  game.Sprite{X: 20, Y: 10, Glyph: '@', Class: "player"},
		Enemies: []game.Sprite{{X: 3.5, Y: 4, Glyph: 'e', Class: "enemy-e"}},
		HUD:     game.HUD{Time: "00:42", Score: score, Health: 90, MaxHealth: 100, Level: 2},
	}
}

func TestViewerReceivesLatestOnConnect(t *testing.T) {
	hub, url, _ := startTestHub(t)
	if err := hub.Publish(testSnapshot(100)); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	v, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer v.Close()
	v.conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	f, err := v.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if f.Seq != 1 || f.Snapshot.HUD.Score != 100 {
		t.Errorf("frame = seq %d score %d, want seq 1 score 100", f.Seq, f.Snapshot.HUD.Score)
	}
	if len(f.Snapshot.Enemies) != 1 || f.Snapshot.Enemies[0].Glyph != 'e' || f.Snapshot.Enemies[0].X != 3.5 {
		t.Errorf("enemies = %+v", f.Snapshot.Enemies)
	}
	if f.Snapshot.Player.Glyph != '@' || f.Snapshot.HUD.Time != "00:42" {
		t.Errorf("snapshot = %+v", f.Snapshot)
	}
}

func TestPublishFansOut(t *testing.T) {
	hub, url, _ := startTestHub(t)

	var viewers []*Viewer
	for range 2 {
		v, err := Dial(context.Background(), url)
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		defer v.Close()
		viewers = append(viewers, v)
	}
	waitForClients(t, hub, 2)

	if err := hub.Publish(testSnapshot(7)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	for i, v := range viewers {
		v.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		f, err := v.Next()
		if err != nil {
			t.Fatalf("viewer %d Next: %v", i, err)
		}
		if f.Snapshot.HUD.Score != 7 {
			t.Errorf("viewer %d score = %d, want 7", i, f.Snapshot.HUD.Score)
		}
	}
}

func TestViewerDisconnectUnregisters(t *testing.T) {
	hub, url, _ := startTestHub(t)
	v, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	waitForClients(t, hub, 1)

	v.Close()
	waitForClients(t, hub, 0)
}

func TestStoppedHubClosesViewers(t *testing.T) {
	hub, url, cancel := startTestHub(t)
	v, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer v.Close()
	waitForClients(t, hub, 1)

	cancel()
	v.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := v.Next(); err == nil {
		t.Error("Next succeeded after hub stopped")
	}
}

func TestHealthz(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
}
