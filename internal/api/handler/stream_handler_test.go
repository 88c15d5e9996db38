package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/dashboard"
	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
	"github.com/lifeline/response-dashboard/internal/infrastructure/changefeed"
)

type streamFrame struct {
	Type    string          `json:"type"`
	Panel   string          `json:"panel"`
	Version uint64          `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func fastPeriods() dashboard.Periods {
	return dashboard.Periods{
		GPS:           10 * time.Millisecond,
		AmbulanceETA:  10 * time.Millisecond,
		PatientETA:    10 * time.Millisecond,
		Notifications: 10 * time.Millisecond,
	}
}

// newStreamServer serves the stream handler behind a middleware that injects claims, as the
// Auth middleware would.
func newStreamServer(t *testing.T, h *StreamHandler, withClaims bool) *httptest.Server {
	t.Helper()
	e := echo.New()
	claims := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if withClaims {
				c.Set("user_id", "staff-1")
				c.Set("role", domain.RoleHospitalStaff)
			}
			return next(c)
		}
	}
	e.GET("/v1/dashboard/stream", h.Stream, claims)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/dashboard/stream"
}

func readUntil(t *testing.T, conn *websocket.Conn, done func(streamFrame) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(deadline)
		var msg streamFrame
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if done(msg) {
			return
		}
	}
	t.Fatalf("condition not met before deadline")
}

func TestStreamHandler_StreamsSimulatedPanels(t *testing.T) {
	h := NewStreamHandler(nil, nil, nil, StreamOptions{Periods: fastPeriods()}, zerolog.Nop())
	srv := newStreamServer(t, h, true)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	seen := map[string]bool{}
	readUntil(t, conn, func(m streamFrame) bool {
		if m.Type == MessageFrame && m.Version > 0 {
			seen[m.Panel] = true
		}
		return len(seen) == 4
	})

	for _, panel := range []string{dashboard.PanelAmbulances, dashboard.PanelGPS, dashboard.PanelPatients, dashboard.PanelNotifications} {
		if !seen[panel] {
			t.Fatalf("panel %q never ticked", panel)
		}
	}
}

func TestStreamHandler_BridgedPanelFollowsChanges(t *testing.T) {
	hub := changefeed.NewHub()
	posts := &stubCommunityService{
		listFn: func(ctx context.Context) ([]domain.CommunityPost, error) {
			return []domain.CommunityPost{{ID: "p1"}}, nil
		},
	}
	requests := &stubRequestService{
		listFn: func(ctx context.Context, in ports.ListRequestsInput) ([]domain.EmergencyRequest, error) {
			if in.Role != domain.RoleHospitalStaff || in.UserID != "staff-1" {
				t.Errorf("request listing not scoped to caller: %+v", in)
			}
			return nil, nil
		},
	}
	h := NewStreamHandler(posts, requests, hub, StreamOptions{Periods: dashboard.DefaultPeriods()}, zerolog.Nop())
	srv := newStreamServer(t, h, true)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	readUntil(t, conn, func(m streamFrame) bool {
		return m.Panel == dashboard.PanelCommunity && m.Version == 1
	})

	_ = hub.Publish(context.Background(), ports.ChangeEvent{Kind: domain.KindCommunityPosts})
	readUntil(t, conn, func(m streamFrame) bool {
		return m.Panel == dashboard.PanelCommunity && m.Version == 2
	})

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers(domain.KindCommunityPosts) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscription not released after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamHandler_RejectsUnknownOrigin(t *testing.T) {
	h := NewStreamHandler(nil, nil, nil, StreamOptions{AllowedOrigins: []string{"https://app.example"}}, zerolog.Nop())
	srv := newStreamServer(t, h, true)

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
}

func TestStreamHandler_AllowsListedOrigin(t *testing.T) {
	h := NewStreamHandler(nil, nil, nil, StreamOptions{AllowedOrigins: []string{"https://app.example"}}, zerolog.Nop())
	srv := newStreamServer(t, h, true)

	header := http.Header{"Origin": []string{"https://app.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()
}

func TestStreamHandler_RequiresClaims(t *testing.T) {
	h := NewStreamHandler(nil, nil, nil, StreamOptions{}, zerolog.Nop())
	srv := newStreamServer(t, h, false)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}
