package dedrone_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vigilsky/dronewatch/internal/dedrone"
)

func TestGetAlert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alerts/al_1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Dedrone-Auth"); got != "secret" {
			t.Errorf("auth header = %q", got)
		}
		w.Write([]byte(`{
			"detections": [{"identification": {"detectionType": "remote"}}],
			"activatedZones": [{"label": "PPV_Monitor"}]
		}`))
	}))
	defer srv.Close()

	c := dedrone.NewClient(srv.URL, "Dedrone-Auth", "secret")
	a, err := c.GetAlert(context.Background(), "al_1")
	if err != nil {
		t.Fatalf("GetAlert: %v", err)
	}
	if a.ID != "al_1" {
		t.Errorf("ID = %q, want fallback to requested id", a.ID)
	}
	if _, ok := a.RemoteDetection(); !ok {
		t.Error("expected remote detection in decoded alert")
	}
}

func TestGetAlert_RemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := dedrone.NewClient(srv.URL, "", "")
	if _, err := c.GetAlert(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestGetAlert_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := dedrone.NewClient(srv.URL, "", "")
	if _, err := c.GetAlert(context.Background(), "al_1"); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
