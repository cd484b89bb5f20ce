package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mingpan/mingpan/internal/domain"
)

func TestNew_SetsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	req, err := BuildGet(context.Background(), srv.URL, "/", nil)
	if err != nil {
		t.Fatalf("BuildGet: %v", err)
	}
	resp, err := New(DefaultConfig()).Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if !strings.HasPrefix(got, "mingpan/") {
		t.Fatalf("User-Agent=%q", got)
	}
}

func TestNew_KeepsCallerUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("User-Agent", "custom")
	resp, err := New(DefaultConfig()).Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if got != "custom" {
		t.Fatalf("User-Agent=%q", got)
	}
}

func TestFromGeocode(t *testing.T) {
	cfg := FromGeocode(domain.GeocodeConfig{TimeoutMS: 2500})
	if cfg.Timeout != 2500*time.Millisecond {
		t.Fatalf("Timeout=%v", cfg.Timeout)
	}
	if FromGeocode(domain.GeocodeConfig{}).Timeout != DefaultConfig().Timeout {
		t.Fatalf("zero timeout should keep the default")
	}
}
