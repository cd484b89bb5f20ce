package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/mingpan/mingpan/internal/domain"
)

func TestBuildGet(t *testing.T) {
	req, err := BuildGet(context.Background(), "https://maps.example.com/api/", "/timezone/json", url.Values{
		"location":  {"25.03,121.56"},
		"timestamp": {"0"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Method != http.MethodGet {
		t.Fatalf("expected GET, got %s", req.Method)
	}
	if req.URL.Path != "/api/timezone/json" {
		t.Fatalf("unexpected path %s", req.URL.Path)
	}
	if req.URL.Query().Get("location") != "25.03,121.56" {
		t.Fatalf("unexpected query %s", req.URL.RawQuery)
	}
	if req.Header.Get("Accept") != "application/json" {
		t.Fatalf("expected json accept header")
	}
}

func TestBuildGetEmptyBase(t *testing.T) {
	if _, err := BuildGet(context.Background(), " ", "x", nil); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}
