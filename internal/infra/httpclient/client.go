package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/mingpan/mingpan/internal/buildinfo"
	"github.com/mingpan/mingpan/internal/domain"
)

// Config tunes the outbound client used for place lookups.
type Config struct {
	// Total timeout per request, body included. A context deadline can still shorten it.
	Timeout time.Duration

	DialTimeout     time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConnsPerHost int

	// UserAgent is sent unless the request sets its own.
	UserAgent string
}

func DefaultConfig() Config {
	return Config{
		Timeout:             10 * time.Second,
		DialTimeout:         5 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      8 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 4,
		UserAgent:           "mingpan/" + buildinfo.Version,
	}
}

// FromGeocode applies the workspace geocode settings to the defaults.
func FromGeocode(g domain.GeocodeConfig) Config {
	cfg := DefaultConfig()
	if g.TimeoutMS > 0 {
		cfg.Timeout = time.Duration(g.TimeoutMS) * time.Millisecond
	}
	return cfg
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{Timeout: cfg.DialTimeout, KeepAlive: 30 * time.Second}

	var rt http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}
	if cfg.UserAgent != "" {
		rt = userAgent{next: rt, value: cfg.UserAgent}
	}

	return &http.Client{Transport: rt, Timeout: cfg.Timeout}
}

type userAgent struct {
	next  http.RoundTripper
	value string
}

func (u userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get("User-Agent") == "" {
		r = r.Clone(r.Context())
		r.Header.Set("User-Agent", u.value)
	}
	return u.next.RoundTrip(r)
}
