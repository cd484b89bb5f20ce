package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mingpan/mingpan/internal/domain"
)

// BuildGet builds a GET request for base joined with path, carrying query.
func BuildGet(ctx context.Context, base, path string, query url.Values) (*http.Request, error) {
	const op = "httpclient.build"
	if strings.TrimSpace(base) == "" {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("base url is empty")}
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: err}
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
