// Package authproxy delegates the /api/auth route group to the external
// authentication service.
//
// The shell never authenticates anything itself. With an upstream configured,
// requests are reverse-proxied to it; without one, every call under the
// prefix is answered with 503 so clients see a clear, non-200 failure.
package authproxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/hatif03/researcher/internal/config"
	"github.com/hatif03/researcher/internal/logger"
)

var (
	// ErrInvalidUpstream is returned when the upstream URL is not an absolute
	// http(s) URL.
	ErrInvalidUpstream = errors.New("invalid auth upstream url")
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// New returns the handler mounted at prefix. prefix is only used when
// cfg.StripPrefix is set.
func New(cfg config.Auth, prefix string, log *logger.Logger) (http.Handler, error) {
	if cfg.UpstreamURL == "" {
		log.Warn().Msg("auth upstream is not configured, auth routes will answer 503")
		return http.HandlerFunc(notConfigured), nil
	}

	target, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUpstream, err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUpstream, cfg.UpstreamURL)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: upstreamError,
	}

	log.Info().
		Str("upstream", target.String()).
		Bool("strip_prefix", cfg.StripsPrefix()).
		Msg("auth routes delegated to upstream")

	if cfg.StripsPrefix() {
		return http.StripPrefix(prefix, proxy), nil
	}
	return proxy, nil
}

func notConfigured(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusServiceUnavailable, "auth service not configured")
}

func upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Error().Err(err).
		Str("path", r.URL.Path).
		Msg("auth upstream request failed")

	writeError(w, http.StatusBadGateway, "auth service unavailable")
}

func writeError(w http.ResponseWriter, status int, detail string) {
	body, _ := json.Marshal(errorResponse{Detail: detail})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
