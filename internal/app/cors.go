package app

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/hatif03/researcher/internal/config"
	"github.com/hatif03/researcher/internal/logger"
)

// corsMethods is every method the policy accepts from an allowed origin.
var corsMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// originPolicy is an exact-match allow-list. A literal "*" entry allows any
// origin; an empty list allows none.
type originPolicy struct {
	any     bool
	origins map[string]struct{}
}

func newOriginPolicy(allowed []string) originPolicy {
	p := originPolicy{origins: make(map[string]struct{}, len(allowed))}
	for _, origin := range allowed {
		if origin == "*" {
			p.any = true
			continue
		}
		p.origins[origin] = struct{}{}
	}
	return p
}

func (p originPolicy) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p.any {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

// newCORS builds the cross-origin middleware. The origin check goes through
// AllowOriginFunc because rs/cors treats an empty AllowedOrigins as "*".
func newCORS(cfg config.CORS, log *logger.Logger) *cors.Cors {
	policy := newOriginPolicy(cfg.AllowedOrigins)

	opts := cors.Options{
		AllowOriginFunc:  policy.allows,
		AllowedMethods:   corsMethods,
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}

	if cfg.DebugEnabled() {
		corsLog := log.GetChildLogger()
		corsLog.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("component", "cors")
		})
		opts.Debug = true
		opts.Logger = &corsLog.Logger
	}

	return cors.New(opts)
}
