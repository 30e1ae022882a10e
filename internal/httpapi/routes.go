package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/battle-relay/internal/dispatch"
	"github.com/DoyleJ11/battle-relay/internal/logging"
	"github.com/DoyleJ11/battle-relay/internal/ws"
)

func SetupRoutes(relay dispatch.Relay, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Requests(log))
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	// Relay operations
	for _, op := range dispatch.Ops {
		r.Post("/"+op, Operation(relay, op, log))
	}

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(relay, log))

	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)
	return r
}
