package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/DoyleJ11/battle-relay/internal/dispatch"
	"github.com/DoyleJ11/battle-relay/pkg/protocol"
)

const maxBody = 64 << 10

// Operation serves one relay operation. Bodies that are not valid JSON are
// handled as an empty object. Non-200 replies are limited to bodies over
// maxBody (413) and a relay that cannot answer (503).
func Operation(relay dispatch.Relay, op string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("body too large", zap.String("op", op), zap.Int64("limit", tooLarge.Limit))
			writeJSON(w, http.StatusRequestEntityTooLarge, protocol.StatusResponse{Error: protocol.ErrTooLarge})
			return
		}
		if err != nil {
			log.Debug("read body", zap.String("op", op), zap.Error(err))
			body = nil
		}

		resp, err := dispatch.Call(r.Context(), relay, op, body)
		if err != nil {
			log.Warn("relay unavailable", zap.String("op", op), zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, protocol.StatusResponse{Error: protocol.ErrUnavailable})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
