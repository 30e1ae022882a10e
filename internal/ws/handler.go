package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/DoyleJ11/battle-relay/internal/dispatch"
	"github.com/DoyleJ11/battle-relay/internal/types"
	"github.com/DoyleJ11/battle-relay/pkg/protocol"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 3 * time.Second
)

// Handler serves relay operations over a websocket. Every request frame gets
// exactly one reply frame carrying the same seq; the server never pushes.
func Handler(relay dispatch.Relay, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// Browsers on any origin may talk to the relay, same as the CORS policy.
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Debug("ws accept", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := make(chan types.ServerMessage, 8)
		writerDone := make(chan struct{})
		defer func() {
			close(out)
			<-writerDone
		}()

		// Writer goroutine
		go func() {
			defer close(writerDone)
			for msg := range out {
				wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
				err := wsjson.Write(wctx, conn, msg)
				wcancel()
				if err != nil {
					log.Debug("ws write", zap.Error(err))
					cancel()
					for range out {
					}
					return
				}
			}
		}()

		// Reader loop
		for {
			rctx, rcancel := context.WithTimeout(ctx, readTimeout)
			_, data, err := conn.Read(rctx)
			rcancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("ws read", zap.Error(err))
				}
				return
			}

			select {
			case out <- respond(ctx, relay, data):
			case <-ctx.Done():
				return
			}
		}
	}
}

func respond(ctx context.Context, relay dispatch.Relay, data []byte) types.ServerMessage {
	var cm types.ClientMessage
	if err := json.Unmarshal(data, &cm); err != nil {
		return types.ServerMessage{Type: types.TypeError, Error: "bad json"}
	}

	body, err := dispatch.Call(ctx, relay, cm.Type, cm.Body)
	switch {
	case errors.Is(err, dispatch.ErrUnknownOp):
		return types.ServerMessage{Type: types.TypeError, Seq: cm.Seq, Error: "unknown type"}
	case err != nil:
		return types.ServerMessage{Type: types.TypeError, Seq: cm.Seq, Error: protocol.ErrUnavailable}
	}
	return types.ServerMessage{Type: cm.Type, Seq: cm.Seq, Body: body}
}
