// Package dispatch maps operation names to Relay calls so every transport
// (HTTP routes, websocket frames) decodes and routes requests the same way.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DoyleJ11/battle-relay/pkg/protocol"
)

var ErrUnknownOp = errors.New("unknown operation")

const (
	OpJoin        = "join"
	OpPoll        = "poll"
	OpAction      = "action"
	OpChat        = "chat"
	OpConfirmTurn = "confirm_turn"
	OpLeave       = "leave"
)

// Ops lists every operation in route order.
var Ops = []string{OpJoin, OpPoll, OpAction, OpChat, OpConfirmTurn, OpLeave}

//go:generate mockgen -destination=../httpapi/mock_relay_test.go -package=httpapi . Relay

// Relay is the set of operations a battle client can invoke. The in-process hub
// and the remote HTTP client both implement it.
type Relay interface {
	Join(ctx context.Context, req protocol.JoinRequest) (protocol.JoinResponse, error)
	Poll(ctx context.Context, req protocol.PollRequest) (protocol.PollResponse, error)
	SubmitAction(ctx context.Context, req protocol.ActionRequest) (protocol.ActionResponse, error)
	PostChat(ctx context.Context, req protocol.ChatRequest) (protocol.StatusResponse, error)
	ConfirmTurn(ctx context.Context, req protocol.ConfirmRequest) (protocol.StatusResponse, error)
	Leave(ctx context.Context, req protocol.LeaveRequest) (protocol.StatusResponse, error)
}

// Call decodes body for op and invokes the matching Relay method. A body that
// is not valid JSON is treated as an empty object; fields of the wrong type are
// left zero and the rest are kept.
func Call(ctx context.Context, r Relay, op string, body []byte) (any, error) {
	switch op {
	case OpJoin:
		return r.Join(ctx, decode[protocol.JoinRequest](body))
	case OpPoll:
		return r.Poll(ctx, decode[protocol.PollRequest](body))
	case OpAction:
		return r.SubmitAction(ctx, decode[protocol.ActionRequest](body))
	case OpChat:
		return r.PostChat(ctx, decode[protocol.ChatRequest](body))
	case OpConfirmTurn:
		return r.ConfirmTurn(ctx, decode[protocol.ConfirmRequest](body))
	case OpLeave:
		return r.Leave(ctx, decode[protocol.LeaveRequest](body))
	default:
		return nil, ErrUnknownOp
	}
}

func decode[T any](body []byte) T {
	var v T
	if len(body) == 0 {
		return v
	}
	err := json.Unmarshal(body, &v)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		var zero T
		return zero
	}
	return v
}
