package hub

import (
	"context"

	"github.com/DoyleJ11/battle-relay/internal/dispatch"
	"github.com/DoyleJ11/battle-relay/pkg/protocol"
)

var _ dispatch.Relay = (*Hub)(nil)

func (h *Hub) Join(ctx context.Context, req protocol.JoinRequest) (protocol.JoinResponse, error) {
	reply := make(chan protocol.JoinResponse, 1)
	return ask(ctx, h, Join{Req: req, Reply: reply}, reply)
}

func (h *Hub) Poll(ctx context.Context, req protocol.PollRequest) (protocol.PollResponse, error) {
	reply := make(chan protocol.PollResponse, 1)
	return ask(ctx, h, Poll{Req: req, Reply: reply}, reply)
}

func (h *Hub) SubmitAction(ctx context.Context, req protocol.ActionRequest) (protocol.ActionResponse, error) {
	reply := make(chan protocol.ActionResponse, 1)
	return ask(ctx, h, SubmitAction{Req: req, Reply: reply}, reply)
}

func (h *Hub) PostChat(ctx context.Context, req protocol.ChatRequest) (protocol.StatusResponse, error) {
	reply := make(chan protocol.StatusResponse, 1)
	return ask(ctx, h, PostChat{Req: req, Reply: reply}, reply)
}

func (h *Hub) ConfirmTurn(ctx context.Context, req protocol.ConfirmRequest) (protocol.StatusResponse, error) {
	reply := make(chan protocol.StatusResponse, 1)
	return ask(ctx, h, ConfirmTurn{Req: req, Reply: reply}, reply)
}

func (h *Hub) Leave(ctx context.Context, req protocol.LeaveRequest) (protocol.StatusResponse, error) {
	reply := make(chan protocol.StatusResponse, 1)
	return ask(ctx, h, Leave{Req: req, Reply: reply}, reply)
}

func (h *Hub) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	return ask(ctx, h, GetState{Reply: reply}, reply)
}

// Shutdown stops the loop and waits for it to exit.
func (h *Hub) Shutdown(ctx context.Context) error {
	select {
	case h.inbox <- ShutdownHub{}:
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ask hands msg to the loop and waits for its reply. Replies are buffered, so
// a caller that gives up never blocks the loop.
func ask[T any](ctx context.Context, h *Hub, msg HubMsg, reply <-chan T) (T, error) {
	var zero T
	select {
	case h.inbox <- msg:
	case <-h.done:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case r := <-reply:
		return r, nil
	case <-h.done:
		// The loop may have answered just before exiting.
		select {
		case r := <-reply:
			return r, nil
		default:
			return zero, ErrClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
