package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/battle-relay/internal/dispatch"
	"github.com/DoyleJ11/battle-relay/pkg/protocol"
)

var errEvicted = errors.New("relay forgot this bot")

type bot struct {
	name     string
	team     string
	relay    dispatch.Relay
	turns    int
	interval time.Duration
	log      *zap.Logger
}

type result struct {
	Name   string
	GameID string
	Played int
	Ended  bool // opponent left first
}

// run joins, plays b.turns turns and leaves.
func (b *bot) run(ctx context.Context) (result, error) {
	res := result{Name: b.name}

	j, err := b.relay.Join(ctx, protocol.JoinRequest{Name: b.name, Team: b.team})
	if err != nil {
		return res, fmt.Errorf("join: %w", err)
	}
	id := j.ID
	res.GameID = j.GameID

	if res.GameID == "" {
		p, err := b.await(ctx, id, func(p protocol.PollResponse) bool { return p.GameID != "" })
		if err != nil {
			return res, err
		}
		if p.Status == protocol.StatusEnded {
			res.Ended = true
			return res, nil
		}
		res.GameID = p.GameID
	}
	b.log.Info("matched", zap.String("bot", b.name), zap.String("game", res.GameID))

	defer func() {
		// Leave even when ctx is already done.
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if _, err := b.relay.Leave(lctx, protocol.LeaveRequest{ID: id, GameID: res.GameID}); err != nil {
			b.log.Warn("leave", zap.String("bot", b.name), zap.Error(err))
		}
	}()

	turn := 1
	for res.Played < b.turns {
		act, err := b.relay.SubmitAction(ctx, protocol.ActionRequest{
			GameID:     res.GameID,
			ID:         id,
			ActionType: "move",
			Index:      rand.IntN(4),
			Turn:       protocol.Ptr(turn),
		})
		if err != nil {
			return res, fmt.Errorf("action: %w", err)
		}
		switch act.Error {
		case "":
		case protocol.ErrTurnMismatch:
			b.log.Debug("resync", zap.String("bot", b.name), zap.Int("turn", act.ServerTurn))
			turn = act.ServerTurn
			continue
		case protocol.ErrNoGame:
			res.Ended = true
			return res, nil
		default:
			return res, fmt.Errorf("action: %s", act.Error)
		}

		p, err := b.await(ctx, id, func(p protocol.PollResponse) bool { return p.Status == protocol.StatusTurnReady })
		if err != nil {
			return res, err
		}
		if p.Status == protocol.StatusEnded {
			res.Ended = true
			return res, nil
		}

		if _, err := b.relay.ConfirmTurn(ctx, protocol.ConfirmRequest{GameID: res.GameID, ID: id}); err != nil {
			return res, fmt.Errorf("confirm: %w", err)
		}

		p, err = b.await(ctx, id, func(p protocol.PollResponse) bool { return p.Status != protocol.StatusSyncing })
		if err != nil {
			return res, err
		}
		res.Played++
		if p.Status == protocol.StatusEnded {
			res.Ended = true
			return res, nil
		}
		turn++
	}
	return res, nil
}

// await polls until done reports true or the game has ended.
func (b *bot) await(ctx context.Context, id string, done func(protocol.PollResponse) bool) (protocol.PollResponse, error) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		p, err := b.relay.Poll(ctx, protocol.PollRequest{ID: id})
		if err != nil {
			return p, fmt.Errorf("poll: %w", err)
		}
		if p.Error == protocol.ErrRejoin {
			return p, errEvicted
		}
		if p.Status == protocol.StatusEnded || done(p) {
			return p, nil
		}

		select {
		case <-ctx.Done():
			return p, ctx.Err()
		case <-ticker.C:
		}
	}
}
