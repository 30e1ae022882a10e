package hub

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/battle-relay/internal/engine"
	"github.com/DoyleJ11/battle-relay/internal/lobby"
	"github.com/DoyleJ11/battle-relay/internal/registry"
	"github.com/DoyleJ11/battle-relay/pkg/protocol"
)

var ErrClosed = errors.New("hub closed")

const seedRange = 100000

type HubMsg interface{ isHubMsg() }

type Join struct {
	Req   protocol.JoinRequest
	Reply chan protocol.JoinResponse
}

type Poll struct {
	Req   protocol.PollRequest
	Reply chan protocol.PollResponse
}

type SubmitAction struct {
	Req   protocol.ActionRequest
	Reply chan protocol.ActionResponse
}

type PostChat struct {
	Req   protocol.ChatRequest
	Reply chan protocol.StatusResponse
}

type ConfirmTurn struct {
	Req   protocol.ConfirmRequest
	Reply chan protocol.StatusResponse
}

type Leave struct {
	Req   protocol.LeaveRequest
	Reply chan protocol.StatusResponse
}

// GetState reflects the tables without racing the loop. Used by tests and at shutdown.
type GetState struct {
	Reply chan View
}

type ShutdownHub struct{}

func (Join) isHubMsg()         {}
func (Poll) isHubMsg()         {}
func (SubmitAction) isHubMsg() {}
func (PostChat) isHubMsg()     {}
func (ConfirmTurn) isHubMsg()  {}
func (Leave) isHubMsg()        {}
func (GetState) isHubMsg()     {}
func (ShutdownHub) isHubMsg()  {}

type View struct {
	Players int
	Waiting []string
	Games   map[string]engine.State
}

// Hub owns the player table, the game table and the matchmaking queue for the
// life of the process. Every message is handled to completion by one goroutine,
// so each operation is its own critical section.
type Hub struct {
	inbox   chan HubMsg
	players *registry.Registry
	queue   *lobby.Queue
	games   map[string]engine.State

	log      *zap.Logger
	now      func() time.Time
	newID    func() string
	newSeed  func() int
	liveness time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Hub)

func WithClock(now func() time.Time) Option { return func(h *Hub) { h.now = now } }

func WithIDs(newID func() string) Option { return func(h *Hub) { h.newID = newID } }

func WithSeeds(newSeed func() int) Option { return func(h *Hub) { h.newSeed = newSeed } }

func WithLiveness(d time.Duration) Option { return func(h *Hub) { h.liveness = d } }

func NewHub(parent context.Context, log *zap.Logger, opts ...Option) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		games:    make(map[string]engine.State),
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
		newSeed:  func() int { return rand.IntN(seedRange) },
		liveness: lobby.DefaultLiveness,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	h.players = registry.New(h.now, h.newID)
	h.queue = lobby.NewQueue(h.liveness)

	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Done is closed once the loop has exited.
func (h *Hub) Done() <-chan struct{} { return h.done }

func (h *Hub) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Join:
				msg.Reply <- h.join(msg.Req)
			case Poll:
				msg.Reply <- h.poll(msg.Req)
			case SubmitAction:
				msg.Reply <- h.submitAction(msg.Req)
			case PostChat:
				msg.Reply <- h.postChat(msg.Req)
			case ConfirmTurn:
				msg.Reply <- h.confirmTurn(msg.Req)
			case Leave:
				msg.Reply <- h.leave(msg.Req)
			case GetState:
				games := make(map[string]engine.State, len(h.games))
				for id, s := range h.games {
					games[id] = s
				}
				msg.Reply <- View{Players: h.players.Len(), Waiting: h.queue.Snapshot(), Games: games}
			case ShutdownHub:
				h.cancel()
				return
			}
		}
	}
}

func (h *Hub) join(req protocol.JoinRequest) protocol.JoinResponse {
	p := h.players.Register(req.Name, req.Team)
	h.log.Info("join", zap.String("player", p.ID), zap.String("name", p.Name))

	opponentID, evicted, ok := h.queue.TryMatch(h.players, h.now())
	for _, id := range evicted {
		h.log.Info("evict stale waiter", zap.String("player", id))
	}
	if !ok {
		h.queue.Enqueue(p.ID)
		return protocol.JoinResponse{Status: protocol.StatusWaiting, ID: p.ID}
	}

	// TryMatch only returns ids it just found in the registry.
	op, _ := h.players.Get(opponentID)
	gameID := h.newID()
	seed := h.newSeed()
	h.games[gameID] = engine.NewState(gameID, op.ID, p.ID, seed)
	op.GameID = gameID
	p.GameID = gameID

	h.log.Info("match",
		zap.String("game", gameID),
		zap.String("p1", op.ID),
		zap.String("p2", p.ID),
		zap.Int("seed", seed),
	)

	return protocol.JoinResponse{
		Status:       protocol.StatusMatched,
		ID:           p.ID,
		GameID:       gameID,
		Seed:         protocol.Ptr(seed),
		Role:         protocol.RoleJoiner,
		OpponentTeam: protocol.Ptr(op.Team),
	}
}

func (h *Hub) poll(req protocol.PollRequest) protocol.PollResponse {
	p, err := h.players.Touch(req.ID)
	if err != nil {
		return protocol.PollResponse{Error: protocol.ErrRejoin}
	}
	if p.GameID == "" {
		return protocol.PollResponse{Status: protocol.StatusWaiting}
	}
	s, ok := h.games[p.GameID]
	if !ok {
		return protocol.PollResponse{Status: protocol.StatusEnded}
	}

	v := engine.ViewFor(s, p.ID)
	chat := wireChat(v.Chat)

	switch v.Status {
	case "":
		// The game no longer lists this player.
		return protocol.PollResponse{Status: protocol.StatusEnded}

	case engine.ViewSyncing:
		return protocol.PollResponse{Status: protocol.StatusSyncing, Chat: chat}

	case engine.ViewTurnReady:
		return protocol.PollResponse{
			Status:         protocol.StatusTurnReady,
			GameID:         v.GameID,
			Turn:           v.Turn,
			Seed:           protocol.Ptr(v.Seed),
			MyMoveType:     protocol.Ptr(v.Mine.Type),
			MyMoveIndex:    protocol.Ptr(v.Mine.Index),
			MyQueuedSwitch: protocol.Ptr(v.Mine.QueuedSwitch),
			OpMoveType:     protocol.Ptr(v.Theirs.Type),
			OpMoveIndex:    protocol.Ptr(v.Theirs.Index),
			OpQueuedSwitch: protocol.Ptr(v.Theirs.QueuedSwitch),
			OpHPState:      protocol.Ptr(v.Theirs.HPState),
			OpponentTeam:   protocol.Ptr(h.teamOf(v.Opponent)),
			Chat:           chat,
		}

	default:
		return protocol.PollResponse{
			Status:             protocol.StatusBattleOngoing,
			GameID:             v.GameID,
			Seed:               protocol.Ptr(v.Seed),
			OpponentTeam:       protocol.Ptr(h.teamOf(v.Opponent)),
			WaitingForOpponent: protocol.Ptr(v.Submitted),
			Chat:               chat,
		}
	}
}

func (h *Hub) submitAction(req protocol.ActionRequest) protocol.ActionResponse {
	s, ok := h.games[req.GameID]
	if !ok {
		return protocol.ActionResponse{Error: protocol.ErrNoGame}
	}

	_, next, err := engine.Apply(s, engine.Command{
		Type:     engine.CmdSubmitAction,
		PlayerID: req.ID,
		Turn:     req.Turn,
		Action: engine.Action{
			Type:         req.ActionType,
			Index:        req.Index,
			QueuedSwitch: req.QueuedSwitch,
			HPState:      req.HPState,
		},
	})
	var mismatch *engine.TurnMismatchError
	if errors.As(err, &mismatch) {
		h.log.Debug("stale action",
			zap.String("game", req.GameID),
			zap.String("player", req.ID),
			zap.Int("client_turn", mismatch.ClientTurn),
			zap.Int("server_turn", mismatch.ServerTurn),
		)
		return protocol.ActionResponse{Error: protocol.ErrTurnMismatch, ServerTurn: mismatch.ServerTurn}
	}
	if err != nil {
		h.log.Error("apply action", zap.String("game", req.GameID), zap.Error(err))
		return protocol.ActionResponse{Error: err.Error()}
	}

	h.games[req.GameID] = next
	return protocol.ActionResponse{Status: protocol.StatusOK}
}

func (h *Hub) postChat(req protocol.ChatRequest) protocol.StatusResponse {
	h.apply(req.GameID, engine.Command{
		Type:     engine.CmdPostChat,
		PlayerID: req.ID,
		Text:     req.Msg,
		At:       h.now(),
	})
	return protocol.OK()
}

func (h *Hub) confirmTurn(req protocol.ConfirmRequest) protocol.StatusResponse {
	h.apply(req.GameID, engine.Command{Type: engine.CmdConfirmTurn, PlayerID: req.ID})
	return protocol.OK()
}

// apply runs a command whose failure modes are all silent no-ops.
func (h *Hub) apply(gameID string, cmd engine.Command) {
	s, ok := h.games[gameID]
	if !ok {
		return
	}
	events, next, err := engine.Apply(s, cmd)
	if err != nil {
		h.log.Error("apply command", zap.String("game", gameID), zap.String("cmd", string(cmd.Type)), zap.Error(err))
		return
	}
	h.games[gameID] = next

	for _, e := range events {
		switch e.Type {
		case engine.EvtChatPosted:
			h.log.Info("chat", zap.String("game", gameID), zap.String("player", cmd.PlayerID), zap.String("msg", cmd.Text))
		case engine.EvtTurnAdvanced:
			h.log.Info("new turn", zap.String("game", gameID), zap.Int("turn", e.Turn))
		}
	}
}

func (h *Hub) leave(req protocol.LeaveRequest) protocol.StatusResponse {
	h.players.Remove(req.ID)
	h.log.Info("leave", zap.String("player", req.ID), zap.String("game", req.GameID))

	if req.GameID == "" {
		return protocol.OK()
	}
	if s, ok := h.games[req.GameID]; ok && s.SideOf(req.ID) != engine.SideNone {
		delete(h.games, req.GameID)
		h.log.Info("game ended", zap.String("game", req.GameID), zap.Int("turn", s.Turn))
	}
	return protocol.OK()
}

func (h *Hub) teamOf(playerID string) string {
	if p, ok := h.players.Get(playerID); ok {
		return p.Team
	}
	return ""
}

func wireChat(c engine.Chat) *protocol.Chat {
	out := &protocol.Chat{Msg: c.Text}
	if c.SenderID != "" {
		out.Sender = protocol.Ptr(c.SenderID)
	}
	if !c.SentAt.IsZero() {
		out.Timestamp = c.SentAt.UnixMilli()
	}
	return out
}
