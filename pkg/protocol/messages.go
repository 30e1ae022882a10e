// Package protocol holds the JSON bodies exchanged with battle clients.
//
// Client -> Server (all POST):
//
//	/join          {name, team}
//	/poll          {id}
//	/action        {gameId, id, actionType, index, queuedSwitch?, hpState?, turn?}
//	/chat          {gameId, id, msg}
//	/confirm_turn  {gameId, id}
//	/leave         {id, gameId?}
//
// Server -> Client: always a JSON object. Failures live in the body ("error"),
// never in the status code.
package protocol

const (
	StatusOK            = "ok"
	StatusMatched       = "matched"
	StatusWaiting       = "waiting"
	StatusEnded         = "ended"
	StatusSyncing       = "syncing"
	StatusTurnReady     = "turn_ready"
	StatusBattleOngoing = "battle_ongoing"

	ErrRejoin       = "rejoin"
	ErrNoGame       = "No game"
	ErrTurnMismatch = "turn_mismatch"
	ErrUnavailable  = "unavailable"
	ErrTooLarge     = "body_too_large"

	RoleJoiner = "p2"
)

type JoinRequest struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

type JoinResponse struct {
	Status       string  `json:"status"`
	ID           string  `json:"id"`
	GameID       string  `json:"gameId,omitempty"`
	Seed         *int    `json:"seed,omitempty"`
	Role         string  `json:"role,omitempty"`
	OpponentTeam *string `json:"opponentTeam,omitempty"`
}

type PollRequest struct {
	ID string `json:"id"`
}

// PollResponse is the union of every poll outcome. Pointer fields are the ones
// whose zero value is meaningful and must still be sent.
type PollResponse struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`

	GameID string `json:"gameId,omitempty"`
	Turn   int    `json:"turn,omitempty"`
	Seed   *int   `json:"seed,omitempty"`

	MyMoveType     *string `json:"myMoveType,omitempty"`
	MyMoveIndex    *int    `json:"myMoveIndex,omitempty"`
	MyQueuedSwitch *int    `json:"myQueuedSwitch,omitempty"`
	OpMoveType     *string `json:"opMoveType,omitempty"`
	OpMoveIndex    *int    `json:"opMoveIndex,omitempty"`
	OpQueuedSwitch *int    `json:"opQueuedSwitch,omitempty"`
	OpHPState      *string `json:"opHpState,omitempty"`

	OpponentTeam       *string `json:"opponentTeam,omitempty"`
	WaitingForOpponent *bool   `json:"waitingForOpponent,omitempty"`

	Chat *Chat `json:"chat,omitempty"`
}

// Chat is the single latest-message slot of a game. Sender is null until the
// first message; Timestamp is unix milliseconds.
type Chat struct {
	Sender    *string `json:"sender"`
	Msg       string  `json:"msg"`
	Timestamp int64   `json:"timestamp"`
}

type ActionRequest struct {
	GameID       string `json:"gameId"`
	ID           string `json:"id"`
	ActionType   string `json:"actionType"`
	Index        int    `json:"index"`
	QueuedSwitch int    `json:"queuedSwitch,omitempty"`
	HPState      string `json:"hpState,omitempty"`
	Turn         *int   `json:"turn,omitempty"`
}

type ActionResponse struct {
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
	ServerTurn int    `json:"serverTurn,omitempty"`
}

type ChatRequest struct {
	GameID string `json:"gameId"`
	ID     string `json:"id"`
	Msg    string `json:"msg"`
}

type ConfirmRequest struct {
	GameID string `json:"gameId"`
	ID     string `json:"id"`
}

type LeaveRequest struct {
	ID     string `json:"id"`
	GameID string `json:"gameId,omitempty"`
}

// StatusResponse is the plain {status:"ok"} acknowledgement.
type StatusResponse struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

func OK() StatusResponse { return StatusResponse{Status: StatusOK} }

// Ptr is a small helper for the optional-but-present fields above.
func Ptr[T any](v T) *T { return &v }
