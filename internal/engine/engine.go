package engine

import (
	"errors"
	"fmt"
	"time"
)

var ErrTurnMismatch = errors.New("turn mismatch")
var ErrUnsupportedCommand = errors.New("unsupported command")

// TurnMismatchError carries the authoritative turn so the client can resync.
type TurnMismatchError struct {
	ServerTurn int
	ClientTurn int
}

func (e *TurnMismatchError) Error() string {
	return fmt.Sprintf("turn mismatch: client sent %d, server is on %d", e.ClientTurn, e.ServerTurn)
}

func (e *TurnMismatchError) Is(target error) bool { return target == ErrTurnMismatch }

type Side string

const (
	SideNone Side = ""
	SideA    Side = "p1"
	SideB    Side = "p2"
)

type Phase string

const (
	PhaseAwaitingActions Phase = "awaiting_actions"
	PhaseActionsComplete Phase = "actions_complete"
	PhaseSyncing         Phase = "syncing"
)

// Action is a player's submitted intent for the current turn. The relay never
// checks it against game rules.
type Action struct {
	Type         string
	Index        int
	QueuedSwitch int
	HPState      string
}

type Chat struct {
	SenderID string // empty until someone talks
	Text     string
	SentAt   time.Time
}

type State struct {
	ID         string
	PlayerA    string
	PlayerB    string
	Turn       int
	ActionA    *Action
	ActionB    *Action
	ConfirmedA bool
	ConfirmedB bool
	Seed       int
	Chat       Chat
}

type CommandType string

const (
	CmdSubmitAction CommandType = "SubmitAction"
	CmdConfirmTurn  CommandType = "ConfirmTurn"
	CmdPostChat     CommandType = "PostChat"
)

/*
	CmdSubmitAction -> EvtActionSubmitted
	CmdConfirmTurn  -> EvtSideConfirmed (-> EvtTurnAdvanced once both sides have confirmed)
	CmdPostChat     -> EvtChatPosted
*/

type Command struct {
	Type     CommandType
	PlayerID string
	Turn     *int // only checked when the client sent one
	Action   Action
	Text     string
	At       time.Time
}

type EventType string

const (
	EvtActionSubmitted EventType = "ActionSubmitted"
	EvtSideConfirmed   EventType = "SideConfirmed"
	EvtTurnAdvanced    EventType = "TurnAdvanced"
	EvtChatPosted      EventType = "ChatPosted"
)

type Event struct {
	Type EventType
	Side Side
	Turn int
}

// Apply runs one command against a session. Commands from ids that are not part
// of the session are dropped without error.
func Apply(s State, cmd Command) ([]Event, State, error) {
	side := s.SideOf(cmd.PlayerID)
	newState := s

	switch cmd.Type {
	case CmdSubmitAction:
		if side == SideNone {
			return nil, s, nil
		}
		if cmd.Turn != nil && *cmd.Turn != s.Turn {
			return nil, s, &TurnMismatchError{ServerTurn: s.Turn, ClientTurn: *cmd.Turn}
		}

		a := cmd.Action
		if side == SideA {
			newState.ActionA = &a
		} else {
			newState.ActionB = &a
		}
		return []Event{{Type: EvtActionSubmitted, Side: side, Turn: s.Turn}}, newState, nil

	case CmdConfirmTurn:
		if side == SideNone {
			return nil, s, nil
		}
		if side == SideA {
			newState.ConfirmedA = true
		} else {
			newState.ConfirmedB = true
		}
		events := []Event{{Type: EvtSideConfirmed, Side: side, Turn: s.Turn}}

		// Both sides consumed the ready state: roll the turn over in this same step.
		if newState.ConfirmedA && newState.ConfirmedB {
			newState.ActionA, newState.ActionB = nil, nil
			newState.ConfirmedA, newState.ConfirmedB = false, false
			newState.Turn++
			events = append(events, Event{Type: EvtTurnAdvanced, Turn: newState.Turn})
		}
		return events, newState, nil

	case CmdPostChat:
		if side == SideNone {
			return nil, s, nil
		}
		newState.Chat = Chat{SenderID: cmd.PlayerID, Text: cmd.Text, SentAt: cmd.At}
		return []Event{{Type: EvtChatPosted, Side: side, Turn: s.Turn}}, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

type ViewStatus string

const (
	ViewSyncing       ViewStatus = "syncing"
	ViewTurnReady     ViewStatus = "turn_ready"
	ViewBattleOngoing ViewStatus = "battle_ongoing"
)

// View is what one side is allowed to see of a session.
type View struct {
	Status    ViewStatus
	GameID    string
	Turn      int
	Seed      int
	Mine      *Action
	Theirs    *Action
	Submitted bool
	Opponent  string
	Chat      Chat
}

// ViewFor builds the poll snapshot for playerID. The caller's own confirmation
// hides everything but chat until the turn flips. Non-participants get a zero View.
func ViewFor(s State, playerID string) View {
	side := s.SideOf(playerID)
	if side == SideNone {
		return View{}
	}
	mine, theirs := s.ActionA, s.ActionB
	confirmed := s.ConfirmedA
	opponent := s.PlayerB
	if side == SideB {
		mine, theirs = s.ActionB, s.ActionA
		confirmed = s.ConfirmedB
		opponent = s.PlayerA
	}

	if confirmed {
		return View{Status: ViewSyncing, GameID: s.ID, Turn: s.Turn, Chat: s.Chat}
	}

	if s.ActionA != nil && s.ActionB != nil {
		return View{
			Status:   ViewTurnReady,
			GameID:   s.ID,
			Turn:     s.Turn,
			Seed:     s.Seed,
			Mine:     mine,
			Theirs:   theirs,
			Opponent: opponent,
			Chat:     s.Chat,
		}
	}

	return View{
		Status:    ViewBattleOngoing,
		GameID:    s.ID,
		Turn:      s.Turn,
		Seed:      s.Seed,
		Submitted: mine != nil,
		Opponent:  opponent,
		Chat:      s.Chat,
	}
}

func (s State) SideOf(playerID string) Side {
	switch {
	case playerID == "":
		return SideNone
	case playerID == s.PlayerA:
		return SideA
	case playerID == s.PlayerB:
		return SideB
	default:
		return SideNone
	}
}

func (s State) Opponent(playerID string) string {
	switch s.SideOf(playerID) {
	case SideA:
		return s.PlayerB
	case SideB:
		return s.PlayerA
	default:
		return ""
	}
}
