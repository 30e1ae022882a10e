package engine

func NewState(id, playerA, playerB string, seed int) State {
	return State{
		ID:      id,
		PlayerA: playerA,
		PlayerB: playerB,
		Turn:    1,
		Seed:    seed,
	}
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func DerivePhase(s State) Phase {
	if s.ConfirmedA || s.ConfirmedB {
		return PhaseSyncing
	} else if s.ActionA != nil && s.ActionB != nil {
		return PhaseActionsComplete
	} else {
		return PhaseAwaitingActions
	}
}
