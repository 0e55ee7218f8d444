package engine

// Transition is the engine's transition function. It is total: every
// (State, Event) pair maps somewhere, and any pair outside the defined graph
// maps to TerminalError, so an undefined edge surfaces as a loud failure
// instead of an infinite loop.
func Transition(state State, event Event) State {
	if event == EventFail {
		return StateTerminalError
	}

	switch state {
	case StateStart:
		if event == EventEnriched {
			return StateClassifying
		}
	case StateClassifying:
		if event == EventClassified {
			return StateRouting
		}
	case StateRouting:
		if event == EventRouted {
			return StateDispatching
		}
	case StateDispatching:
		if event == EventDispatched {
			return StateReviewing
		}
	case StateReviewing:
		switch event {
		case EventApproved:
			return StateTerminalSuccess
		case EventRevise:
			return StateLoopBack
		}
	case StateLoopBack:
		if event == EventRouted {
			return StateDispatching
		}
	case StateTerminalSuccess, StateTerminalError:
		return state
	}

	return StateTerminalError
}
