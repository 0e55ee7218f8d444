package dialogue

import "context"

// UseCase defines the business logic interface for the dialogue domain.
type UseCase interface {
	// ProcessTurn runs one user turn through the orchestration engine and
	// returns the assistant reply, action cards, and emergency flags.
	ProcessTurn(ctx context.Context, input TurnInput) (TurnOutput, error)
}
