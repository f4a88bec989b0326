package models

import "time"

// Activity is a catalog entry together with its current roster.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// ActivityView is the JSON representation of an activity. The activity
// name is the key of the enclosing map, so it is not repeated here.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// View copies the activity into its JSON view. Participants is never nil.
func (a *Activity) View() ActivityView {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	return ActivityView{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

// SpotsLeft is the remaining capacity, never negative.
func (a *Activity) SpotsLeft() int {
	if left := a.MaxParticipants - len(a.Participants); left > 0 {
		return left
	}
	return 0
}

// MessageResponse is the body of a successful roster change.
type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Activities int    `json:"activities"`
}

type RosterEventType string

const (
	RosterEventSignedUp     RosterEventType = "participant.signed_up"
	RosterEventUnregistered RosterEventType = "participant.unregistered"
)

// RosterEvent is emitted after every successful roster change.
type RosterEvent struct {
	ID         string          `json:"id"`
	Type       RosterEventType `json:"type"`
	Activity   string          `json:"activity"`
	Email      string          `json:"email"`
	OccurredAt time.Time       `json:"occurred_at"`
}
