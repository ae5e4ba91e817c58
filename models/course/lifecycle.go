package course

import "lms/models"

// Event enum values for lifecycle transitions
type Event string

const (
	EventSubmitForReview Event = "SUBMIT_FOR_REVIEW"
	EventPublish         Event = "PUBLISH"
	EventReject          Event = "REJECT"
	EventResubmit        Event = "RESUBMIT" // REJECTED back to DRAFT for editing
	EventArchive         Event = "ARCHIVE"
)

// Actor is the authenticated user attempting an operation.
type Actor struct {
	ID   uint
	Role models.Role
}

// IsAdmin reports whether the actor has platform admin authority.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Owns reports whether the actor created the course.
func (a Actor) Owns(c *Course) bool {
	return a.ID == c.CreatorID
}

// CanManage reports whether the actor may mutate the course's content tree
// (modules, materials, assignments).
func (a Actor) CanManage(c *Course) bool {
	return a.Owns(c) || a.IsAdmin()
}

type capability int

const (
	capOwner capability = iota
	capAdmin
	capOwnerOrAdmin
)

type transition struct {
	to  Status
	cap capability
}

// transitions is the authoritative edge table of the course status machine.
// The creator can only ever request review; PUBLISHED is reachable through
// an admin actor alone.
var transitions = map[Status]map[Event]transition{
	StatusDraft: {
		EventSubmitForReview: {StatusPendingReview, capOwner},
		EventPublish:         {StatusPublished, capAdmin},
	},
	StatusPendingReview: {
		EventPublish: {StatusPublished, capAdmin},
		EventReject:  {StatusRejected, capAdmin},
	},
	StatusRejected: {
		EventResubmit: {StatusDraft, capOwner},
	},
	StatusPublished: {
		EventArchive: {StatusArchived, capOwnerOrAdmin},
	},
	// StatusArchived is a sink: no outgoing edges.
}

// NextStatus returns the target status for firing event from the given
// status, or ErrInvalidTransition when no edge is defined.
func NextStatus(from Status, event Event) (Status, error) {
	t, ok := transitions[from][event]
	if !ok {
		return from, ErrInvalidTransition
	}
	return t.to, nil
}

// CanTransition is the single authorization point for lifecycle changes:
// every role and ownership check for a status transition goes through here.
// It returns false when the edge does not exist at all; callers distinguish
// that case with NextStatus.
func CanTransition(actor Actor, c *Course, event Event) bool {
	t, ok := transitions[c.Status][event]
	if !ok {
		return false
	}
	switch t.cap {
	case capOwner:
		return actor.Owns(c)
	case capAdmin:
		return actor.IsAdmin()
	case capOwnerOrAdmin:
		return actor.Owns(c) || actor.IsAdmin()
	}
	return false
}
