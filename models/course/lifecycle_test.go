package course

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		event   Event
		want    Status
		wantErr bool
	}{
		{"draft submit", StatusDraft, EventSubmitForReview, StatusPendingReview, false},
		{"draft direct publish", StatusDraft, EventPublish, StatusPublished, false},
		{"pending publish", StatusPendingReview, EventPublish, StatusPublished, false},
		{"pending reject", StatusPendingReview, EventReject, StatusRejected, false},
		{"rejected resubmit", StatusRejected, EventResubmit, StatusDraft, false},
		{"published archive", StatusPublished, EventArchive, StatusArchived, false},

		{"draft reject", StatusDraft, EventReject, StatusDraft, true},
		{"draft archive", StatusDraft, EventArchive, StatusDraft, true},
		{"pending submit again", StatusPendingReview, EventSubmitForReview, StatusPendingReview, true},
		{"published publish again", StatusPublished, EventPublish, StatusPublished, true},
		{"published reject", StatusPublished, EventReject, StatusPublished, true},
		{"rejected publish", StatusRejected, EventPublish, StatusRejected, true},
		{"archived is a sink", StatusArchived, EventPublish, StatusArchived, true},
		{"archived resubmit", StatusArchived, EventResubmit, StatusArchived, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.from, tt.event)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	owner := Actor{ID: 1, Role: models.RoleTutor}
	otherTutor := Actor{ID: 2, Role: models.RoleTutor}
	admin := Actor{ID: 3, Role: models.RoleAdmin}
	student := Actor{ID: 4, Role: models.RoleStudent}

	courseIn := func(s Status) *Course {
		return &Course{Status: s, CreatorID: owner.ID}
	}

	tests := []struct {
		name  string
		actor Actor
		from  Status
		event Event
		want  bool
	}{
		{"owner submits draft", owner, StatusDraft, EventSubmitForReview, true},
		{"other tutor cannot submit", otherTutor, StatusDraft, EventSubmitForReview, false},
		{"admin cannot submit for owner", admin, StatusDraft, EventSubmitForReview, false},
		{"student cannot submit", student, StatusDraft, EventSubmitForReview, false},

		{"admin publishes pending", admin, StatusPendingReview, EventPublish, true},
		{"admin publishes draft directly", admin, StatusDraft, EventPublish, true},
		{"owner cannot publish own course", owner, StatusPendingReview, EventPublish, false},
		{"owner cannot publish own draft", owner, StatusDraft, EventPublish, false},

		{"admin rejects pending", admin, StatusPendingReview, EventReject, true},
		{"owner cannot reject", owner, StatusPendingReview, EventReject, false},

		{"owner resubmits rejected", owner, StatusRejected, EventResubmit, true},
		{"admin cannot resubmit for owner", admin, StatusRejected, EventResubmit, false},

		{"owner archives published", owner, StatusPublished, EventArchive, true},
		{"admin archives published", admin, StatusPublished, EventArchive, true},
		{"other tutor cannot archive", otherTutor, StatusPublished, EventArchive, false},

		{"no edge means no permission", admin, StatusArchived, EventPublish, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.actor, courseIn(tt.from), tt.event))
		})
	}
}
