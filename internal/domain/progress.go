package domain

import "time"

// ProgressHeader tracks course progress for exactly one academic load.
type ProgressHeader struct {
	ID              string
	AcademicLoadID  string
	TermID          string
	Status          ProgressStatus
	ReviewerID      *string
	SubmittedAt     *time.Time
	ReviewedAt      *time.Time
	FinalFollowUpAt *time.Time
	RevisionCount   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProgressLine records one topic's advance within a header.
// IsLate is supplied by the caller and is never derived from WeekCompleted.
type ProgressLine struct {
	ID                string
	HeaderID          string
	Topic             string
	WeekCompleted     int
	AdvanceState      AdvanceState
	IsLate            bool
	Justification     *string
	CorrectiveActions *string
	Evidence          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// statusPath lists the documented forward transitions. It is advisory:
// nothing refuses a transition outside it.
var statusPath = map[ProgressStatus][]ProgressStatus{
	ProgressDraft:     {ProgressSubmitted},
	ProgressSubmitted: {ProgressReviewed},
	ProgressReviewed:  {ProgressApproved, ProgressRejected},
	ProgressRejected:  {ProgressSubmitted},
}

// OnStatusPath reports whether from → to is one of the documented transitions.
func OnStatusPath(from, to ProgressStatus) bool {
	for _, next := range statusPath[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ApplyStatus moves the header to status and stamps the matching timestamps.
// Reviewed, Approved and Rejected record the actor as reviewer. Resubmitting
// after a rejection counts as a revision.
func (h *ProgressHeader) ApplyStatus(status ProgressStatus, actorID string, now time.Time) {
	prev := h.Status
	switch status {
	case ProgressSubmitted:
		h.SubmittedAt = &now
		if prev == ProgressRejected {
			h.RevisionCount++
		}
	case ProgressReviewed:
		h.ReviewedAt = &now
		h.ReviewerID = &actorID
	case ProgressApproved, ProgressRejected:
		h.FinalFollowUpAt = &now
		h.ReviewerID = &actorID
	}
	h.Status = status
	h.UpdatedAt = now
}
