package domain

type Role string

const (
	RoleCoordinator       Role = "coordinator"
	RoleModerator         Role = "moderator"
	RoleFullTimeProfessor Role = "full_time_professor"
	RoleAdjunctProfessor  Role = "adjunct_professor"
	RoleStudent           Role = "student"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[Role]bool{
	RoleCoordinator:       true,
	RoleModerator:         true,
	RoleFullTimeProfessor: true,
	RoleAdjunctProfessor:  true,
	RoleStudent:           true,
}

// IsTeaching reports whether the role may hold an academic load.
func (r Role) IsTeaching() bool {
	return r == RoleFullTimeProfessor || r == RoleAdjunctProfessor
}

type TermState string

const (
	TermUpcoming TermState = "upcoming"
	TermActive   TermState = "active"
	TermFinished TermState = "finished"
)

type ProgressStatus string

const (
	ProgressDraft     ProgressStatus = "draft"
	ProgressSubmitted ProgressStatus = "submitted"
	ProgressReviewed  ProgressStatus = "reviewed"
	ProgressApproved  ProgressStatus = "approved"
	ProgressRejected  ProgressStatus = "rejected"
)

// ValidProgressStatuses is the canonical set of accepted header statuses.
var ValidProgressStatuses = map[ProgressStatus]bool{
	ProgressDraft:     true,
	ProgressSubmitted: true,
	ProgressReviewed:  true,
	ProgressApproved:  true,
	ProgressRejected:  true,
}

type AdvanceState string

const (
	AdvanceNotStarted AdvanceState = "not_started"
	AdvanceInProgress AdvanceState = "in_progress"
	AdvanceCompleted  AdvanceState = "completed"
	AdvanceDelayed    AdvanceState = "delayed"
)

// ValidAdvanceStates is the canonical set of accepted line-item advance states.
var ValidAdvanceStates = map[AdvanceState]bool{
	AdvanceNotStarted: true,
	AdvanceInProgress: true,
	AdvanceCompleted:  true,
	AdvanceDelayed:    true,
}
