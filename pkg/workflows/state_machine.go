package workflows

// StateMachine enforces status transitions for a single entity type
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewReportStateMachine covers verification report statuses. A report can be
// pushed straight from PENDING to a terminal state because direct updates
// carry a normalized status; terminal states accept no further transitions.
func NewReportStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"PENDING":   {"IN_REVIEW", "APPROVED", "REJECTED"},
			"IN_REVIEW": {"APPROVED", "REJECTED"},
			"APPROVED":  {},
			"REJECTED":  {},
		},
	}
}

// NewMonitoringStateMachine covers monitoring update review statuses.
func NewMonitoringStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"PENDING":  {"ACCEPTED", "REJECTED"},
			"ACCEPTED": {},
			"REJECTED": {},
		},
	}
}

// NewProjectStateMachine covers project lifecycle statuses.
func NewProjectStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"DRAFT":     {"ACTIVE"},
			"ACTIVE":    {"PAUSED", "COMPLETED"},
			"PAUSED":    {"ACTIVE", "ARCHIVED"}, // Allow resuming paused projects
			"COMPLETED": {"ARCHIVED"},
			"ARCHIVED":  {},
		},
	}
}

// NewOrganizationStateMachine covers organization registration statuses.
func NewOrganizationStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"PENDING":  {"APPROVED", "REJECTED"},
			"APPROVED": {},
			"REJECTED": {},
		},
	}
}

// NewCreditStateMachine covers carbon credit token statuses. A token may be
// transferred repeatedly until it is retired.
func NewCreditStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"MINTED":      {"TRANSFERRED", "RETIRED"},
			"TRANSFERRED": {"TRANSFERRED", "RETIRED"},
			"RETIRED":     {},
		},
	}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}
