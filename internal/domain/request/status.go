package request

// AllStatuses is the validation list for request status updates.
var AllStatuses = []Status{
	StatusSubmitted,
	StatusManagerReview,
	StatusEngineeringReview,
	StatusDiscussion,
	StatusInProgress,
	StatusReadyForReview,
	StatusCompleted,
	StatusRevisionRequested,
	StatusDenied,
}

// engineerStatuses are the states an assigned engineer may move a request between.
var engineerStatuses = map[Status]bool{
	StatusInProgress:     true,
	StatusReadyForReview: true,
}

func IsValidStatus(s string) bool {
	for _, st := range AllStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func IsValidPriority(p string) bool {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// IsTerminal reports whether no further work happens in this status.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusDenied
}

// EngineerMayEnter reports whether an assigned engineer may set this status.
func EngineerMayEnter(s Status) bool {
	return engineerStatuses[s]
}

// InReview reports whether the request is still waiting for a decision.
func InReview(s Status) bool {
	switch s {
	case StatusSubmitted, StatusManagerReview, StatusEngineeringReview, StatusDiscussion:
		return true
	}
	return false
}
