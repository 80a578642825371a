package project

// AllStatuses lists every valid project status.
var AllStatuses = []Status{
	StatusPending,
	StatusActive,
	StatusOnHold,
	StatusSuspended,
	StatusCompleted,
	StatusCancelled,
	StatusExpired,
	StatusArchived,
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusActive, StatusCancelled},
	StatusActive:    {StatusOnHold, StatusSuspended, StatusCompleted, StatusCancelled, StatusExpired},
	StatusOnHold:    {StatusActive, StatusCancelled},
	StatusSuspended: {StatusActive, StatusCancelled},
	StatusExpired:   {StatusActive, StatusArchived},
	StatusCompleted: {StatusArchived},
	StatusCancelled: {StatusArchived},
	StatusArchived:  {},
}

// IsActive reports whether a project in this status accepts allocation increases.
func IsActive(s Status) bool {
	return s == StatusActive
}

// IsValidStatus reports whether s is a known project status.
func IsValidStatus(s string) bool {
	for _, st := range AllStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether a project may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s.
func NextStatuses(s Status) []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}
