package domain

// transitions allowed status changes; terminal statuses have no entry
var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
}

// CanTransition reports whether an appointment may move from one status to another
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// AllowedTransitions returns the statuses reachable from the given one
func AllowedTransitions(from Status) []Status {
	out := make([]Status, 0, len(transitions[from]))
	for _, to := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled} {
		if transitions[from][to] {
			out = append(out, to)
		}
	}
	return out
}
