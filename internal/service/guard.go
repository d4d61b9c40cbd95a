package service

// SendDecision is the outcome of the send guard for one invocation
type SendDecision int

const (
	// SendAllowed means both the schedule and duplicate gates passed
	SendAllowed SendDecision = iota
	// BlockedBySchedule means the current hour is not a target hour
	BlockedBySchedule
	// BlockedAsDuplicate means this date+hour slot already fired
	BlockedAsDuplicate
)

func (d SendDecision) String() string {
	switch d {
	case SendAllowed:
		return "allowed"
	case BlockedBySchedule:
		return "blocked by schedule"
	case BlockedAsDuplicate:
		return "blocked as duplicate"
	default:
		return "unknown"
	}
}

// EvaluateSend applies the two send gates for the given civil hour.
// An empty targetHours set means no schedule restriction. Force
// bypasses both gates.
func EvaluateSend(hour int, targetHours map[int]struct{}, sentHoursToday map[int]struct{}, force bool) SendDecision {
	if force {
		return SendAllowed
	}
	if len(targetHours) > 0 {
		if _, ok := targetHours[hour]; !ok {
			return BlockedBySchedule
		}
	}
	if _, ok := sentHoursToday[hour]; ok {
		return BlockedAsDuplicate
	}
	return SendAllowed
}
