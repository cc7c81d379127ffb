package booking

// CanAdmit decides whether one more booking may be admitted to an
// event, given its capacity and the current booking count. The
// comparison is strict equality: a count already past the capacity
// (only possible through concurrent writers) no longer blocks
// admission. Pure decision, no side effects.
func CanAdmit(maxAttendees, currentCount int) bool {
	return currentCount != maxAttendees
}
