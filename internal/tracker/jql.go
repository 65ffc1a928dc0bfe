package tracker

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by JQL and Tempo.
const DateLayout = "2006-01-02"

// AssignedIssuesJQL selects the current user's issues that are not done, or
// whose status changed after doneSince.
func AssignedIssuesJQL(doneSince time.Time) string {
	return fmt.Sprintf(
		`(statusCategory NOT IN (Done) OR status CHANGED AFTER "%s") AND assignee IN (currentUser()) ORDER BY created DESC`,
		doneSince.Format(DateLayout),
	)
}
