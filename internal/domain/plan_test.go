package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueString_FallsBackToKey(t *testing.T) {
	withSummary := &Issue{IssueKey: "ABC-1", Fields: map[string]any{"summary": "Fix login"}}
	assert.Equal(t, "ABC-1 - Fix login", withSummary.String())

	numeric := &Issue{IssueKey: "ABC-2", Fields: map[string]any{"summary": 42.0}}
	assert.Equal(t, "ABC-2", numeric.String())

	noFields := &Issue{IssueKey: "ABC-3"}
	assert.Equal(t, "ABC-3", noFields.String())
}

func TestStaticTaskString(t *testing.T) {
	assert.Equal(t, "ADM-1 - Meetings", (&StaticTask{TaskKey: "ADM-1", Description: "Meetings"}).String())
	assert.Equal(t, "ADM-2", (&StaticTask{TaskKey: "ADM-2"}).String())
}

func TestWeekPlan_EntriesPreserveOrder(t *testing.T) {
	mon := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	a := &StaticTask{TaskKey: "A"}
	b := &StaticTask{TaskKey: "B"}

	plan := WeekPlan{
		Start: mon,
		Days: []DayPlan{
			{Date: mon, Entries: []Entry{{Date: mon, Task: a, Duration: time.Hour}, {Date: mon, Task: b, Duration: 2 * time.Hour}}},
			{Date: mon.AddDate(0, 0, 1), Entries: []Entry{{Date: mon.AddDate(0, 0, 1), Task: b, Duration: 30 * time.Minute}}},
		},
	}

	entries := plan.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "A", entries[0].Task.Key())
	assert.Equal(t, "B", entries[1].Task.Key())
	assert.Equal(t, mon.AddDate(0, 0, 1), entries[2].Date)
	assert.Equal(t, 3, plan.Len())
	assert.Equal(t, 3*time.Hour+30*time.Minute, plan.Total())
	assert.Equal(t, 3*time.Hour, plan.Days[0].Total())
}

func TestCloneAttributes_Independent(t *testing.T) {
	orig := []WorkAttribute{{Key: "k", Value: "v"}}
	clone := CloneAttributes(orig)
	clone[0].Value = "changed"
	assert.Equal(t, "v", orig[0].Value)
	assert.Nil(t, CloneAttributes(nil))
}
