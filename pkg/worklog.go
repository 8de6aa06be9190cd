package pkg

import (
	"time"
)

type User struct {
	// Name is the identity the tracker attributes worklogs to.
	Name        string
	DisplayName string
	TimeZone    *time.Location
}

type Project string

type Description string

type Issue struct {
	Key     string
	Summary string
	Project Project
	Type    string
	Status  string
}

// Worklog is one logged time entry on one issue by one author.
// TimeSpentSeconds is the only field used for arithmetic, TimeSpent is for display.
type Worklog struct {
	Issue            Issue
	Author           User
	Started          string
	StartedAt        time.Time
	TimeSpent        string
	TimeSpentSeconds int
	Comment          Description
}

type Worklogs []Worklog

// Month is the YYYY-MM bucket the worklog belongs to.
func (worklog Worklog) Month() string {
	return worklog.StartedAt.Format(IsoYearMonth)
}

func (ws Worklogs) Seconds() int {
	total := 0
	for _, worklog := range ws {
		total += worklog.TimeSpentSeconds
	}
	return total
}

// IssueKeys returns the distinct issue keys in order of first appearance.
func (ws Worklogs) IssueKeys() []string {
	seen := make(map[string]struct{}, len(ws))
	keys := make([]string, 0, len(ws))
	for _, worklog := range ws {
		if _, ok := seen[worklog.Issue.Key]; ok {
			continue
		}
		seen[worklog.Issue.Key] = struct{}{}
		keys = append(keys, worklog.Issue.Key)
	}
	return keys
}

// ByAuthor keeps the worklogs whose author identity equals name.
func (ws Worklogs) ByAuthor(name string) Worklogs {
	result := make(Worklogs, 0, len(ws))
	for _, worklog := range ws {
		if worklog.Author.Name == name {
			result = append(result, worklog)
		}
	}
	return result
}

// Between keeps the worklogs started within [from, to).
func (ws Worklogs) Between(from, to time.Time) Worklogs {
	result := make(Worklogs, 0, len(ws))
	for _, worklog := range ws {
		if !worklog.StartedAt.Before(from) && worklog.StartedAt.Before(to) {
			result = append(result, worklog)
		}
	}
	return result
}
