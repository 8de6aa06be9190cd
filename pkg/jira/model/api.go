package model

import (
	"worklog/pkg"
)

// Account is the identity a worklog author is matched by. It is the user name on Jira
// Server and Data Center and the account id on Jira Cloud.
type Account string

type IssueKey string

type Api interface {
	UserAccessor
	IssueAccessor
	WorklogAccessor
}

type UserAccessor interface {
	Myself() (*pkg.User, error)
}

type IssueAccessor interface {
	// Issues returns one page of the search. An empty page asks for the first one, later
	// pages are requested with IssuePage.Next.
	Issues(jql Jql, page string, maxResults int) (*IssuePage, error)
}

type WorklogAccessor interface {
	// Worklog returns every worklog of the issue in tracker order.
	Worklog(key IssueKey) ([]Worklog, error)
}

type IssuePage struct {
	// Total is the number of matching issues. It is only reliable on the first page.
	Total  int
	Issues []Issue
	// Next requests the following page, empty on the last one.
	Next string
}

type Issue interface {
	Key() IssueKey
	Summary() string
	Project() pkg.Project
	Type() string
	Status() string
}

type Worklog interface {
	Author() Author
	Started() string
	TimeSpent() string
	TimeSpentSeconds() int
	Comment() pkg.Description
}

type Author interface {
	Id() Account
	Name() string
}
