package v2

import (
	"worklog/pkg"
	"worklog/pkg/jira/model"
)

type PaginatedQuery struct {
	StartAt    int `json:"startAt"`
	MaxResults int `json:"maxResults"`
}

type PaginatedResult struct {
	MaxResults int   `json:"maxResults"`
	StartAt    int   `json:"startAt"`
	Total      int   `json:"total"`
	IsLast     *bool `json:"isLast,omitempty"`
}

type myselfResult struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	TimeZone    string `json:"timeZone"`
}

type author struct {
	ApiName      model.Account `json:"name"`
	Key          string        `json:"key"`
	EmailAddress string        `json:"emailAddress"`
	DisplayName  string        `json:"displayName"`
}

func (author author) Id() model.Account {
	return author.ApiName
}

func (author author) Name() string {
	return author.DisplayName
}

type named struct {
	Name string `json:"name"`
}

type issue struct {
	Id     string         `json:"id"`
	ApiKey model.IssueKey `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Project struct {
			Id   string      `json:"id"`
			Key  pkg.Project `json:"key"`
			Name string      `json:"name"`
		} `json:"project"`
		IssueType named `json:"issuetype"`
		Status    named `json:"status"`
	} `json:"fields"`
}

func (issue issue) Key() model.IssueKey {
	return issue.ApiKey
}

func (issue issue) Summary() string {
	return issue.Fields.Summary
}

func (issue issue) Project() pkg.Project {
	return issue.Fields.Project.Key
}

func (issue issue) Type() string {
	return issue.Fields.IssueType.Name
}

func (issue issue) Status() string {
	return issue.Fields.Status.Name
}

type issueQuery struct {
	*PaginatedQuery
	Fields []string `json:"fields"`
	Jql    string   `json:"jql"`
}

type issueQueryResult struct {
	*PaginatedResult
	ApiIssues []issue `json:"issues"`
}

func (result issueQueryResult) issues() []model.Issue {
	issues := make([]model.Issue, len(result.ApiIssues))
	for e := range issues {
		issues[e] = result.ApiIssues[e]
	}
	return issues
}

type worklogQueryResult struct {
	*PaginatedResult
	ApiWorklogs []*worklogItem `json:"worklogs"`
}

func (result worklogQueryResult) worklogs() []model.Worklog {
	worklogs := make([]model.Worklog, len(result.ApiWorklogs))
	for e := range worklogs {
		worklogs[e] = result.ApiWorklogs[e]
	}
	return worklogs
}

type worklogItem struct {
	ApiAuthor           author `json:"author"`
	UpdateAuthor        author `json:"updateAuthor"`
	ApiComment          string `json:"comment,omitempty"`
	ApiStarted          string `json:"started"`
	ApiTimeSpent        string `json:"timeSpent"`
	ApiTimeSpentSeconds int    `json:"timeSpentSeconds"`
}

func (item *worklogItem) Author() model.Author {
	return item.ApiAuthor
}

func (item *worklogItem) Started() string {
	return item.ApiStarted
}

func (item *worklogItem) TimeSpent() string {
	return item.ApiTimeSpent
}

func (item *worklogItem) TimeSpentSeconds() int {
	return item.ApiTimeSpentSeconds
}

func (item *worklogItem) Comment() pkg.Description {
	return pkg.Description(item.ApiComment)
}
