package v3

import (
	"strings"
	"worklog/pkg"
	"worklog/pkg/jira/model"
)

type PaginatedResult struct {
	MaxResults int   `json:"maxResults"`
	StartAt    int   `json:"startAt"`
	Total      int   `json:"total"`
	IsLast     *bool `json:"isLast,omitempty"`
}

type myselfResult struct {
	AccountId   model.Account `json:"accountId"`
	DisplayName string        `json:"displayName"`
	TimeZone    string        `json:"timeZone"`
}

type author struct {
	AccountId    model.Account `json:"accountId"`
	EmailAddress string        `json:"emailAddress"`
	DisplayName  string        `json:"displayName"`
}

func (author author) Id() model.Account {
	return author.AccountId
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
	Jql           string   `json:"jql"`
	Fields        []string `json:"fields"`
	MaxResults    int      `json:"maxResults"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}

type issueQueryResult struct {
	ApiIssues     []issue `json:"issues"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
	IsLast        bool    `json:"isLast"`
}

type countQuery struct {
	Jql string `json:"jql"`
}

type countResult struct {
	Count int `json:"count"`
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

// document is a node of the Atlassian Document Format.
type document struct {
	Type    string      `json:"type"`
	Text    string      `json:"text,omitempty"`
	Content []*document `json:"content,omitempty"`
}

// text concatenates the text nodes, one line per paragraph.
func (node *document) text() string {
	if node == nil {
		return ""
	}
	if node.Type == "text" || (node.Type == "" && node.Text != "") {
		return node.Text
	}
	if node.Type == "hardBreak" {
		return "\n"
	}
	var builder strings.Builder
	for _, child := range node.Content {
		if child.Type == "paragraph" && builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(child.text())
	}
	return builder.String()
}

type worklogItem struct {
	ApiAuthor           author    `json:"author"`
	UpdateAuthor        author    `json:"updateAuthor"`
	ApiComment          *document `json:"comment,omitempty"`
	ApiStarted          string    `json:"started"`
	ApiTimeSpent        string    `json:"timeSpent"`
	ApiTimeSpentSeconds int       `json:"timeSpentSeconds"`
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
	return pkg.Description(item.ApiComment.text())
}
