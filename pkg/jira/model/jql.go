package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"worklog/pkg"
)

const (
	jqlWorklogDate    = "worklogDate >= '%s' AND worklogDate < '%s'"
	jqlWorklogProject = "project in ('%s')"
	jqlWorklogAuthor  = "worklogAuthor in (%s)"
)

var jqlOrderBy = regexp.MustCompile(`(?i)\s*\border\s+by\b`)

type Jql []string

// Filter adds a free form query.
func (query Jql) Filter(filter string) Jql {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return query
	}
	return query.with(filter)
}

func (query Jql) Projects(projects ...pkg.Project) Jql {
	if len(projects) == 0 {
		return query
	}
	result := make([]string, len(projects))
	for i, project := range projects {
		result[i] = string(project)
	}
	return query.with(fmt.Sprintf(jqlWorklogProject, strings.Join(result, "','")))
}

func (query Jql) Users(users ...Account) Jql {
	if len(users) == 0 {
		return query
	}
	result := make([]string, len(users))
	for i, user := range users {
		result[i] = string(user)
	}
	return query.with(fmt.Sprintf(jqlWorklogAuthor, "'"+strings.Join(result, "','")+"'"))
}

func (query Jql) Between(fromDate, toDate time.Time) Jql {
	return query.with(fmt.Sprintf(jqlWorklogDate, fromDate.Format(pkg.IsoYearMonthDaySlash), toDate.Format(pkg.IsoYearMonthDaySlash)))
}

// with returns a copy with the clause added, the receiver stays untouched.
func (query Jql) with(clause string) Jql {
	result := make(Jql, len(query), len(query)+1)
	copy(result, query)
	return append(result, clause)
}

// Build joins the clauses with AND. A single clause is used verbatim. Otherwise every clause is
// parenthesized and an ORDER BY found in any clause is moved to the end of the query.
func (query Jql) Build() string {
	if len(query) == 1 {
		return query[0]
	}
	order := ""
	parts := make([]string, 0, len(query))
	for _, part := range query {
		if location := jqlOrderBy.FindStringIndex(part); location != nil {
			order = " " + strings.TrimSpace(part[location[0]:])
			part = part[:location[0]]
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts = append(parts, "("+part+")")
	}
	return strings.Join(parts, " AND ") + order
}
