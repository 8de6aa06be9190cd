package pkg

import (
	"sort"

	"github.com/samber/lo"
)

type IssueGroup struct {
	Issue    Issue
	Worklogs Worklogs
}

func (group *IssueGroup) Seconds() int {
	return group.Worklogs.Seconds()
}

type IssueGroups map[string]*IssueGroup

// Keys returns the issue keys in ascending order.
func (groups IssueGroups) Keys() []string {
	keys := lo.Keys(groups)
	sort.Strings(keys)
	return keys
}

type MonthBucket struct {
	Month   string
	Issues  map[string]struct{}
	Seconds int
	Count   int
}

type MonthBuckets map[string]*MonthBucket

// Keys returns the month keys in ascending order.
func (buckets MonthBuckets) Keys() []string {
	keys := lo.Keys(buckets)
	sort.Strings(keys)
	return keys
}

// GroupByIssue folds the worklogs into one group per issue key. Worklogs keep their input
// order inside a group. Issue metadata is taken from the last worklog of the key, which
// assumes that every worklog of an issue carries the same issue metadata.
func (ws Worklogs) GroupByIssue() IssueGroups {
	groups := make(IssueGroups)
	for _, worklog := range ws {
		group, ok := groups[worklog.Issue.Key]
		if !ok {
			group = &IssueGroup{}
			groups[worklog.Issue.Key] = group
		}
		group.Issue = worklog.Issue
		group.Worklogs = append(group.Worklogs, worklog)
	}
	return groups
}

// MonthlyStats folds the worklogs into one bucket per started month.
// Entries with zero seconds still count.
func (ws Worklogs) MonthlyStats() MonthBuckets {
	buckets := make(MonthBuckets)
	for _, worklog := range ws {
		month := worklog.Month()
		bucket, ok := buckets[month]
		if !ok {
			bucket = &MonthBucket{Month: month, Issues: map[string]struct{}{}}
			buckets[month] = bucket
		}
		bucket.Issues[worklog.Issue.Key] = struct{}{}
		bucket.Seconds += worklog.TimeSpentSeconds
		bucket.Count++
	}
	return buckets
}

// Rollup is everything the report needs to know about one user.
type Rollup struct {
	User     string
	Worklogs Worklogs
	Issues   IssueGroups
	Months   MonthBuckets
	// IssueKeys are the distinct issue keys in order of first appearance.
	IssueKeys []string
	Count     int
	Seconds   int
}

func NewRollup(user string, worklogs Worklogs) *Rollup {
	return &Rollup{
		User:      user,
		Worklogs:  worklogs,
		Issues:    worklogs.GroupByIssue(),
		Months:    worklogs.MonthlyStats(),
		IssueKeys: worklogs.IssueKeys(),
		Count:     len(worklogs),
		Seconds:   worklogs.Seconds(),
	}
}

func (rollup *Rollup) Empty() bool {
	return rollup == nil || rollup.Count == 0
}
