package report

import (
	"fmt"
	"strings"
	"worklog/pkg"

	"github.com/samber/lo"
)

const (
	// MaxSheetName is the longest sheet name spreadsheet applications accept.
	MaxSheetName = 31
	SummarySheet = "Summary"

	issuesSuffix  = " - Issues"
	monthlySuffix = " - Monthly"
	detailSuffix  = " - Detail"
	// userPrefix leaves room for the longest suffix.
	userPrefix = MaxSheetName - len(monthlySuffix)
)

var (
	headerStyle        = Style{Fill: "366092", FontColor: "FFFFFF", Bold: true, Border: true, Align: AlignCenter, Wrap: true}
	statHeaderStyle    = Style{Fill: "70AD47", FontColor: "FFFFFF", Bold: true, Border: true, Align: AlignCenter, Wrap: true}
	issueTitleStyle    = Style{Fill: "4472C4", FontColor: "FFFFFF", Bold: true, Size: 12, Align: AlignLeft}
	summaryTitleStyle  = Style{Fill: "FFC000", FontColor: "000000", Bold: true, Size: 14, Align: AlignCenter}
	summaryHeaderStyle = Style{Fill: "FFC000", Bold: true, Border: true, Align: AlignCenter, Wrap: true}
	grandTotalStyle    = Style{Fill: "E7E6E6", Bold: true, Size: 12, Border: true, Align: AlignCenter}
	boldStyle          = Style{Bold: true}
	borderStyle        = Style{Border: true}
	centeredStyle      = Style{Border: true, Align: AlignCenter}
	totalStyle         = Style{Bold: true, Border: true}
)

var (
	issueHeaders   = []interface{}{"Date", "Duration", "Hours", "Comment"}
	monthlyHeaders = []interface{}{"Month", "Issues", "Worklogs", "Days", "Hours", "Minutes", "Total (h)"}
	detailHeaders  = []interface{}{"Issue Key", "Summary", "Project", "Type", "Status", "Author", "Started", "Duration", "Hours", "Comment"}
	summaryHeaders = []interface{}{"User", "Issues", "Worklogs", "Days", "Hours", "Minutes", "Total (h)"}

	issueWidths   = []float64{20, 15, 12, 60, 15, 15, 15}
	detailWidths  = []float64{15, 50, 15, 15, 15, 25, 20, 15, 12, 50}
	monthlyWidth  = 18.0
	summaryWidths = []float64{25, 18, 18, 18, 18, 18, 18}
)

// Run is one report: the requested users in order, the query and the rollup per user.
type Run struct {
	Users   []string
	Query   string
	Rollups map[string]*pkg.Rollup
}

// Empty reports whether no requested user has a single worklog.
func (run Run) Empty() bool {
	for _, user := range run.Users {
		if !run.Rollups[user].Empty() {
			return false
		}
	}
	return true
}

// Reported returns the rollups of the users that have worklogs, in request order.
func (run Run) Reported() []*pkg.Rollup {
	rollups := make([]*pkg.Rollup, 0, len(run.Users))
	for _, user := range run.Users {
		if rollup := run.Rollups[user]; !rollup.Empty() {
			rollups = append(rollups, rollup)
		}
	}
	return rollups
}

// Totals sums up the reported users. Issues counts the union of their issue keys.
func (run Run) Totals() (issues, count, seconds int) {
	reported := run.Reported()
	keys := lo.Uniq(lo.FlatMap(reported, func(rollup *pkg.Rollup, _ int) []string {
		return rollup.IssueKeys
	}))
	count = lo.SumBy(reported, func(rollup *pkg.Rollup) int { return rollup.Count })
	seconds = lo.SumBy(reported, func(rollup *pkg.Rollup) int { return rollup.Seconds })
	return len(keys), count, seconds
}

// Build lays out the workbook. Users without worklogs get no sheets. With more than one
// requested user a summary sheet comes first.
func Build(run Run) *Workbook {
	workbook := &Workbook{}
	names := newSheetNames()
	if len(run.Users) > 1 {
		names.reserve(SummarySheet)
	}
	for _, rollup := range run.Reported() {
		workbook.Add(issuesSheet(names.name(rollup.User, issuesSuffix), rollup))
		workbook.Add(monthlySheet(names.name(rollup.User, monthlySuffix), rollup))
		workbook.Add(detailSheet(names.name(rollup.User, detailSuffix), rollup))
	}
	if len(run.Users) > 1 {
		workbook.Insert(0, summarySheet(run))
	}
	return workbook
}

func issuesSheet(name string, rollup *pkg.Rollup) *Sheet {
	sheet := NewSheet(name)
	row := 1
	for _, key := range rollup.Issues.Keys() {
		group := rollup.Issues[key]

		sheet.Merge(row, 1, len(issueWidths))
		sheet.Set(row, 1, fmt.Sprintf("%s - %s", key, group.Issue.Summary), issueTitleStyle)
		row++

		sheet.SetRow(row, boldStyle,
			"Project:", string(group.Issue.Project),
			"Type:", group.Issue.Type,
			"Status:", group.Issue.Status,
		)
		row++

		sheet.SetRow(row, headerStyle, issueHeaders...)
		row++

		for _, worklog := range group.Worklogs {
			sheet.SetRow(row, borderStyle,
				worklog.StartedAt.Format(pkg.IsoDateTimeMinute),
				worklog.TimeSpent,
				pkg.Hours(worklog.TimeSpentSeconds),
				string(worklog.Comment),
			)
			row++
		}

		seconds := group.Seconds()
		sheet.SetRow(row, totalStyle, "TOTAL:", pkg.FormatDayHourMinute(seconds), pkg.Hours(seconds))
		row += 2
	}
	for i, width := range issueWidths {
		sheet.Width(i+1, width)
	}
	return sheet
}

func monthlySheet(name string, rollup *pkg.Rollup) *Sheet {
	sheet := NewSheet(name)
	sheet.SetRow(1, statHeaderStyle, monthlyHeaders...)
	row := 2
	for _, month := range rollup.Months.Keys() {
		bucket := rollup.Months[month]
		days, hours, minutes := pkg.DayHourMinute(bucket.Seconds)
		sheet.SetRow(row, centeredStyle,
			month, len(bucket.Issues), bucket.Count, days, hours, minutes, pkg.Hours(bucket.Seconds),
		)
		row++
	}
	for i := range monthlyHeaders {
		sheet.Width(i+1, monthlyWidth)
	}
	return sheet
}

func detailSheet(name string, rollup *pkg.Rollup) *Sheet {
	sheet := NewSheet(name)
	sheet.SetRow(1, headerStyle, detailHeaders...)
	for i, worklog := range rollup.Worklogs {
		sheet.SetRow(i+2, borderStyle,
			worklog.Issue.Key,
			worklog.Issue.Summary,
			string(worklog.Issue.Project),
			worklog.Issue.Type,
			worklog.Issue.Status,
			worklog.Author.DisplayName,
			worklog.Started,
			worklog.TimeSpent,
			pkg.Hours(worklog.TimeSpentSeconds),
			string(worklog.Comment),
		)
	}
	for i, width := range detailWidths {
		sheet.Width(i+1, width)
	}
	return sheet
}

func summarySheet(run Run) *Sheet {
	sheet := NewSheet(SummarySheet)
	sheet.Merge(1, 1, len(summaryHeaders))
	sheet.Set(1, 1, "USER SUMMARY", summaryTitleStyle)
	sheet.SetRow(2, Style{}, "JQL:", run.Query)
	sheet.SetRow(3, summaryHeaderStyle, summaryHeaders...)

	row := 4
	for _, rollup := range run.Reported() {
		days, hours, minutes := pkg.DayHourMinute(rollup.Seconds)
		sheet.SetRow(row, centeredStyle,
			rollup.User, len(rollup.IssueKeys), rollup.Count, days, hours, minutes, pkg.Hours(rollup.Seconds),
		)
		row++
	}

	issues, count, seconds := run.Totals()
	days, hours, minutes := pkg.DayHourMinute(seconds)
	sheet.SetRow(row, grandTotalStyle, "TOTAL:", issues, count, days, hours, minutes, pkg.Hours(seconds))

	for i, width := range summaryWidths {
		sheet.Width(i+1, width)
	}
	return sheet
}

// sheetNames hands out unique, valid sheet names.
type sheetNames struct {
	taken map[string]struct{}
}

func newSheetNames() *sheetNames {
	return &sheetNames{taken: map[string]struct{}{}}
}

func (names *sheetNames) reserve(name string) {
	names.taken[strings.ToLower(name)] = struct{}{}
}

func (names *sheetNames) name(user, suffix string) string {
	prefix := []rune(sanitizeSheetName(user))
	if len(prefix) > userPrefix {
		prefix = prefix[:userPrefix]
	}
	name := string(prefix) + suffix
	for i := 2; names.exists(name); i++ {
		counter := fmt.Sprintf("~%d", i)
		shortened := prefix
		if len(shortened)+len(counter) > userPrefix {
			shortened = shortened[:userPrefix-len(counter)]
		}
		name = string(shortened) + counter + suffix
	}
	names.reserve(name)
	return name
}

func (names *sheetNames) exists(name string) bool {
	_, ok := names.taken[strings.ToLower(name)]
	return ok
}

var sheetNameReplacer = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")

func sanitizeSheetName(name string) string {
	name = strings.Trim(sheetNameReplacer.Replace(name), "'")
	if name == "" {
		return "_"
	}
	return name
}
