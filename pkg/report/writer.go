package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"worklog/pkg"
)

const (
	Extension = ".xlsx"
	// maxNamedUsers is the number of users that still appear by name in the file name.
	maxNamedUsers = 3
)

var filenameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")

// FileName returns worklog_<users>_<timestamp>.xlsx. More than three users are replaced by
// their count.
func FileName(users []string, now time.Time) string {
	tag := fmt.Sprintf("%d_users", len(users))
	if len(users) <= maxNamedUsers {
		tag = filenameReplacer.Replace(strings.Join(users, "_"))
	}
	return fmt.Sprintf("worklog_%s_%s%s", tag, now.Format(pkg.FileTimestamp), Extension)
}

// WriteFile serializes the workbook into dir, which is created if missing. The file is
// written under a temporary name and renamed once complete. An existing report is never
// replaced, a counter is appended instead.
func WriteFile(workbook *Workbook, dir string, users []string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, ".worklog-*"+Extension)
	if err != nil {
		return "", err
	}
	defer func() {
		// Gone after a successful rename.
		_ = os.Remove(tmp.Name())
	}()

	if err = workbook.Write(tmp); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}

	path, err := freePath(filepath.Join(dir, FileName(users, now)))
	if err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

func freePath(path string) (string, error) {
	base := strings.TrimSuffix(path, Extension)
	candidate := path
	for i := 2; ; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s_%d%s", base, i, Extension)
	}
}
