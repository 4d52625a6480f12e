package scorecards

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sbmops/scorecard/pkg/errors"
)

// Month is one discovered scorecard export file.
type Month struct {
	Name string // e.g. "December"
	Year int    // e.g. 2025
	Path string

	// Legacy marks files with the old export naming scheme, which
	// carries no month in the filename.
	Legacy bool
}

// Key returns the month in the <Month>_<Year> form used in filenames.
func (m Month) Key() string {
	if m.Legacy {
		return filepath.Base(m.Path)
	}
	return fmt.Sprintf("%s_%d", m.Name, m.Year)
}

// String returns a display label such as "December 2025".
func (m Month) String() string {
	if m.Legacy {
		return filepath.Base(m.Path)
	}
	return fmt.Sprintf("%s %d", m.Name, m.Year)
}

var monthFilePattern = regexp.MustCompile(`(?i)^(\w+)_(\d{4})_Scorecards\.csv$`)

const legacyFilePrefix = "Scorecard Review Executive Summary"

// Months lists the scorecard export files in dir, newest first. Files
// follow the <Month>_<YYYY>_Scorecards.csv pattern; old exports named
// "Scorecard Review Executive Summary*.csv" are tolerated and sorted
// after the dated files.
func Months(dir string) ([]Month, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	var months []Month
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if m := monthFilePattern.FindStringSubmatch(name); m != nil {
			year, _ := strconv.Atoi(m[2])
			months = append(months, Month{
				Name: m[1],
				Year: year,
				Path: filepath.Join(dir, name),
			})
			continue
		}
		if strings.HasPrefix(name, legacyFilePrefix) && strings.HasSuffix(name, ".csv") {
			months = append(months, Month{
				Path:   filepath.Join(dir, name),
				Legacy: true,
			})
		}
	}

	sort.SliceStable(months, func(i, j int) bool {
		a, b := months[i], months[j]
		if a.Legacy != b.Legacy {
			return !a.Legacy
		}
		if a.Legacy {
			return a.Path > b.Path // newest export copy has the highest suffix
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return monthOrder(a.Name) > monthOrder(b.Name)
	})
	return months, nil
}

// Latest returns the newest export in dir.
func Latest(dir string) (Month, error) {
	months, err := Months(dir)
	if err != nil {
		return Month{}, err
	}
	if len(months) == 0 {
		return Month{}, errors.NewNotFoundError("scorecard file", dir)
	}
	return months[0], nil
}

// Find returns the export whose key matches, e.g. "December_2025".
// Matching is case-insensitive.
func Find(dir, key string) (Month, error) {
	months, err := Months(dir)
	if err != nil {
		return Month{}, err
	}
	for _, m := range months {
		if strings.EqualFold(m.Key(), key) {
			return m, nil
		}
	}
	return Month{}, errors.NewNotFoundError("scorecard month", key)
}

func monthOrder(name string) int {
	t, err := time.Parse("January", name)
	if err != nil {
		return 0
	}
	return int(t.Month())
}
