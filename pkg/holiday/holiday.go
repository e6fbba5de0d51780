package holiday

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed holidays.yaml
var embedded []byte

type dataset struct {
	Fixed map[string]string `yaml:"fixed"`
	Dated map[string]string `yaml:"dated"`
}

// Lookup answers which public holidays fall into a month.
type Lookup struct {
	fixed map[string]string // MM-DD
	dated map[string]string // YYYY-MM-DD
}

// Load reads the dataset at path, or the embedded Korean dataset when path is empty.
func Load(path string) (*Lookup, error) {
	if path == "" {
		return Parse(embedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}
	log.Infof("Loaded holidays from file: %s", path)
	return Parse(data)
}

func Parse(data []byte) (*Lookup, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse holidays: %w", err)
	}
	for day := range ds.Fixed {
		// 2024 is a leap year, so 02-29 is accepted
		if _, err := time.Parse("2006-01-02", "2024-"+day); err != nil {
			return nil, fmt.Errorf("invalid fixed holiday date %q: %w", day, err)
		}
	}
	for day := range ds.Dated {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", day, err)
		}
	}
	return &Lookup{fixed: ds.Fixed, dated: ds.Dated}, nil
}

// InMonth returns the holidays of the month keyed by YYYY-MM-DD. Names of
// holidays sharing a day are joined with ", ".
func (l *Lookup) InMonth(year int, month time.Month) map[string]string {
	holidays := make(map[string]string)
	add := func(date, name string) {
		names := strings.Split(holidays[date], ", ")
		if holidays[date] == "" {
			names = nil
		}
		names = append(names, name)
		sort.Strings(names)
		holidays[date] = strings.Join(names, ", ")
	}

	monthPrefix := fmt.Sprintf("%02d-", int(month))
	for day, name := range l.fixed {
		if !strings.HasPrefix(day, monthPrefix) {
			continue
		}
		date := fmt.Sprintf("%04d-%s", year, day)
		// fixed 02-29 only exists in leap years
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}
		add(date, name)
	}

	yearMonthPrefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	for date, name := range l.dated {
		if strings.HasPrefix(date, yearMonthPrefix) {
			add(date, name)
		}
	}
	return holidays
}
