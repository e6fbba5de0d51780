package event

import "slices"

type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// Repeat is stored and returned as-is; occurrences are never expanded.
type Repeat struct {
	Type     RepeatType `json:"type"`
	Interval int        `json:"interval"`
}

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`      // YYYY-MM-DD
	StartTime   string `json:"startTime"` // HH:MM
	EndTime     string `json:"endTime"`   // HH:MM
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Repeat      Repeat `json:"repeat"`
	// NotificationTime is the lead time in minutes before StartTime.
	NotificationTime int `json:"notificationTime"`
}

var Categories = []string{"업무", "개인", "가족", "기타"}

// NotificationOptions are the lead times, in minutes, offered to the user.
var NotificationOptions = []int{1, 10, 60, 120, 1440}

func IsKnownCategory(category string) bool {
	return slices.Contains(Categories, category)
}

func IsKnownRepeatType(t RepeatType) bool {
	switch t {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}
