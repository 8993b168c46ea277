package util

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jinzhu/now"
)

// Datetime related utility functions.
// General convention for date functions - suffix Z if utc based.
const (
	DATETIME_FORMAT_YYYYMMDD_HYPHEN string = "2006-01-02"
	DATETIME_FORMAT_DB              string = "2006-01-02 15:04:05"
	DATETIME_FORMAT_DAY_LABEL       string = "Jan 2"
	DATETIME_FORMAT_HOUR_LABEL      string = "Jan 2, 3 PM"
	DATETIME_FORMAT_MONTH_LABEL     string = "Jan 2006"
)

// Granularities as sent on the group-by property ("grn") of a query.
const (
	GranularityHour    = "hour"
	GranularityDate    = "date"
	GranularityDay     = "day"
	GranularityWeek    = "week"
	GranularityMonth   = "month"
	GranularityQuarter = "quarter"
)

func IsDateTimeGranularity(grn string) bool {
	switch grn {
	case GranularityHour, GranularityDate, GranularityDay,
		GranularityWeek, GranularityMonth, GranularityQuarter:
		return true
	}
	return false
}

// Layouts accepted for datetime typed cells coming on query results.
// Cells also appear as epoch seconds, numeric or string.
var cellTimeLayouts = []string{
	time.RFC3339,
	DATETIME_FORMAT_DB,
	DATETIME_FORMAT_YYYYMMDD_HYPHEN,
	"Jan 2 15:04",
	"Jan 2 2006 15:04",
}

// ParseCellTime Parses a result cell holding a datetime value. Epoch
// seconds and the known string layouts are supported.
func ParseCellTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC(), true
	case int64:
		return time.Unix(v, 0).UTC(), true
	case int:
		return time.Unix(int64(v), 0).UTC(), true
	case string:
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(epoch, 0).UTC(), true
		}
		for _, layout := range cellTimeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// DateLabelByGranularity Returns the display label for a datetime bucket.
// Weekly buckets label with the beginning of the week, quarters get a Q
// prefix.
func DateLabelByGranularity(t time.Time, grn string) string {
	switch grn {
	case GranularityHour:
		return t.Format(DATETIME_FORMAT_HOUR_LABEL)
	case GranularityWeek:
		// week buckets arrive as their start date already
		return t.Format(DATETIME_FORMAT_DAY_LABEL)
	case GranularityMonth:
		return now.New(t).BeginningOfMonth().Format(DATETIME_FORMAT_MONTH_LABEL)
	case GranularityQuarter:
		return fmt.Sprintf("Q%s", now.New(t).BeginningOfQuarter().Format(DATETIME_FORMAT_MONTH_LABEL))
	default:
		return t.Format(DATETIME_FORMAT_DAY_LABEL)
	}
}

// WeekRangeLabel Returns the "start to end" label used on weekly bucketed
// columns.
func WeekRangeLabel(t time.Time) string {
	start := now.New(t).BeginningOfWeek()
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%s to %s", start.Format(DATETIME_FORMAT_DAY_LABEL),
		end.Format(DATETIME_FORMAT_DAY_LABEL))
}

func TimeNowZ() time.Time {
	return time.Now().UTC()
}
