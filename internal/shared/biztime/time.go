// Package biztime provides business timezone utilities. All storage and
// transport use UTC; the business timezone only decides date boundaries,
// such as the BASE_DATE sent on inventory queries.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Asia/Seoul"

	// CompactDateLayout is the upstream's compact date format.
	CompactDateLayout = "20060102"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to Asia/Seoul.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone location, auto-initializing with the
// default timezone if Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// CompactDate formats t as YYYYMMDD in the business timezone.
func CompactDate(t time.Time) string {
	return t.In(Location()).Format(CompactDateLayout)
}

// TodayCompact returns today's date as YYYYMMDD in the business timezone.
func TodayCompact() string {
	return CompactDate(time.Now())
}
