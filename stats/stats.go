// Package stats reads course activity statistics from the
// local_presentation plugin.
package stats

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
)

// Period is the length of the intervals activity is counted over
type Period string

// Periods offered by the plugin
const (
	Monthly Period = "monthly"
	Weekly  Period = "weekly"
	Daily   Period = "daily"
)

// ErrInvalidPeriod indicates a period the plugin has no function for
var ErrInvalidPeriod = errors.New("invalid period")

// Valid reports whether p is one of Monthly, Weekly or Daily
func (p Period) Valid() bool {
	switch p {
	case Monthly, Weekly, Daily:
		return true
	}
	return false
}

// ActivityOptions bound the reported intervals
type ActivityOptions struct {
	Start *time.Time `url:"starttime,omitempty,unix"`
	End   *time.Time `url:"endtime,omitempty,unix"`
}

// Activity is the read and write activity of one role in one interval
type Activity struct {
	UniqueID        string `json:"uniqueid"`
	CourseID        int    `json:"courseid"`
	CourseShortName string `json:"courseshortname"`
	RoleID          int    `json:"roleid"`
	RoleShortName   string `json:"roleshortname"`
	TimeEnd         int64  `json:"timeend"`
	ActivityRead    int    `json:"activity_read"`
	ActivityWrite   int    `json:"activity_write"`
}

// End returns the time before which the activity occurred
func (a Activity) End() time.Time {
	return time.Unix(a.TimeEnd, 0)
}

// API wraps the statistics functions of one Moodle site
type API struct {
	client *moodle.Client
}

// New creates a stats API using client
func New(client *moodle.Client) *API {
	return &API{client: client}
}

// Monthly returns per-role activity of the course with shortname course, by month
func (a *API) Monthly(ctx context.Context, course string, opts ActivityOptions) ([]Activity, *moodle.Response, error) {
	return a.Activity(ctx, Monthly, course, opts)
}

// Weekly returns per-role activity of the course with shortname course, by week
func (a *API) Weekly(ctx context.Context, course string, opts ActivityOptions) ([]Activity, *moodle.Response, error) {
	return a.Activity(ctx, Weekly, course, opts)
}

// Daily returns per-role activity of the course with shortname course, by day
func (a *API) Daily(ctx context.Context, course string, opts ActivityOptions) ([]Activity, *moodle.Response, error) {
	return a.Activity(ctx, Daily, course, opts)
}

// Activity returns per-role activity of a course for the given period
func (a *API) Activity(ctx context.Context, period Period, course string, opts ActivityOptions) ([]Activity, *moodle.Response, error) {
	if err := form.Require(map[string]any{"course": course, "period": period}); err != nil {
		return nil, nil, err
	}
	if !period.Valid() {
		return nil, nil, fmt.Errorf("%w %q: expected monthly, weekly or daily", ErrInvalidPeriod, period)
	}

	params := url.Values{
		"course": {course},
	}
	if err := form.Record(params, "", opts); err != nil {
		return nil, nil, err
	}

	var activity []Activity
	function := fmt.Sprintf("local_presentation_get_stats_activity_%s_by_course", period)
	resp, err := a.client.Get(ctx, function, params, &activity)
	if err != nil {
		return nil, resp, err
	}
	return activity, resp, nil
}
