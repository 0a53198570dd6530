package models

import "time"

// DateCondition is the comparison operator a user picks for the check-in date
// column. The values are the literal labels shown in the condition dropdown.
type DateCondition string

const (
	CondAfter      DateCondition = "is after"
	CondOnOrAfter  DateCondition = "is on or after"
	CondBefore     DateCondition = "is before"
	CondBeforeOrOn DateCondition = "is before or on"
	CondBetween    DateCondition = "is between"
	CondInLast     DateCondition = "is in the last"
	CondEqual      DateCondition = "is equal to"
)

// Time units accepted by the "is in the last" condition.
const (
	UnitDays   = "days"
	UnitMonths = "months"
	UnitHours  = "hours"
)

// TextFilterSpec holds the per-column substring queries. An empty string
// means no constraint on that column. All matches are case-insensitive and
// the populated constraints are ANDed together.
type TextFilterSpec struct {
	Name      string `form:"name" json:"name"`
	BookingID string `form:"bookingId" json:"bookingId"`
	City      string `form:"city" json:"city"`
	State     string `form:"state" json:"state"`
}

// Empty reports whether no text constraint is set.
func (t TextFilterSpec) Empty() bool {
	return t.Name == "" && t.BookingID == "" && t.City == "" && t.State == ""
}

// DateFilterSpec describes one date condition. Which payload fields are
// meaningful depends on Condition: SelectedDate for the single-reference
// conditions, StartDate/EndDate for "is between", Value/TimeUnit for
// "is in the last".
//
// Now is the reference clock for "is in the last"; the zero value means
// time.Now(). Comparisons are always at calendar-day granularity, including
// when TimeUnit is hours — that matches the panel's historical behavior and
// is deliberate.
type DateFilterSpec struct {
	Condition    DateCondition `json:"condition"`
	SelectedDate time.Time     `json:"selectedDate"`
	StartDate    time.Time     `json:"startDate"`
	EndDate      time.Time     `json:"endDate"`
	Value        int           `json:"value"`
	TimeUnit     string        `json:"timeUnit"`

	Now time.Time `json:"-"`
}
