package api

import (
	"net/url"
	"strconv"
	"time"
)

// OrderBy is the sort key accepted by the rankings endpoint.
type OrderBy string

const (
	OrderByDuration      OrderBy = "duration"
	OrderByLaunches      OrderBy = "launches"
	OrderByNotifications OrderBy = "notifications"
)

// OrderByValues lists the sort keys in display order.
var OrderByValues = []OrderBy{OrderByDuration, OrderByLaunches, OrderByNotifications}

// Valid reports whether o is one of the known sort keys.
func (o OrderBy) Valid() bool {
	switch o {
	case OrderByDuration, OrderByLaunches, OrderByNotifications:
		return true
	}
	return false
}

// Next cycles through OrderByValues.
func (o OrderBy) Next() OrderBy {
	for i, v := range OrderByValues {
		if v == o {
			return OrderByValues[(i+1)%len(OrderByValues)]
		}
	}
	return OrderByDuration
}

// Granularity is the bucket size accepted by the trends endpoint.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

var GranularityValues = []Granularity{GranularityDaily, GranularityWeekly, GranularityMonthly}

func (g Granularity) Valid() bool {
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
		return true
	}
	return false
}

func (g Granularity) Next() Granularity {
	for i, v := range GranularityValues {
		if v == g {
			return GranularityValues[(i+1)%len(GranularityValues)]
		}
	}
	return GranularityDaily
}

// DateLayout is the YYYYMMDD form the backend uses for date codes.
const DateLayout = "20060102"

// ValidDate reports whether code is empty or a real calendar date in
// DateLayout.
func ValidDate(code string) bool {
	if code == "" {
		return true
	}
	if len(code) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, code)
	return err == nil
}

// OrderedRange swaps start and end when both are set and reversed.
func OrderedRange(start, end string) (string, string) {
	if start != "" && end != "" && start > end {
		return end, start
	}
	return start, end
}

// Zero values in every params struct mean "absent" and are left out of the
// query so the backend applies its own defaults.

type DeviceParams struct {
	Device string
}

type DailyParams struct {
	Start  string
	End    string
	Limit  int
	Device string
}

type RankingParams struct {
	Limit    int
	OrderBy  OrderBy
	Category string
	Device   string
}

type HourlyParams struct {
	Start  string
	End    string
	Device string
}

type TrendParams struct {
	Granularity Granularity
	Start       string
	End         string
	Device      string
}

type RangeParams struct {
	Start string
	End   string
}

func (p DeviceParams) values() url.Values {
	v := url.Values{}
	setString(v, "device", p.Device)
	return v
}

func (p DailyParams) values() url.Values {
	v := url.Values{}
	setString(v, "start", p.Start)
	setString(v, "end", p.End)
	setInt(v, "limit", p.Limit)
	setString(v, "device", p.Device)
	return v
}

func (p RankingParams) values() url.Values {
	v := url.Values{}
	setInt(v, "limit", p.Limit)
	setString(v, "orderBy", string(p.OrderBy))
	setString(v, "category", p.Category)
	setString(v, "device", p.Device)
	return v
}

func (p HourlyParams) values() url.Values {
	v := url.Values{}
	setString(v, "start", p.Start)
	setString(v, "end", p.End)
	setString(v, "device", p.Device)
	return v
}

func (p TrendParams) values() url.Values {
	v := url.Values{}
	setString(v, "granularity", string(p.Granularity))
	setString(v, "start", p.Start)
	setString(v, "end", p.End)
	setString(v, "device", p.Device)
	return v
}

func (p RangeParams) values() url.Values {
	v := url.Values{}
	setString(v, "start", p.Start)
	setString(v, "end", p.End)
	return v
}

func setString(v url.Values, k, s string) {
	if s != "" {
		v.Set(k, s)
	}
}

func setInt(v url.Values, k string, n int) {
	if n > 0 {
		v.Set(k, strconv.Itoa(n))
	}
}
