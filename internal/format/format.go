// Package format holds the pure view-data transformations of the dashboard:
// chart series, KPI tuples and relative timestamps. No state, no I/O.
package format

import (
	"fmt"
	"math"
	"strconv"

	"github.com/altocumulus/weatherdash/internal/api"
)

// MissingValue is rendered for KPI slots the result payload does not carry.
const MissingValue = "N/A"

// TemperaturePoint is one chart-ready point of the daily temperature series.
type TemperaturePoint struct {
	Date        string
	Temperature float64
}

// KPI is one labelled dashboard card value.
type KPI struct {
	Label    string
	Value    string
	Emphasis bool
}

// TemperatureSeries turns a result payload into chart-ready points. The
// backend already returns the series time-ordered, so order is preserved as
// is. Temperatures are rounded to two decimals.
func TemperatureSeries(result *api.AnalysisResult) []TemperaturePoint {
	if result == nil || len(result.Daily) == 0 {
		return []TemperaturePoint{}
	}

	points := make([]TemperaturePoint, 0, len(result.Daily))
	for _, day := range result.Daily {
		points = append(points, TemperaturePoint{
			Date:        day.Date,
			Temperature: math.Round(day.AvgTemperature*100) / 100,
		})
	}
	return points
}

// KPITuples extracts the fixed set of dashboard card values from a result.
// Missing fields render as the MissingValue sentinel instead of failing.
func KPITuples(result *api.AnalysisResult) []KPI {
	summary := MissingValue
	correlation := MissingValue
	records := MissingValue
	dateRange := MissingValue

	if result != nil {
		if result.Summary != "" {
			summary = result.Summary
		}
		if result.TempHumidityCorrelation != nil {
			correlation = strconv.FormatFloat(*result.TempHumidityCorrelation, 'f', 2, 64)
		}
		if result.RecordCount != nil {
			records = strconv.Itoa(*result.RecordCount)
		}
		if result.DateRange != "" {
			dateRange = result.DateRange
		}
	}

	return []KPI{
		{Label: "Summary", Value: summary, Emphasis: true},
		{Label: "Temp/Humidity correlation", Value: correlation, Emphasis: false},
		{Label: "Records analyzed", Value: records, Emphasis: false},
		{Label: "Date range", Value: dateRange, Emphasis: false},
	}
}

// RelativeAge buckets the age of a timestamp (epoch seconds) into a short
// human string. A future timestamp (clock skew) is clamped to zero instead
// of producing negative units.
func RelativeAge(timestampSeconds, now int64) string {
	delta := now - timestampSeconds
	if delta < 0 {
		delta = 0
	}

	switch {
	case delta < 60:
		return fmt.Sprintf("%ds ago", delta)
	case delta < 3600:
		return fmt.Sprintf("%dm ago", delta/60)
	case delta < 86400:
		return fmt.Sprintf("%dh ago", delta/3600)
	default:
		return fmt.Sprintf("%dd ago", delta/86400)
	}
}

// XAxisLabelInterval picks the label skip for a series of pointCount points:
// 0 (every label) up to 5 points, otherwise roughly 5 evenly spaced labels
// including the first and last.
func XAxisLabelInterval(pointCount int) int {
	if pointCount <= 5 {
		return 0
	}
	return (pointCount - 1) / 4
}
