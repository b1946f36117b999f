package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altocumulus/weatherdash/internal/api"
)

func TestTemperatureSeries_EmptyOnNilOrAbsent(t *testing.T) {
	assert.Empty(t, TemperatureSeries(nil))
	assert.Empty(t, TemperatureSeries(&api.AnalysisResult{}))
}

func TestTemperatureSeries_PreservesOrderAndLength(t *testing.T) {
	result := &api.AnalysisResult{
		Daily: []api.DailyStat{
			{Date: "2026-08-01", AvgTemperature: 21.456},
			{Date: "2026-08-02", AvgTemperature: 19.999},
			{Date: "2026-08-03", AvgTemperature: -3.14159},
		},
	}

	series := TemperatureSeries(result)
	require.Len(t, series, 3)
	assert.Equal(t, "2026-08-01", series[0].Date)
	assert.Equal(t, "2026-08-02", series[1].Date)
	assert.Equal(t, "2026-08-03", series[2].Date)
	assert.Equal(t, 21.46, series[0].Temperature)
	assert.Equal(t, 20.0, series[1].Temperature)
	assert.Equal(t, -3.14, series[2].Temperature)
}

func TestKPITuples_MissingFieldsRenderSentinel(t *testing.T) {
	kpis := KPITuples(&api.AnalysisResult{})
	require.Len(t, kpis, 4)

	for _, kpi := range kpis {
		assert.Equal(t, MissingValue, kpi.Value, "slot %q", kpi.Label)
	}
}

func TestKPITuples_NilResultDoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		kpis := KPITuples(nil)
		assert.Len(t, kpis, 4)
	})
}

func TestKPITuples_PopulatedFields(t *testing.T) {
	correlation := 0.8274
	records := 12480
	result := &api.AnalysisResult{
		Summary:                 "Warm and humid week",
		TempHumidityCorrelation: &correlation,
		RecordCount:             &records,
		DateRange:               "2026-08-01 to 2026-08-07",
	}

	kpis := KPITuples(result)
	require.Len(t, kpis, 4)

	assert.Equal(t, "Summary", kpis[0].Label)
	assert.Equal(t, "Warm and humid week", kpis[0].Value)
	assert.True(t, kpis[0].Emphasis)

	assert.Equal(t, "0.83", kpis[1].Value)
	assert.Equal(t, "12480", kpis[2].Value)
	assert.Equal(t, "2026-08-01 to 2026-08-07", kpis[3].Value)
}

func TestRelativeAge_Buckets(t *testing.T) {
	now := int64(1_000_000)

	assert.Equal(t, "45s ago", RelativeAge(now-45, now))
	assert.Equal(t, "2m ago", RelativeAge(now-125, now))
	assert.Equal(t, "2h ago", RelativeAge(now-7200, now))
	assert.Equal(t, "2d ago", RelativeAge(now-172800, now))
}

func TestRelativeAge_FutureTimestampClampsToZero(t *testing.T) {
	now := int64(1_000_000)
	assert.Equal(t, "0s ago", RelativeAge(now+30, now))
}

func TestXAxisLabelInterval(t *testing.T) {
	assert.Equal(t, 0, XAxisLabelInterval(1))
	assert.Equal(t, 0, XAxisLabelInterval(5))
	assert.Equal(t, 1, XAxisLabelInterval(6))
	assert.Equal(t, 5, XAxisLabelInterval(21))
	assert.Equal(t, 7, XAxisLabelInterval(30))
}
