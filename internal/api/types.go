package api

// UploadResponse is the backend's answer to a file upload. When FromCache is
// true the analysis already ran for an identical file and Results is populated
// without a new job being scheduled.
type UploadResponse struct {
	JobID     string          `json:"job_id"`
	Status    string          `json:"status"`
	Message   string          `json:"message,omitempty"`
	FromCache bool            `json:"from_cache,omitempty"`
	Results   *AnalysisResult `json:"results,omitempty"`
}

// StatusResponse reports a single job's state. Results is present only when
// Status indicates success; Error carries the failure reason otherwise.
type StatusResponse struct {
	Status  string          `json:"status"`
	Results *AnalysisResult `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// JobSummary is one entry of the recent-jobs listing.
type JobSummary struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// AnalysisResult is the statistics payload produced by a completed analysis.
// The dashboard treats it as opaque except for the fields below, which are
// fixed by the backend contract.
type AnalysisResult struct {
	Summary                 string      `json:"summary,omitempty"`
	TempHumidityCorrelation *float64    `json:"temp_humidity_correlation,omitempty"`
	RecordCount             *int        `json:"record_count,omitempty"`
	DateRange               string      `json:"date_range,omitempty"`
	Daily                   []DailyStat `json:"daily,omitempty"`
}

// DailyStat is one point of the per-day temperature series. The backend
// returns the series already time-ordered.
type DailyStat struct {
	Date           string  `json:"date"`
	AvgTemperature float64 `json:"avg_temperature"`
}
