package jobs

import "github.com/altocumulus/weatherdash/internal/api"

// Job is a backend job as tracked locally. Result is non-nil only when
// Phase is PhaseSuccess.
type Job struct {
	JobID     string              `json:"job_id"`
	Phase     Phase               `json:"phase"`
	RawStatus string              `json:"status"`
	Timestamp int64               `json:"timestamp"`
	Result    *api.AnalysisResult `json:"result,omitempty"`
}

// FromSummary builds a local Job from a recent-jobs listing entry.
func FromSummary(summary api.JobSummary) Job {
	return Job{
		JobID:     summary.JobID,
		Phase:     Classify(summary.Status).Phase,
		RawStatus: summary.Status,
		Timestamp: summary.Timestamp,
	}
}
