package analyticsapimodels

import applicationapimodels "recruit-backend/models/api/application"

type JobStats struct {
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"by_status"`
	Published int64            `json:"published_events"`
	Updated   int64            `json:"updated_events"`
}

type ApplicationStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type TopCandidate struct {
	CandidateID  int64                                  `json:"candidate_id"`
	Applications int64                                  `json:"applications"`
	Profile      *applicationapimodels.CandidateProfile `json:"profile,omitempty"`
}

type SummaryData struct {
	Jobs          JobStats         `json:"jobs"`
	Applications  ApplicationStats `json:"applications"`
	TopCandidates []TopCandidate   `json:"top_candidates"`
}

type SummaryResult struct {
	Summary SummaryData `json:"summary"`
}
