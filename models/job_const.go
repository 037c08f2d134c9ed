package models

import "strings"

// QuestionsPerJob is the fixed size of a job's screening-question set.
const QuestionsPerJob = 3

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

var JobStatuses = []JobStatus{JobStatusActive, JobStatusPaused, JobStatusClosed}

func (s JobStatus) IsValid() bool {
	for _, status := range JobStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseJobStatus lower-cases and trims the raw value, ok is false for unknown statuses.
func ParseJobStatus(raw string) (status JobStatus, ok bool) {
	status = JobStatus(strings.ToLower(strings.TrimSpace(raw)))
	return status, status.IsValid()
}

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentTemporary  EmploymentType = "temporary"
)

var employmentTypes = map[EmploymentType]bool{
	EmploymentFullTime:   true,
	EmploymentPartTime:   true,
	EmploymentContract:   true,
	EmploymentInternship: true,
	EmploymentTemporary:  true,
}

func (e EmploymentType) IsValid() bool {
	return employmentTypes[e]
}

type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "Applied"
	ApplicationStatusReviewed  ApplicationStatus = "Reviewed"
	ApplicationStatusInterview ApplicationStatus = "Interview"
	ApplicationStatusRejected  ApplicationStatus = "Rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "Withdrawn"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusApplied,
	ApplicationStatusReviewed,
	ApplicationStatusInterview,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

func (s ApplicationStatus) IsValid() bool {
	for _, status := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsActive() bool {
	return s != ApplicationStatusWithdrawn
}

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied:   {ApplicationStatusReviewed, ApplicationStatusInterview, ApplicationStatusRejected},
	ApplicationStatusReviewed:  {ApplicationStatusInterview, ApplicationStatusRejected},
	ApplicationStatusInterview: {ApplicationStatusRejected},
}

// CanMoveTo reports whether a reviewer may move an application from s to next.
// Withdrawal is not a reviewer transition.
func (s ApplicationStatus) CanMoveTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
