package models

type UserRole string

const (
	EmployerRole  UserRole = "Employer"
	RecruiterRole UserRole = "Recruiter"
	CandidateRole UserRole = "Candidate"
	AdminRole     UserRole = "Admin"
)

var roleHumanName = map[UserRole]string{
	EmployerRole:  "Employer",
	RecruiterRole: "Recruiter",
	CandidateRole: "Candidate",
	AdminRole:     "Administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

// CanManageJobs reports whether the role may publish or edit job postings.
func (r UserRole) CanManageJobs() bool {
	return r == EmployerRole || r == RecruiterRole || r == AdminRole
}

const SystemUser = "System"
