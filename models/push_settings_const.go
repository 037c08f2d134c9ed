package models

type PushCode string

type PushTpl struct {
	Title string
	Msg   string
}

var PushCodeMap = map[PushCode]PushTpl{
	PushJobPublished:         {Title: "Job published", Msg: "Job «%v» is now live."},
	PushJobUpdated:           {Title: "Job updated", Msg: "Job «%v» was updated."},
	PushApplicationSubmitted: {Title: "New application", Msg: "%v applied to «%v»."},
	PushApplicationReapplied: {Title: "Candidate reapplied", Msg: "%v reapplied to «%v»."},
	PushApplicationNewStatus: {Title: "Application status changed", Msg: "Your application to «%v» is now %v."},
}

const (
	PushJobPublished         PushCode = "PushJobPublished"
	PushJobUpdated           PushCode = "PushJobUpdated"
	PushApplicationSubmitted PushCode = "PushApplicationSubmitted"
	PushApplicationReapplied PushCode = "PushApplicationReapplied"
	PushApplicationNewStatus PushCode = "PushApplicationNewStatus"
)
