package apimodels

import (
	"bytes"
	"encoding/json"
)

type Response struct {
	Status  string      `json:"status"`            //result of processing fail/success
	Message string      `json:"message,omitempty"` //error message
	Data    interface{} `json:"data,omitempty"`    //response payload
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` //total rows for lists, filter applied
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

// NewFieldErrorResponse wraps caller-correctable errors, the general message goes to Message.
func NewFieldErrorResponse(errs FieldErrors) Response {
	return Response{
		Status:  "fail",
		Message: errs.General(),
		Data:    errs,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // rows per page
	Page  int `json:"page"`  // page (1,2,3..)
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}

// GeneralError is the key of FieldErrors used for problems not bound to a field.
const GeneralError = "general"

// FieldErrors maps input field names to caller-facing messages.
type FieldErrors map[string]string

func NewGeneralError(message string) FieldErrors {
	return FieldErrors{GeneralError: message}
}

func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

func (e FieldErrors) General() string {
	return e[GeneralError]
}

// FlexString accepts both JSON strings and JSON numbers, html forms send either.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
