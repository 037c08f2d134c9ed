package xlsexport

import (
	"bytes"
	"recruit-backend/models"
	analyticsapimodels "recruit-backend/models/api/analytics"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportSummary(data analyticsapimodels.SummaryData) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	jobsSheet       = "Jobs"
	applicationsSht = "Applications"
	candidatesSheet = "Top candidates"
)

var (
	statusHeaders    = []string{"Status", "Count"}
	candidateHeaders = []string{"Candidate ID", "Name", "Email", "Applications"}
)

func (i impl) ExportSummary(data analyticsapimodels.SummaryData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	if err := f.SetSheetName("Sheet1", jobsSheet); err != nil {
		return nil, errors.Wrap(err, "failed to rename xlsx sheet")
	}
	for _, sheet := range []string{applicationsSht, candidatesSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, errors.Wrap(err, "failed to add xlsx sheet")
		}
	}

	jobRows := make([][]interface{}, 0, len(models.JobStatuses)+3)
	for _, status := range models.JobStatuses {
		jobRows = append(jobRows, []interface{}{string(status), data.Jobs.ByStatus[string(status)]})
	}
	jobRows = append(jobRows,
		[]interface{}{"total", data.Jobs.Total},
		[]interface{}{"published events", data.Jobs.Published},
		[]interface{}{"updated events", data.Jobs.Updated},
	)
	if err := writeTable(f, jobsSheet, statusHeaders, jobRows); err != nil {
		return nil, errors.Wrap(err, "failed to write jobs sheet")
	}

	applicationRows := make([][]interface{}, 0, len(models.ApplicationStatuses)+1)
	for _, status := range models.ApplicationStatuses {
		applicationRows = append(applicationRows, []interface{}{string(status), data.Applications.ByStatus[string(status)]})
	}
	applicationRows = append(applicationRows, []interface{}{"total", data.Applications.Total})
	if err := writeTable(f, applicationsSht, statusHeaders, applicationRows); err != nil {
		return nil, errors.Wrap(err, "failed to write applications sheet")
	}

	candidateRows := make([][]interface{}, 0, len(data.TopCandidates))
	for _, item := range data.TopCandidates {
		name, email := "", ""
		if item.Profile != nil {
			name = item.Profile.FullName
			email = item.Profile.Email
		}
		candidateRows = append(candidateRows, []interface{}{item.CandidateID, name, email, item.Applications})
	}
	if err := writeTable(f, candidatesSheet, candidateHeaders, candidateRows); err != nil {
		return nil, errors.Wrap(err, "failed to write candidates sheet")
	}
	return f.WriteToBuffer()
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	row, err := writeHeader(f, sheet, 0, headers)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if err = applyDataCellStyle(f, sheet, 1, row+1, len(headers), row+len(rows)); err != nil {
		return err
	}
	for _, values := range rows {
		row++
		for col, value := range values {
			if err = writeColumn(f, sheet, col+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}
