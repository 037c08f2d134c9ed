package xlsexport

import (
	analyticsapimodels "recruit-backend/models/api/analytics"
	applicationapimodels "recruit-backend/models/api/application"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportSummary(t *testing.T) {
	data := analyticsapimodels.SummaryData{
		Jobs: analyticsapimodels.JobStats{
			Total:     3,
			ByStatus:  map[string]int64{"active": 2, "closed": 1},
			Published: 3,
			Updated:   1,
		},
		Applications: analyticsapimodels.ApplicationStats{
			Total:    4,
			ByStatus: map[string]int64{"Applied": 3, "Withdrawn": 1},
		},
		TopCandidates: []analyticsapimodels.TopCandidate{
			{CandidateID: 20, Applications: 2, Profile: &applicationapimodels.CandidateProfile{FullName: "Jane Doe", Email: "jane@mail.test"}},
			{CandidateID: 21, Applications: 1},
		},
	}
	buf, err := impl{}.ExportSummary(data)
	require.Nil(t, err)

	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer f.Close()
	require.Equal(t, []string{"Jobs", "Applications", "Top candidates"}, f.GetSheetList())

	value, err := f.GetCellValue("Jobs", "A1")
	require.Nil(t, err)
	require.Equal(t, "Status", value)
	value, err = f.GetCellValue("Jobs", "B2")
	require.Nil(t, err)
	require.Equal(t, "2", value)

	rows, err := f.GetRows("Top candidates")
	require.Nil(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"20", "Jane Doe", "jane@mail.test", "2"}, rows[1])
	require.Equal(t, "21", rows[2][0])
}
