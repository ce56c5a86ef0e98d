package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubadmin/internal/models"
	"clubadmin/internal/payments"
)

func TestBuildPeriodReport(t *testing.T) {
	period := models.Period{Month: 5, Year: 2025}
	members := []models.Member{{ID: "m1", FullName: "Ana Suarez"}}
	paymentList := []models.Payment{
		{
			ID:       "p1",
			MemberID: "m1",
			Period:   period,
			Amount:   decimal.NewFromInt(1500),
			State:    models.StatePaid,
		},
		{
			ID:       "p2",
			MemberID: "ghost",
			Period:   period,
			Amount:   decimal.NewFromInt(500),
			State:    models.StatePending,
		},
	}
	stats := payments.ComputeStatistics(paymentList)

	f, err := BuildPeriodReport(&period, paymentList, members, stats)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Payments", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ana Suarez", name)

	rawID, err := f.GetCellValue("Payments", "B3")
	require.NoError(t, err)
	assert.Equal(t, "ghost", rawID, "unknown member falls back to the raw id")

	periodCell, err := f.GetCellValue("Payments", "C2")
	require.NoError(t, err)
	assert.Equal(t, "5/2025", periodCell)

	scope, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "5/2025", scope)

	total, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}

func TestBuildPeriodReportAllPeriods(t *testing.T) {
	f, err := BuildPeriodReport(nil, nil, nil, payments.ComputeStatistics(nil))
	require.NoError(t, err)
	defer f.Close()

	scope, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "all periods", scope)
}
