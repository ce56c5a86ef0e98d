package payments

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubadmin/internal/models"
)

func payment(id, memberID string, state models.State, amount int64) models.Payment {
	return models.Payment{
		ID:       id,
		MemberID: memberID,
		Period:   models.Period{Month: 5, Year: 2025},
		Amount:   decimal.NewFromInt(amount),
		State:    state,
	}
}

func TestRollupByMember(t *testing.T) {
	members := []models.Member{
		{ID: "m1", FullName: "Ana Suarez", Active: true},
		{ID: "m2", FullName: "Bruno Diaz", Active: true},
	}
	paymentList := []models.Payment{
		payment("p1", "m1", models.StatePending, 1000),
		payment("p2", "m1", models.StatePaid, 1000),
		payment("p3", "m1", models.StateOverdue, 1000),
		payment("p4", "ghost", models.StatePaid, 1000),
	}

	rollups, warnings := RollupByMember(paymentList, members)

	require.Contains(t, rollups, "m1")
	r := rollups["m1"]
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 1, r.ByState[models.StatePending])
	assert.Equal(t, 1, r.ByState[models.StatePaid])
	assert.Equal(t, 1, r.ByState[models.StateOverdue])
	assert.Equal(t, 0, r.ByState[models.StateRejected])
	assert.Equal(t, "Ana Suarez", r.Member.FullName)

	assert.NotContains(t, rollups, "m2", "members without payments get no rollup")
	assert.NotContains(t, rollups, "ghost")

	require.Len(t, warnings, 1)
	assert.Equal(t, "p4", warnings[0].PaymentID)
	assert.Equal(t, "ghost", warnings[0].MemberID)
}

func TestRollupCountsSumToTotal(t *testing.T) {
	members := []models.Member{{ID: "m1"}}
	paymentList := []models.Payment{
		payment("p1", "m1", models.StatePending, 100),
		payment("p2", "m1", models.StatePaid, 100),
		payment("p3", "m1", models.StatePaid, 100),
		payment("p4", "m1", models.StateRejected, 100),
	}

	rollups, warnings := RollupByMember(paymentList, members)

	assert.Empty(t, warnings)
	r := rollups["m1"]
	sum := 0
	for _, s := range models.States {
		sum += r.ByState[s]
	}
	assert.Equal(t, r.Total, sum)
	assert.Len(t, r.Payments, r.Total)
}

func TestRollupIsDeterministic(t *testing.T) {
	members := []models.Member{{ID: "m1"}, {ID: "m2"}}
	paymentList := []models.Payment{
		payment("p1", "m1", models.StatePending, 100),
		payment("p2", "m2", models.StatePaid, 200),
		payment("p3", "nobody", models.StateOverdue, 300),
	}

	first, warn1 := RollupByMember(paymentList, members)
	second, warn2 := RollupByMember(paymentList, members)

	assert.Equal(t, first, second)
	assert.Equal(t, warn1, warn2)
}

func TestComputeStatistics(t *testing.T) {
	paymentList := []models.Payment{
		payment("p1", "m1", models.StatePaid, 1000),
		payment("p2", "m1", models.StatePaid, 500),
		payment("p3", "m2", models.StatePending, 1000),
		payment("p4", "m2", models.StateOverdue, 500),
	}

	stats := ComputeStatistics(paymentList)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.CountByState[models.StatePaid])
	assert.Equal(t, 1, stats.CountByState[models.StatePending])
	assert.Equal(t, 1, stats.CountByState[models.StateOverdue])
	assert.Equal(t, 0, stats.CountByState[models.StateRejected])

	assert.True(t, stats.TotalAmount.Equal(decimal.NewFromInt(3000)), "total %s", stats.TotalAmount)
	assert.True(t, stats.PaidAmount.Equal(decimal.NewFromInt(1500)), "paid %s", stats.PaidAmount)
	assert.True(t, stats.OutstandingAmount.Equal(decimal.NewFromInt(1500)), "outstanding %s", stats.OutstandingAmount)

	assert.InDelta(t, 50.0, stats.PercentageByState[models.StatePaid], 1e-9)
	assert.InDelta(t, 25.0, stats.PercentageByState[models.StatePending], 1e-9)
	assert.InDelta(t, 0.0, stats.PercentageByState[models.StateRejected], 1e-9)
	assert.InDelta(t, 50.0, stats.CollectionRate, 1e-9)
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil)

	assert.Equal(t, 0, stats.Total)
	for _, s := range models.States {
		assert.Equal(t, 0, stats.CountByState[s])
		assert.Zero(t, stats.PercentageByState[s], "state %s", s)
	}
	assert.True(t, stats.TotalAmount.IsZero())
	assert.True(t, stats.PaidAmount.IsZero())
	assert.True(t, stats.OutstandingAmount.IsZero())
	assert.Zero(t, stats.CollectionRate)
}
