package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{Salary: 10000, Expenses: 5000, Contribution: 1000, Target: 100000})
	require.NoError(t, err)

	assert.Equal(t, 62, res.Months)
	assert.InDelta(t, 5.1286, res.Years, 1e-4)
	assert.InDelta(t, 61543.06, res.TotalContributed, 0.01)
	assert.InDelta(t, 38456.94, res.EstimatedReturn, 0.01)
	assert.InDelta(t, 62.488, res.ReturnPercent, 1e-3)
	assert.InDelta(t, 5000, res.AvailableIncome, 1e-9)
	assert.InDelta(t, 10, res.ContributionPercent, 1e-9)
	assert.InDelta(t, 333.333, res.MonthlyIncomeFourPct, 1e-3)
	assert.InDelta(t, 1500, res.MonthlyIncomeInterest, 1e-9)
}

func TestCalculate_ConsistencyProperties(t *testing.T) {
	inputs := []Input{
		{Salary: 5000, Expenses: 2000, Contribution: 500, Target: 10000},
		{Salary: 3000, Expenses: 1000, Contribution: 2000, Target: 1e6},
	}
	for _, in := range inputs {
		res, err := Calculate(in)
		require.NoError(t, err)

		n := res.Years * 12
		assert.Equal(t, int(math.Ceil(n)), res.Months)
		assert.InDelta(t, in.Contribution*n, res.TotalContributed, 1e-6)
		assert.InDelta(t, in.Target-res.TotalContributed, res.EstimatedReturn, 1e-6)
		assert.GreaterOrEqual(t, res.EstimatedReturn, 0.0)
	}
}

// Меньше одного месяца взносов: M·n превышает цель, доходность отрицательна.
func TestCalculate_TargetReachedWithinFirstMonth(t *testing.T) {
	in := Input{Salary: 20000, Expenses: 1, Contribution: 19999, Target: 1}
	res, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Months)
	assert.Less(t, res.Years*12, 1.0)
	assert.InDelta(t, in.Target-res.TotalContributed, res.EstimatedReturn, 1e-9)
	assert.Negative(t, res.EstimatedReturn)
}

func TestCalculate_ReferenceExamples(t *testing.T) {
	t.Run("contribution within disposable income", func(t *testing.T) {
		in := Input{Salary: 5000, Expenses: 2000, Contribution: 1000, Target: 100000}
		res, err := Calculate(in)
		require.NoError(t, err)

		assert.Equal(t, 62, res.Months)
		assert.Less(t, res.TotalContributed, in.Target)
		assert.InDelta(t, 61543.06, res.TotalContributed, 0.01)
		assert.Equal(t, in.Target-res.TotalContributed, res.EstimatedReturn)
	})

	t.Run("contribution above disposable income", func(t *testing.T) {
		res, err := Calculate(Input{Salary: 3000, Expenses: 2000, Contribution: 1500, Target: 100000})
		assert.ErrorIs(t, err, ErrContributionExceedsIncome)
		assert.Equal(t, Result{}, res)
	})
}

func TestCalculate_ContributionEqualToAvailableIncome(t *testing.T) {
	res, err := Calculate(Input{Salary: 5000, Expenses: 2000, Contribution: 3000, Target: 50000})
	require.NoError(t, err)
	assert.Positive(t, res.Months)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want error
	}{
		{name: "zero salary", in: Input{Salary: 0, Expenses: 1, Contribution: 1, Target: 1}, want: ErrInvalidInput},
		{name: "negative expenses", in: Input{Salary: 10, Expenses: -1, Contribution: 1, Target: 1}, want: ErrInvalidInput},
		{name: "zero contribution", in: Input{Salary: 10, Expenses: 1, Contribution: 0, Target: 1}, want: ErrInvalidInput},
		{name: "zero target", in: Input{Salary: 10, Expenses: 1, Contribution: 1, Target: 0}, want: ErrInvalidInput},
		{name: "NaN target", in: Input{Salary: 10, Expenses: 1, Contribution: 1, Target: math.NaN()}, want: ErrInvalidInput},
		{name: "contribution exceeds income", in: Input{Salary: 5000, Expenses: 4500, Contribution: 600, Target: 1000}, want: ErrContributionExceedsIncome},
		{name: "expenses exceed salary", in: Input{Salary: 1000, Expenses: 2000, Contribution: 1, Target: 1000}, want: ErrContributionExceedsIncome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, Result{}, res)
		})
	}
}
