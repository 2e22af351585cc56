// Package planner считает, сколько времени займёт накопление целевой суммы
// при ежемесячных взносах под фиксированную ставку.
package planner

import (
	"errors"
	"math"
)

// MonthlyRate ежемесячная ставка доходности.
const MonthlyRate = 0.015

// Доля капитала в год по правилу 4%.
const safeWithdrawalRate = 0.04

var (
	// ErrInvalidInput одно из значений не положительно.
	ErrInvalidInput = errors.New("all values must be greater than zero")
	// ErrContributionExceedsIncome взнос больше свободного дохода.
	ErrContributionExceedsIncome = errors.New("monthly contribution exceeds available income")
)

// Input исходные данные.
type Input struct {
	Salary       float64 `json:"salary" validate:"gt=0"`
	Expenses     float64 `json:"expenses" validate:"gt=0"`
	Contribution float64 `json:"contribution" validate:"gt=0"`
	Target       float64 `json:"target" validate:"gt=0"`
}

// Result прогноз накоплений.
type Result struct {
	Months                int     `json:"months"`
	Years                 float64 `json:"years"`
	TotalContributed      float64 `json:"total_contributed"`
	EstimatedReturn       float64 `json:"estimated_return"`
	ReturnPercent         float64 `json:"return_percent"`
	AvailableIncome       float64 `json:"available_income"`
	ContributionPercent   float64 `json:"contribution_percent"`
	MonthlyIncomeFourPct  float64 `json:"monthly_income_four_percent"`
	MonthlyIncomeInterest float64 `json:"monthly_income_interest"`
}

// Calculate строит прогноз по формуле будущей стоимости аннуитета:
// n = ln(1 + T·r/M) / ln(1 + r). Дробное n используется для сумм,
// число месяцев округляется вверх.
func Calculate(in Input) (Result, error) {
	if !(in.Salary > 0 && in.Expenses > 0 && in.Contribution > 0 && in.Target > 0) {
		return Result{}, ErrInvalidInput
	}
	available := in.Salary - in.Expenses
	if in.Contribution > available {
		return Result{}, ErrContributionExceedsIncome
	}

	n := math.Log(1+in.Target*MonthlyRate/in.Contribution) / math.Log(1+MonthlyRate)
	total := in.Contribution * n
	ret := in.Target - total

	return Result{
		Months:                int(math.Ceil(n)),
		Years:                 n / 12,
		TotalContributed:      total,
		EstimatedReturn:       ret,
		ReturnPercent:         ret / total * 100,
		AvailableIncome:       available,
		ContributionPercent:   in.Contribution / in.Salary * 100,
		MonthlyIncomeFourPct:  in.Target * safeWithdrawalRate / 12,
		MonthlyIncomeInterest: in.Target * MonthlyRate,
	}, nil
}
