package domain

import (
	"github.com/shopspring/decimal"
)

// YearRecord is one simulated year of a projection
type YearRecord struct {
	Age           int             `json:"age"`
	YearOffset    int             `json:"yearOffset"`
	EndingBalance decimal.Decimal `json:"endingBalance"`

	Buckets    AccountBalances `json:"buckets"`
	Withdrawal decimal.Decimal `json:"withdrawal"`
	RMD        decimal.Decimal `json:"rmd"`
	ReturnRate decimal.Decimal `json:"returnRate"`
	IsRetired  bool            `json:"isRetired"`
	Shortfall  decimal.Decimal `json:"shortfall"`
}

// IsDepleted reports whether the year ended with a shortfall against the planned withdrawal
func (yr YearRecord) IsDepleted() bool {
	return yr.Shortfall.GreaterThan(decimal.Zero)
}

// ScenarioBundle is one rate assumption's full projection
type ScenarioBundle struct {
	Name                string          `json:"name"`
	ReturnRate          decimal.Decimal `json:"returnRate"`
	Years               []YearRecord    `json:"years"`
	BalanceAtRetirement decimal.Decimal `json:"balanceAtRetirement"`
	FinalBalance        decimal.Decimal `json:"finalBalance"`
	InitialWithdrawal   decimal.Decimal `json:"initialWithdrawal"`
	SustainabilityYears Years           `json:"sustainabilityYears"`
}

// ScenarioResult bundles the optimistic, expected and pessimistic projections
type ScenarioResult struct {
	Optimistic  ScenarioBundle `json:"optimistic"`
	Expected    ScenarioBundle `json:"expected"`
	Pessimistic ScenarioBundle `json:"pessimistic"`
}

// Bundles returns the three scenarios in optimistic, expected, pessimistic order
func (sr *ScenarioResult) Bundles() []ScenarioBundle {
	return []ScenarioBundle{sr.Optimistic, sr.Expected, sr.Pessimistic}
}
