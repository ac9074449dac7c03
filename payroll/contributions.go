/*
contributions.go - Philippine statutory contributions (SSS, PhilHealth, Pag-IBIG)

PURPOSE:
  Computes the mandatory contribution shares for a monthly-equivalent salary.
  The bracket tables and rates are injected via ContributionTables - parsed
  from the benefits_config row for the pay period's year. There is no
  hardcoded fallback: a computation with no active config for its year fails
  with ErrMissingBenefitsConfig.

TABLE FORMAT (JSON stored in benefits_config.tables):
  {
    "sss": {"brackets": [{"min": 0, "max": 4249.99, "total": 180, "employee": 80}, ...],
            "max_employee": 500, "max_employer": 625},
    "philhealth": {"rate": 0.04, "salary_cap": 80000, "min_total": 400},
    "pagibig": {"employee_rate": 0.02, "employer_rate": 0.02,
                "max_employee": 100, "max_employer": 100}
  }

SEE ALSO:
  - seed/data.go: the published 2024 schedule the seeder installs
  - engine.go: where the shares land in the deductions map
*/
package payroll

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TABLE TYPES
// =============================================================================

// SSSBracket is one row of the SSS contribution schedule. Max < 0 marks the
// open-ended top bracket.
type SSSBracket struct {
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Total    decimal.Decimal `json:"total"`
	Employee decimal.Decimal `json:"employee"`
}

// SSSTable is the bracket schedule plus the ceiling shares applied above
// the highest bracket.
type SSSTable struct {
	Brackets    []SSSBracket    `json:"brackets"`
	MaxEmployee decimal.Decimal `json:"max_employee"`
	MaxEmployer decimal.Decimal `json:"max_employer"`
}

// PhilHealthTable: a flat rate on capped salary with a floor on the total,
// split equally between employee and employer.
type PhilHealthTable struct {
	Rate      decimal.Decimal `json:"rate"`
	SalaryCap decimal.Decimal `json:"salary_cap"`
	MinTotal  decimal.Decimal `json:"min_total"`
}

// PagIBIGTable: independent employee and employer rates, each with its own
// peso ceiling.
type PagIBIGTable struct {
	EmployeeRate decimal.Decimal `json:"employee_rate"`
	EmployerRate decimal.Decimal `json:"employer_rate"`
	MaxEmployee  decimal.Decimal `json:"max_employee"`
	MaxEmployer  decimal.Decimal `json:"max_employer"`
}

// ContributionTables bundles the three schemes for one config year.
type ContributionTables struct {
	SSSTable        SSSTable        `json:"sss"`
	PhilHealthTable PhilHealthTable `json:"philhealth"`
	PagIBIGTable    PagIBIGTable    `json:"pagibig"`
}

// ParseContributionTables decodes the stored JSON document of a
// benefits_config row.
func ParseContributionTables(doc string) (ContributionTables, error) {
	var t ContributionTables
	if err := json.Unmarshal([]byte(doc), &t); err != nil {
		return ContributionTables{}, fmt.Errorf("parse contribution tables: %w", err)
	}
	if len(t.SSSTable.Brackets) == 0 {
		return ContributionTables{}, fmt.Errorf("parse contribution tables: empty SSS schedule")
	}
	return t, nil
}

// =============================================================================
// SCHEME CALCULATIONS
// =============================================================================

// SSS walks the bracket schedule for the monthly salary and returns the
// employee and employer shares. The employer share is the bracket total
// minus the employee share. Salaries above the last bracket pay the ceiling.
func (t ContributionTables) SSS(monthlySalary decimal.Decimal) (employee, employer decimal.Decimal) {
	for _, b := range t.SSSTable.Brackets {
		if monthlySalary.LessThan(b.Min) {
			continue
		}
		if b.Max.Sign() >= 0 && monthlySalary.GreaterThan(b.Max) {
			continue
		}
		return Round2(b.Employee), Round2(b.Total.Sub(b.Employee))
	}
	return Round2(t.SSSTable.MaxEmployee), Round2(t.SSSTable.MaxEmployer)
}

// PhilHealth applies the flat rate to the capped salary, enforces the floor
// on the total, and splits equally.
func (t ContributionTables) PhilHealth(monthlySalary decimal.Decimal) (employee, employer decimal.Decimal) {
	capped := monthlySalary
	if capped.GreaterThan(t.PhilHealthTable.SalaryCap) {
		capped = t.PhilHealthTable.SalaryCap
	}
	total := capped.Mul(t.PhilHealthTable.Rate)
	if total.LessThan(t.PhilHealthTable.MinTotal) {
		total = t.PhilHealthTable.MinTotal
	}
	half := total.Div(decimal.NewFromInt(2))
	return Round2(half), Round2(half)
}

// PagIBIG applies each side's rate with its own cap.
func (t ContributionTables) PagIBIG(monthlySalary decimal.Decimal) (employee, employer decimal.Decimal) {
	employee = monthlySalary.Mul(t.PagIBIGTable.EmployeeRate)
	if employee.GreaterThan(t.PagIBIGTable.MaxEmployee) {
		employee = t.PagIBIGTable.MaxEmployee
	}
	employer = monthlySalary.Mul(t.PagIBIGTable.EmployerRate)
	if employer.GreaterThan(t.PagIBIGTable.MaxEmployer) {
		employer = t.PagIBIGTable.MaxEmployer
	}
	return Round2(employee), Round2(employer)
}

// Compute produces the full ContributionSet for a monthly-equivalent salary.
// IDs and entry linkage are filled in by the caller when persisting.
func (t ContributionTables) Compute(monthlySalary decimal.Decimal) ContributionSet {
	sssEE, sssER := t.SSS(monthlySalary)
	philEE, philER := t.PhilHealth(monthlySalary)
	pagEE, pagER := t.PagIBIG(monthlySalary)
	return ContributionSet{
		SSSEmployee:   sssEE,
		SSSEmployer:   sssER,
		PhilEmployee:  philEE,
		PhilEmployer:  philER,
		PagEmployee:   pagEE,
		PagEmployer:   pagER,
		TotalEmployee: Round2(sssEE.Add(philEE).Add(pagEE)),
		TotalEmployer: Round2(sssER.Add(philER).Add(pagER)),
		BaseSalary:    Round2(monthlySalary),
	}
}
