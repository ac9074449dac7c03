/*
data.go - Fixture data for the development seeder

PURPOSE:
  The fixed catalog the seeder installs: admin users, a diverse employee
  roster (monthly and daily salary types across departments), the regular
  holiday calendar, the company profile, and the published 2024 statutory
  bracket tables.

  Everything here is deterministic. The only randomness in seeding is the
  attendance/leave generation in seeder.go, driven by an injected source.
*/
package seed

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

func peso(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// =============================================================================
// USERS AND COMPANY
// =============================================================================

// Passwords here are development fixtures, pre-hashed offline with bcrypt.
// Authentication itself is out of scope for this service.
var seedUsers = []payroll.User{
	{
		Email:          "superadmin@company.com",
		Name:           "Super Administrator",
		Role:           payroll.RoleSuperAdmin,
		HashedPassword: "$2b$12$LJ3m4yIyGyXrCYkBEdfHk.p1rG0XU8DPmKJzV9wq5tOaUuyB1f9gS",
	},
	{
		Email:          "admin1@company.com",
		Name:           "Admin One",
		Role:           payroll.RoleAdmin,
		HashedPassword: "$2b$12$Qp2ZxWJ0mQeVtN8rYcLd7uFhB5aG9sT1kCwEyXnM4vRjD6bHiO3lm",
	},
	{
		Email:          "admin2@company.com",
		Name:           "Admin Two",
		Role:           payroll.RoleAdmin,
		HashedPassword: "$2b$12$Tk7WnXcV2bRfJ9pLqYs3heGdA8mZ0uN5oCvByEiQxS1rK4jM6tDla",
	},
}

var seedCompany = payroll.CompanyProfile{
	CompanyName:   "TechCorp Philippines Inc.",
	Address:       "123 Business Ave, Makati City, Metro Manila 1200",
	ContactNumber: "+63 2 8123 4567",
	Email:         "info@techcorp.ph",
	TaxID:         "123-456-789-000",
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var seedEmployees = []payroll.Employee{
	{
		Name: "Juan Dela Cruz", Email: "juan.delacruz@company.com",
		Contact: "+63 917 123 4567", Role: "Software Engineer", Department: "Engineering",
		SalaryType: payroll.SalaryMonthly, SalaryRate: peso(45000),
		Allowances:   map[string]decimal.Decimal{"transportation": peso(2000), "meal": peso(1500)},
		OvertimeRate: peso(1.25), NightRate: peso(1.10),
		HireDate: date(2020, time.January, 10),
	},
	{
		Name: "Maria Santos", Email: "maria.santos@company.com",
		Contact: "+63 918 234 5678", Role: "HR Manager", Department: "Human Resources",
		SalaryType: payroll.SalaryMonthly, SalaryRate: peso(55000),
		Allowances:   map[string]decimal.Decimal{"transportation": peso(2500), "meal": peso(2000)},
		OvertimeRate: peso(1.25), NightRate: peso(1.10),
		HireDate: date(2019, time.March, 15),
	},
	{
		Name: "Pedro Reyes", Email: "pedro.reyes@company.com",
		Contact: "+63 919 345 6789", Role: "Accountant", Department: "Finance",
		SalaryType: payroll.SalaryMonthly, SalaryRate: peso(40000),
		Allowances:   map[string]decimal.Decimal{"transportation": peso(1800), "meal": peso(1500)},
		OvertimeRate: peso(1.25), NightRate: peso(1.10),
		HireDate: date(2021, time.June, 1),
	},
	{
		Name: "Ana Gonzales", Email: "ana.gonzales@company.com",
		Contact: "+63 920 456 7890", Role: "Marketing Specialist", Department: "Marketing",
		SalaryType: payroll.SalaryMonthly, SalaryRate: peso(38000),
		Allowances:   map[string]decimal.Decimal{"transportation": peso(1500), "meal": peso(1200)},
		OvertimeRate: peso(1.25), NightRate: peso(1.10),
		HireDate: date(2022, time.February, 14),
	},
	{
		Name: "Jose Rizal", Email: "jose.rizal@company.com",
		Contact: "+63 921 567 8901", Role: "Project Manager", Department: "Engineering",
		SalaryType: payroll.SalaryMonthly, SalaryRate: peso(60000),
		Allowances:   map[string]decimal.Decimal{"transportation": peso(3000), "meal": peso(2500)},
		OvertimeRate: peso(1.25), NightRate: peso(1.10),
		HireDate: date(2020, time.September, 1),
	},
	{
		Name: "Carmen Torres", Email: "carmen.torres@company.com",
		Contact: "+63 922 678 9012", Role: "Designer", Department: "Creative",
		SalaryType: payroll.SalaryMonthly, SalaryRate: peso(42000),
		Allowances:   map[string]decimal.Decimal{"transportation": peso(2000), "meal": peso(1500)},
		OvertimeRate: peso(1.25), NightRate: peso(1.10),
		HireDate: date(2021, time.January, 20),
	},
	{
		Name: "Roberto Diaz", Email: "roberto.diaz@company.com",
		Contact: "+63 923 789 0123", Role: "Senior Developer", Department: "Engineering",
		SalaryType: payroll.SalaryMonthly, SalaryRate: peso(65000),
		Allowances:   map[string]decimal.Decimal{"transportation": peso(3000), "meal": peso(2500)},
		OvertimeRate: peso(1.25), NightRate: peso(1.10),
		HireDate: date(2018, time.May, 10),
	},
	{
		Name: "Linda Cruz", Email: "linda.cruz@company.com",
		Contact: "+63 924 890 1234", Role: "Customer Support", Department: "Operations",
		SalaryType: payroll.SalaryDaily, SalaryRate: peso(600),
		Allowances:   map[string]decimal.Decimal{"transportation": peso(100), "meal": peso(100)},
		OvertimeRate: peso(1.25), NightRate: peso(1.30),
		HireDate: date(2022, time.August, 1),
	},
}

// =============================================================================
// HOLIDAYS
// =============================================================================

type holidayFixture struct {
	name        string
	month       time.Month
	day         int
	description string
}

// Regular holidays observed every year; the seeder instantiates them for the
// current year.
var seedHolidays = []holidayFixture{
	{"New Year's Day", time.January, 1, "Start of the new year"},
	{"Labor Day", time.May, 1, "International Workers' Day"},
	{"Independence Day", time.June, 12, "Philippine Independence Day"},
	{"Bonifacio Day", time.November, 30, "National Heroes Day"},
	{"Christmas Day", time.December, 25, "Christmas celebration"},
	{"Rizal Day", time.December, 30, "Commemoration of Dr. Jose Rizal"},
}

// =============================================================================
// STATUTORY TABLES - 2024 published schedules
// =============================================================================

// DefaultContributionTables returns the 2024 contribution schedule: the SSS
// bracket table (₱500-per-bracket steps up to the ₱29,750 ceiling),
// PhilHealth at 4% of salary capped at ₱80,000 with a ₱400 floor, and
// Pag-IBIG at 2%/2% capped at ₱100 per side.
func DefaultContributionTables() payroll.ContributionTables {
	brackets := []payroll.SSSBracket{
		{Min: peso(0), Max: peso(4249.99), Total: peso(180), Employee: peso(80)},
	}
	// 41 arithmetic brackets: salary steps of 500, totals of 22.50,
	// employee shares of 10.
	for i := 1; i <= 41; i++ {
		min := 4250 + 500*float64(i-1)
		brackets = append(brackets, payroll.SSSBracket{
			Min:      peso(min),
			Max:      peso(min + 499.99),
			Total:    peso(180 + 22.5*float64(i)),
			Employee: peso(80 + 10*float64(i)),
		})
	}
	// Ceiling brackets: ₱24,750 through ₱29,749.99 and everything above
	// both pay the maximum.
	brackets = append(brackets,
		payroll.SSSBracket{Min: peso(24750), Max: peso(29749.99), Total: peso(1125), Employee: peso(500)},
		payroll.SSSBracket{Min: peso(29750), Max: peso(-1), Total: peso(1125), Employee: peso(500)},
	)

	return payroll.ContributionTables{
		SSSTable: payroll.SSSTable{
			Brackets:    brackets,
			MaxEmployee: peso(500),
			MaxEmployer: peso(625),
		},
		PhilHealthTable: payroll.PhilHealthTable{
			Rate:      peso(0.04),
			SalaryCap: peso(80000),
			MinTotal:  peso(400),
		},
		PagIBIGTable: payroll.PagIBIGTable{
			EmployeeRate: peso(0.02),
			EmployerRate: peso(0.02),
			MaxEmployee:  peso(100),
			MaxEmployer:  peso(100),
		},
	}
}

// DefaultTaxBrackets returns the TRAIN-law annual withholding schedule.
func DefaultTaxBrackets() []payroll.TaxBracket {
	return []payroll.TaxBracket{
		{Min: peso(0), Max: peso(250000), Rate: peso(0), BaseTax: peso(0)},
		{Min: peso(250001), Max: peso(400000), Rate: peso(0.15), BaseTax: peso(0)},
		{Min: peso(400001), Max: peso(800000), Rate: peso(0.20), BaseTax: peso(22500)},
		{Min: peso(800001), Max: peso(2000000), Rate: peso(0.25), BaseTax: peso(102500)},
		{Min: peso(2000001), Max: peso(8000000), Rate: peso(0.30), BaseTax: peso(402500)},
		{Min: peso(8000001), Max: peso(-1), Rate: peso(0.35), BaseTax: peso(2202500)},
	}
}

// DefaultBenefitsJSON serializes the contribution schedule for storage.
func DefaultBenefitsJSON() string {
	raw, _ := json.Marshal(DefaultContributionTables())
	return string(raw)
}

// DefaultTaxJSON serializes the withholding schedule for storage.
func DefaultTaxJSON() string {
	raw, _ := json.Marshal(DefaultTaxBrackets())
	return string(raw)
}
