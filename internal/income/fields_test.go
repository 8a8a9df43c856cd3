package income

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEnglishPayslip(t *testing.T) {
	text := `ACME WIDGETS SDN BHD
PAYSLIP - FEBRUARY 2026
Basic Salary : RM 5,200.00
Total Allowances : RM 800.00
EPF Employee : RM 572.00
Gross Salary : RM 6,000.00
Net Salary : RM 5,128.00`

	profile := NewExtractor().Extract(text)

	assert.InDelta(t, 5200, profile.BasicSalary, 0.001)
	assert.InDelta(t, 800, profile.Allowance, 0.001)
	assert.InDelta(t, 572, profile.EPFContribution, 0.001)
	assert.InDelta(t, 6000, profile.GrossSalary, 0.001)
	assert.InDelta(t, 5128, profile.NetSalary, 0.001)

	// annual_income and bank_inflow were absent, so exactly those two carry
	// notes.
	assert.Len(t, profile.Notes, 2)
}

func TestExtractMalayPayslip(t *testing.T) {
	text := `SYARIKAT MAJU JAYA
Gaji Pokok: 3,500.00
Elaun: 450.00
KWSP: 385.00
Gaji Kasar: 3,950.00
Gaji Bersih: 3,565.00`

	profile := NewExtractor().Extract(text)

	assert.InDelta(t, 3500, profile.BasicSalary, 0.001)
	assert.InDelta(t, 450, profile.Allowance, 0.001)
	assert.InDelta(t, 385, profile.EPFContribution, 0.001)
	assert.InDelta(t, 3950, profile.GrossSalary, 0.001)
	assert.InDelta(t, 3565, profile.NetSalary, 0.001)
}

func TestExtractBankInflow(t *testing.T) {
	text := `Statement Summary
Total Credits: RM 12,345.67`

	profile := NewExtractor().Extract(text)
	assert.InDelta(t, 12345.67, profile.BankInflow, 0.001)
}

func TestExtractMissingFieldsStayZeroWithNotes(t *testing.T) {
	profile := NewExtractor().Extract("nothing recognizable here")

	assert.Zero(t, profile.BasicSalary)
	assert.Zero(t, profile.NetSalary)
	assert.Zero(t, profile.GrossSalary)
	assert.Len(t, profile.Notes, 7, "every missing field gets its own note")

	for _, note := range profile.Notes {
		assert.Contains(t, note, "not found")
	}
}

func TestExtractFieldsAreIndependent(t *testing.T) {
	// Only the net figure is present; gross must NOT be inferred from it.
	profile := NewExtractor().Extract("Net Salary: 4,000.00")

	assert.InDelta(t, 4000, profile.NetSalary, 0.001)
	assert.Zero(t, profile.GrossSalary)
	assert.Zero(t, profile.BasicSalary)
}

func TestExtractFirstMatchWinsPerField(t *testing.T) {
	text := `Basic Salary: 5,000.00
Basic Salary: 9,999.00`

	profile := NewExtractor().Extract(text)
	assert.InDelta(t, 5000, profile.BasicSalary, 0.001)
}
