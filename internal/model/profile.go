package model

// IncomeProfile aggregates the labeled income figures pulled from payslip or
// statement text. Every field is independently optional and zero-defaulted;
// fields are never inferred from one another.
type IncomeProfile struct {
	BasicSalary     float64
	Allowance       float64
	EPFContribution float64
	NetSalary       float64
	GrossSalary     float64
	AnnualIncome    float64
	BankInflow      float64
	Notes           []string // one note per field that could not be found
}

// CommitmentFigure is the total monthly commitment read from a credit-bureau
// report. A zero amount with a non-empty note means no pattern matched and
// the figure requires manual entry; it is not a true zero commitment.
type CommitmentFigure struct {
	Amount float64
	Note   string
}

// DsrStatus buckets a debt-service ratio.
type DsrStatus string

const (
	DsrPass       DsrStatus = "PASS"
	DsrBorderline DsrStatus = "BORDERLINE"
	DsrHigh       DsrStatus = "HIGH"
)

// DsrResult is the outcome of a debt-service-ratio computation.
type DsrResult struct {
	MonthlyPayment float64
	DsrPercent     float64
	Status         DsrStatus
}
