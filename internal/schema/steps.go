package schema

// Enum option tables. Values are the codes stored in payloads and drafts;
// labels are what the Review page and notifier messages show.
var (
	CreditScoreOptions = []Option{
		{"excellent", "Excellent (720+)"},
		{"good", "Good (680-719)"},
		{"fair", "Fair (620-679)"},
		{"poor", "Poor (580-619)"},
		{"bad", "Bad (Below 580)"},
	}

	AnnualIncomeOptions = []Option{
		{"under50k", "Under $50,000"},
		{"50k-75k", "$50,000 - $75,000"},
		{"75k-100k", "$75,000 - $100,000"},
		{"100k-150k", "$100,000 - $150,000"},
		{"150k-200k", "$150,000 - $200,000"},
		{"over200k", "Over $200,000"},
	}

	PropertyTypeOptions = []Option{
		{"single_family", "Single Family Home"},
		{"multi_family", "Multi-Family"},
		{"condo", "Condominium"},
		{"townhouse", "Townhouse"},
		{"commercial", "Commercial"},
		{"land", "Vacant Land"},
	}

	LoanPurposeOptions = []Option{
		{"purchase", "Purchase"},
		{"refinance", "Refinance"},
		{"cashout", "Cash-Out Refinance"},
		{"construction", "Construction"},
		{"renovation", "Renovation"},
		{"other", "Other"},
	}

	LoanTermOptions = []Option{
		{"6months", "6 Months"},
		{"12months", "12 Months"},
		{"18months", "18 Months"},
		{"24months", "24 Months"},
		{"36months", "36 Months"},
		{"custom", "Custom Term"},
	}

	ExitStrategyOptions = []Option{
		{"sell", "Sell Property"},
		{"refinance", "Refinance to Traditional Loan"},
		{"rental", "Convert to Rental"},
		{"other", "Other"},
	}

	TimeframeOptions = []Option{
		{"immediate", "Immediate (ASAP)"},
		{"30days", "Within 30 Days"},
		{"60days", "Within 60 Days"},
		{"90days", "Within 90 Days"},
		{"flexible", "Flexible"},
	}
)

var personalFields = []Field{
	{Name: "firstName", Label: "First Name", Kind: KindText, MinLen: 2},
	{Name: "lastName", Label: "Last Name", Kind: KindText, MinLen: 2},
	{Name: "email", Label: "Email Address", Kind: KindEmail, Placeholder: "you@example.com"},
	{Name: "phone", Label: "Phone Number", Kind: KindText, MinLen: 10, Placeholder: "(555) 555-5555"},
	{Name: "address", Label: "Street Address", Kind: KindText, MinLen: 5},
	{Name: "city", Label: "City", Kind: KindText, MinLen: 2},
	{Name: "state", Label: "State", Kind: KindText, MinLen: 2, Placeholder: "CA"},
	{Name: "zipCode", Label: "ZIP Code", Kind: KindText, MinLen: 5},
	{Name: "creditScore", Label: "Credit Score Range", Kind: KindEnum, Optional: true, Options: CreditScoreOptions},
	{Name: "annualIncome", Label: "Annual Income", Kind: KindEnum, Optional: true, Options: AnnualIncomeOptions},
}

var propertyFields = []Field{
	{Name: "propertyAddress", Label: "Property Address", Kind: KindText, MinLen: 5},
	{Name: "propertyCity", Label: "Property City", Kind: KindText, MinLen: 2},
	{Name: "propertyState", Label: "Property State", Kind: KindText, MinLen: 2, Placeholder: "TX"},
	{Name: "propertyZip", Label: "Property ZIP", Kind: KindText, MinLen: 5},
	{Name: "propertyType", Label: "Property Type", Kind: KindEnum, MinLen: 1, Options: PropertyTypeOptions},
	{Name: "propertyValue", Label: "Current Value", Kind: KindNumeric, MinLen: 1, Placeholder: "$450,000"},
	{Name: "purchasePrice", Label: "Purchase Price", Kind: KindNumeric, MinLen: 1, Placeholder: "$425,000"},
	{Name: "yearBuilt", Label: "Year Built", Kind: KindText, MinLen: 4, Placeholder: "1998"},
	{Name: "squareFootage", Label: "Square Footage", Kind: KindNumeric, MinLen: 1},
	{Name: "propertyDescription", Label: "Property Description", Kind: KindMultiline, Optional: true},
}

var loanFields = []Field{
	{Name: "loanAmount", Label: "Loan Amount", Kind: KindNumeric, MinLen: 1, Placeholder: "$300,000"},
	{Name: "loanPurpose", Label: "Loan Purpose", Kind: KindEnum, MinLen: 1, Options: LoanPurposeOptions},
	{Name: "loanTerm", Label: "Loan Term", Kind: KindEnum, MinLen: 1, Options: LoanTermOptions},
	{Name: "exitStrategy", Label: "Exit Strategy", Kind: KindEnum, MinLen: 1, Options: ExitStrategyOptions},
	{Name: "timeframe", Label: "Funding Timeframe", Kind: KindEnum, MinLen: 1, Options: TimeframeOptions},
	{Name: "additionalInfo", Label: "Additional Information", Kind: KindMultiline, Optional: true},
}

// Fields returns the declared fields for a data step, in display and
// validation order. Review has no fields of its own.
func Fields(step StepID) []Field {
	switch step {
	case StepPersonal:
		return personalFields
	case StepProperty:
		return propertyFields
	case StepLoan:
		return loanFields
	default:
		return nil
	}
}
