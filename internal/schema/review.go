package schema

// Review projection: a read-only, side-effect-free expansion of the three
// step payloads into labeled display rows. It owns no mutable state; editing
// happens by navigating back to the owning step.

// Row is one label/value pair on the Review page.
type Row struct {
	Label string
	Value string
}

// Section groups the rows belonging to one data step.
type Section struct {
	Step  StepID
	Title string
	Rows  []Row
}

// ReviewProjection expands enum codes to labels and prefixes currency fields
// for display. Raw payloads are never mutated.
func ReviewProjection(personal, property, loan Payload) []Section {
	return []Section{
		{
			Step:  StepPersonal,
			Title: StepTitles[StepPersonal],
			Rows: []Row{
				{"Name", personal["firstName"] + " " + personal["lastName"]},
				{"Email", personal["email"]},
				{"Phone", personal["phone"]},
				{"Address", joinAddress(personal["address"], personal["city"], personal["state"], personal["zipCode"])},
				{"Credit Score", OptionLabel(CreditScoreOptions, personal["creditScore"])},
				{"Annual Income", OptionLabel(AnnualIncomeOptions, personal["annualIncome"])},
			},
		},
		{
			Step:  StepProperty,
			Title: StepTitles[StepProperty],
			Rows: []Row{
				{"Property Address", joinAddress(property["propertyAddress"], property["propertyCity"], property["propertyState"], property["propertyZip"])},
				{"Property Type", OptionLabel(PropertyTypeOptions, property["propertyType"])},
				{"Current Value", currency(property["propertyValue"])},
				{"Purchase Price", currency(property["purchasePrice"])},
				{"Year Built", property["yearBuilt"]},
				{"Square Footage", property["squareFootage"]},
				{"Description", property["propertyDescription"]},
			},
		},
		{
			Step:  StepLoan,
			Title: StepTitles[StepLoan],
			Rows: []Row{
				{"Loan Amount", currency(loan["loanAmount"])},
				{"Loan Purpose", OptionLabel(LoanPurposeOptions, loan["loanPurpose"])},
				{"Loan Term", OptionLabel(LoanTermOptions, loan["loanTerm"])},
				{"Exit Strategy", OptionLabel(ExitStrategyOptions, loan["exitStrategy"])},
				{"Timeframe", OptionLabel(TimeframeOptions, loan["timeframe"])},
				{"Additional Info", loan["additionalInfo"]},
			},
		},
	}
}

func joinAddress(street, city, state, zip string) string {
	return street + ", " + city + ", " + state + " " + zip
}

// currency prefixes the raw free-text value for display only; the stored
// payload keeps whatever the user typed.
func currency(v string) string {
	if v == "" {
		return ""
	}
	if v[0] == '$' {
		return v
	}
	return "$" + v
}
