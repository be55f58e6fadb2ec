// Package refdata supplies the static reference collections the workflows
// consult: clients, products, employees, proposal templates, and client
// investment profiles. Everything here is read-only to the workflow core;
// profile maintenance lives in internal/profile.
package refdata

// RiskLevel grades both products and client risk tolerance.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// KYCStatus is the client's identity verification state.
type KYCStatus string

const (
	KYCCompleted  KYCStatus = "Completed"
	KYCPending    KYCStatus = "Pending"
	KYCExpired    KYCStatus = "Expired"
	KYCNotStarted KYCStatus = "Not Started"
)

// AMLStatus is the client's anti-money-laundering screening state.
type AMLStatus string

const (
	AMLPass    AMLStatus = "Pass"
	AMLPending AMLStatus = "Pending"
	AMLFail    AMLStatus = "Fail"
)

// InvestmentGroup is the client's declared risk-suitability group.
type InvestmentGroup string

const (
	GroupConservative InvestmentGroup = "Conservative"
	GroupModerate     InvestmentGroup = "Moderate"
	GroupAggressive   InvestmentGroup = "Aggressive"
)

// Client is a bank customer eligible to inquire about products.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	CIF     string `json:"cif,omitempty"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Product is an investment product on the shelf.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	ExpectedReturn string    `json:"expectedReturn"`
	MinInvestment  float64   `json:"minInvestment"`
	Description    string    `json:"description"`
}

// Employee is a relationship manager or approver.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

// Template is a proposal document template.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CreatedDate string `json:"createdDate"`
	UpdatedDate string `json:"updatedDate"`
}

// InvestmentProfile is the per-client compliance snapshot: KYC and AML
// screening status, assets under management, declared suitability group, and
// numeric risk tolerance.
type InvestmentProfile struct {
	ID             string          `json:"id,omitempty"`
	ClientID       string          `json:"clientId"`
	ClientName     string          `json:"clientName,omitempty"`
	KYC            KYCStatus       `json:"kyc"`
	AML            AMLStatus       `json:"amlo"`
	TotalAUM       float64         `json:"totalAUM"`
	Group          InvestmentGroup `json:"investmentGroup"`
	Risk           RiskLevel       `json:"risk"`
	LastReviewDate string          `json:"lastReviewDate,omitempty"`
	NextReviewDate string          `json:"nextReviewDate,omitempty"`
}

// RecordID keys profiles by client: one profile per client.
func (p InvestmentProfile) RecordID() string { return p.ClientID }

// AllowedRisks returns the product risk levels this group may invest in.
func (g InvestmentGroup) AllowedRisks() []RiskLevel {
	switch g {
	case GroupConservative:
		return []RiskLevel{RiskLow}
	case GroupModerate:
		return []RiskLevel{RiskLow, RiskMedium}
	case GroupAggressive:
		return []RiskLevel{RiskLow, RiskMedium, RiskHigh}
	default:
		return nil
	}
}

// Allows reports whether the group permits products of the given risk level.
func (g InvestmentGroup) Allows(risk RiskLevel) bool {
	for _, allowed := range g.AllowedRisks() {
		if allowed == risk {
			return true
		}
	}
	return false
}

// Rank totally orders risk levels: Low(1) < Medium(2) < High(3). Unknown
// levels rank 0, below every valid level.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is one of the three known levels.
func (r RiskLevel) Valid() bool { return r.Rank() > 0 }
