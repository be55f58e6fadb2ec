// Package offer owns the offer lifecycle: identifier generation, status
// transition validation, compliance gating, and the send/accept/confirm
// operations.
package offer

import (
	"time"

	"investdesk/internal/suitability"
	domainerrors "investdesk/pkg/domain-errors"
)

// Status is the offer workflow state.
type Status string

const (
	StatusProposal  Status = "Proposal"
	StatusDraft     Status = "Draft"
	StatusWait      Status = "Wait"
	StatusSent      Status = "Sent"
	StatusAccepted  Status = "Accepted"
	StatusConfirmed Status = "Confirmed"
	StatusRejected  Status = "Rejected"
	StatusExpired   Status = "Expired"
)

// transitions is the full offer state machine. Rejected is reachable from
// every non-terminal state, which is what makes soft deletion a forced
// transition rather than a removal.
var transitions = map[Status][]Status{
	StatusProposal:  {StatusDraft, StatusWait, StatusRejected},
	StatusDraft:     {StatusWait, StatusRejected},
	StatusWait:      {StatusSent, StatusRejected},
	StatusSent:      {StatusAccepted, StatusRejected, StatusExpired},
	StatusAccepted:  {StatusConfirmed, StatusRejected},
	StatusConfirmed: {},
	StatusRejected:  {},
	StatusExpired:   {},
}

// Valid reports whether s is a known offer status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransitionTo reports whether the workflow permits moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Offer is a formal investment proposal advancing through acceptance and
// confirmation. KYCStatus and SuitabilityStatus are computed once at creation
// (or conversion) and are immutable facts for the rest of the lifecycle:
// later transitions consult them but never recompute them.
type Offer struct {
	ID               string    `json:"id"`
	InquiryID        string    `json:"inquiryId,omitempty"`
	ClientID         string    `json:"clientId"`
	ProductID        string    `json:"productId"`
	InvestmentAmount float64   `json:"investmentAmount"`
	ExpectedReturn   string    `json:"expectedReturn"`
	MaturityDate     time.Time `json:"maturityDate"`
	ProposalRemarks  string    `json:"proposalRemarks"`
	Status           Status    `json:"status"`
	CreatedBy        string    `json:"createdBy"`

	KYCStatus         suitability.Outcome `json:"kycStatus"`
	SuitabilityStatus suitability.Outcome `json:"suitabilityStatus"`

	CreatedDate  time.Time  `json:"createdDate"`
	UpdatedDate  time.Time  `json:"updatedDate"`
	ExpiryDate   time.Time  `json:"expiryDate"`
	SentDate     *time.Time `json:"sentDate,omitempty"`
	AcceptedDate *time.Time `json:"acceptedDate,omitempty"`
	ApprovedDate *time.Time `json:"approvedDate,omitempty"`

	AcceptedBy    string `json:"acceptedBy,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	OTPVerified   bool   `json:"otpVerified,omitempty"`
	ApprovedBy    string `json:"approvedBy,omitempty"`
}

func (o Offer) RecordID() string { return o.ID }

// InquirySnapshot carries the inquiry fields the conversion constructor
// copies into the new offer. Defined here so the inquiry workflow depends on
// the offer workflow and not the other way around.
type InquirySnapshot struct {
	InquiryID       string
	ClientID        string
	ProductID       string
	RequestedAmount float64
	Remark          string
	CreatedBy       string
}

// CreateRequest carries the caller-supplied fields for the manual creation
// path. No compliance computation happens here: the caller supplies status
// and the recorded check results directly.
type CreateRequest struct {
	InquiryID         string              `json:"inquiryId,omitempty"`
	ClientID          string              `json:"clientId"`
	ProductID         string              `json:"productId"`
	InvestmentAmount  float64             `json:"investmentAmount"`
	ExpectedReturn    string              `json:"expectedReturn"`
	MaturityDate      time.Time           `json:"maturityDate"`
	ProposalRemarks   string              `json:"proposalRemarks"`
	Status            Status              `json:"status,omitempty"`
	CreatedBy         string              `json:"createdBy"`
	KYCStatus         suitability.Outcome `json:"kycStatus"`
	SuitabilityStatus suitability.Outcome `json:"suitabilityStatus"`
	ExpiryDate        time.Time           `json:"expiryDate"`
}

// Validate checks field-level constraints before any store access.
func (r CreateRequest) Validate() error {
	if r.ClientID == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "clientId is required")
	}
	if r.ProductID == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "productId is required")
	}
	if r.InvestmentAmount <= 0 {
		return domainerrors.New(domainerrors.CodeBadRequest, "investmentAmount must be positive")
	}
	if r.Status != "" && !r.Status.Valid() {
		return domainerrors.Newf(domainerrors.CodeBadRequest, "unknown status %q", r.Status)
	}
	return nil
}

// UpdateRequest patches named offer fields. Nil fields are untouched. A
// status change is validated against the transition table before merging.
type UpdateRequest struct {
	InvestmentAmount *float64   `json:"investmentAmount,omitempty"`
	ExpectedReturn   *string    `json:"expectedReturn,omitempty"`
	MaturityDate     *time.Time `json:"maturityDate,omitempty"`
	ProposalRemarks  *string    `json:"proposalRemarks,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	Status           *Status    `json:"status,omitempty"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status    Status
	ClientID  string
	CreatedBy string
}

func (f Filter) matches(o Offer) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.ClientID != "" && o.ClientID != f.ClientID {
		return false
	}
	if f.CreatedBy != "" && o.CreatedBy != f.CreatedBy {
		return false
	}
	return true
}
