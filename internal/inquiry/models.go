// Package inquiry owns the investment inquiry lifecycle: identifier
// generation, status transition validation, and conversion into offers.
package inquiry

import (
	"time"

	domainerrors "investdesk/pkg/domain-errors"
)

// Status is the inquiry workflow state.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPending   Status = "Pending"
	StatusConverted Status = "Converted"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

// transitions is the full inquiry state machine. Draft ↔ Pending is
// bidirectional for administrative correction; the terminal states have no
// outgoing transitions.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPending, StatusCancelled},
	StatusPending:   {StatusDraft, StatusConverted, StatusRejected, StatusCancelled},
	StatusConverted: {},
	StatusRejected:  {},
	StatusCancelled: {},
}

// Valid reports whether s is a known inquiry status.
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

// Source is the channel an inquiry arrived through.
type Source string

const (
	SourceAPI    Source = "API"
	SourceWeb    Source = "Web"
	SourceMobile Source = "Mobile"
	SourceEmail  Source = "Email"
	SourcePhone  Source = "Phone"
	SourceWalkIn Source = "Walk-in"
)

// Valid reports whether s is a known source channel.
func (s Source) Valid() bool {
	switch s {
	case SourceAPI, SourceWeb, SourceMobile, SourceEmail, SourcePhone, SourceWalkIn:
		return true
	}
	return false
}

// Inquiry is a client's request to invest a given amount in a given product.
// The identifier is immutable once assigned; once the status enters a
// terminal state no further mutation is permitted.
type Inquiry struct {
	ID               string    `json:"id"`
	Source           Source    `json:"source"`
	ClientID         string    `json:"clientId"`
	ProductID        string    `json:"productId"`
	RequestedAmount  float64   `json:"requestedAmount"`
	AdditionalRemark string    `json:"additionalRemark,omitempty"`
	Status           Status    `json:"status"`
	CreatedBy        string    `json:"createdBy"`
	CreatedDate      time.Time `json:"createdDate"`
	UpdatedDate      time.Time `json:"updatedDate"`
}

func (i Inquiry) RecordID() string { return i.ID }

// CreateRequest carries the caller-supplied fields for a new inquiry.
// Status defaults to Draft when empty.
type CreateRequest struct {
	Source           Source  `json:"source"`
	ClientID         string  `json:"clientId"`
	ProductID        string  `json:"productId"`
	RequestedAmount  float64 `json:"requestedAmount"`
	AdditionalRemark string  `json:"additionalRemark,omitempty"`
	Status           Status  `json:"status,omitempty"`
	CreatedBy        string  `json:"createdBy"`
}

// Validate checks field-level constraints before any store access.
func (r CreateRequest) Validate() error {
	if r.ClientID == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "clientId is required")
	}
	if r.ProductID == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "productId is required")
	}
	if r.RequestedAmount <= 0 {
		return domainerrors.New(domainerrors.CodeBadRequest, "requestedAmount must be positive")
	}
	if !r.Source.Valid() {
		return domainerrors.Newf(domainerrors.CodeBadRequest, "unknown source %q", r.Source)
	}
	if r.Status != "" && !r.Status.Valid() {
		return domainerrors.Newf(domainerrors.CodeBadRequest, "unknown status %q", r.Status)
	}
	return nil
}

// UpdateRequest patches named inquiry fields. Nil fields are untouched. A
// status change is validated against the transition table before merging.
type UpdateRequest struct {
	Source           *Source  `json:"source,omitempty"`
	RequestedAmount  *float64 `json:"requestedAmount,omitempty"`
	AdditionalRemark *string  `json:"additionalRemark,omitempty"`
	Status           *Status  `json:"status,omitempty"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status   Status
	ClientID string
	Source   Source
}

func (f Filter) matches(i Inquiry) bool {
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	if f.ClientID != "" && i.ClientID != f.ClientID {
		return false
	}
	if f.Source != "" && i.Source != f.Source {
		return false
	}
	return true
}
