// Package suitability implements the compliance checks gating offer creation
// and delivery: KYC/AML screening and risk-suitability matching.
//
// Two distinct suitability rules coexist on purpose and must not be unified:
//
//   - CheckSuitability compares numeric risk tolerance (client rank must be at
//     least the product rank) and returns an operator-facing reason string.
//   - EvaluateCompliance applies the declared investment group's allow-list
//     (Conservative→{Low}, Moderate→{Low,Medium}, Aggressive→{Low,Medium,High})
//     and is what offer creation records as the immutable Pass/Fail facts.
package suitability

import (
	"context"
	"errors"
	"fmt"

	"investdesk/internal/refdata"
	domainerrors "investdesk/pkg/domain-errors"
	"investdesk/pkg/sentinel"
)

// Outcome is a recorded Pass/Fail compliance fact.
type Outcome string

const (
	Pass Outcome = "Pass"
	Fail Outcome = "Fail"
)

// ProfileSource looks up a client's investment profile. Absent profiles
// return sentinel.ErrNotFound.
type ProfileSource interface {
	ProfileByClient(ctx context.Context, clientID string) (refdata.InvestmentProfile, error)
}

// ProductSource looks up a product. Absent products return
// sentinel.ErrNotFound.
type ProductSource interface {
	ProductByID(ctx context.Context, productID string) (refdata.Product, error)
}

// Service evaluates compliance against fresh reference data on every call.
// It holds no state and never persists anything.
type Service struct {
	profiles ProfileSource
	products ProductSource
}

// New constructs the engine over the given reference-data sources.
func New(profiles ProfileSource, products ProductSource) *Service {
	return &Service{profiles: profiles, products: products}
}

// CompareRisk reports whether a client with the given tolerance may invest in
// a product of the given risk. A client may always invest at or below their
// tolerance, never above.
func CompareRisk(clientRisk, productRisk refdata.RiskLevel) bool {
	return clientRisk.Rank() >= productRisk.Rank()
}

// CheckResult is the operator-facing suitability verdict. Reason
// distinguishes every failure cause; it is a contract, not just logging.
type CheckResult struct {
	IsSuitable  bool              `json:"isSuitable"`
	ClientRisk  refdata.RiskLevel `json:"clientRisk,omitempty"`
	ProductRisk refdata.RiskLevel `json:"productRisk,omitempty"`
	Reason      string            `json:"reason"`
}

// CheckSuitability evaluates whether the client may invest in the product
// under the numeric risk-tolerance rule. Missing reference data and failed
// screenings fail softly with an explanatory reason; only infrastructure
// failures return an error.
func (s *Service) CheckSuitability(ctx context.Context, clientID, productID string) (CheckResult, error) {
	profile, err := s.profiles.ProfileByClient(ctx, clientID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return CheckResult{
			Reason: fmt.Sprintf("investment data not found for client %s", clientID),
		}, nil
	}
	if err != nil {
		return CheckResult{}, domainerrors.Wrap(err, domainerrors.CodeStorageIO, "failed to read investment profile")
	}

	product, err := s.products.ProductByID(ctx, productID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return CheckResult{
			ClientRisk: profile.Risk,
			Reason:     fmt.Sprintf("product not found: %s", productID),
		}, nil
	}
	if err != nil {
		return CheckResult{}, domainerrors.Wrap(err, domainerrors.CodeStorageIO, "failed to read product")
	}

	if profile.KYC != refdata.KYCCompleted {
		return CheckResult{
			ClientRisk:  profile.Risk,
			ProductRisk: product.RiskLevel,
			Reason:      fmt.Sprintf("KYC not completed for client (status: %s)", profile.KYC),
		}, nil
	}
	if profile.AML != refdata.AMLPass {
		return CheckResult{
			ClientRisk:  profile.Risk,
			ProductRisk: product.RiskLevel,
			Reason:      fmt.Sprintf("AML screening not passed for client (status: %s)", profile.AML),
		}, nil
	}

	if !CompareRisk(profile.Risk, product.RiskLevel) {
		return CheckResult{
			ClientRisk:  profile.Risk,
			ProductRisk: product.RiskLevel,
			Reason: fmt.Sprintf(
				"client risk level (%s) is too low for product risk level (%s); client can only invest in products with risk level up to %s",
				profile.Risk, product.RiskLevel, profile.Risk),
		}, nil
	}

	return CheckResult{
		IsSuitable:  true,
		ClientRisk:  profile.Risk,
		ProductRisk: product.RiskLevel,
		Reason: fmt.Sprintf("client risk level (%s) is suitable for product risk level (%s)",
			profile.Risk, product.RiskLevel),
	}, nil
}

// ComplianceResult carries the Pass/Fail facts recorded on an offer at
// creation time. They are computed once and never recomputed later in the
// offer's lifecycle.
type ComplianceResult struct {
	KYCStatus         Outcome `json:"kycStatus"`
	SuitabilityStatus Outcome `json:"suitabilityStatus"`
}

// EvaluateCompliance computes the offer-creation gate for a client against a
// product risk level. KYC passes only when identity verification is completed
// AND AML screening passed; suitability passes when the client's declared
// investment group allows the product's risk level. A client with no profile
// fails both checks.
func (s *Service) EvaluateCompliance(ctx context.Context, clientID string, productRisk refdata.RiskLevel) (ComplianceResult, error) {
	profile, err := s.profiles.ProfileByClient(ctx, clientID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return ComplianceResult{KYCStatus: Fail, SuitabilityStatus: Fail}, nil
	}
	if err != nil {
		return ComplianceResult{}, domainerrors.Wrap(err, domainerrors.CodeStorageIO, "failed to read investment profile")
	}

	result := ComplianceResult{KYCStatus: Fail, SuitabilityStatus: Fail}
	if profile.KYC == refdata.KYCCompleted && profile.AML == refdata.AMLPass {
		result.KYCStatus = Pass
	}
	if profile.Group.Allows(productRisk) {
		result.SuitabilityStatus = Pass
	}
	return result, nil
}

// InvestmentGroup returns the client's declared suitability group.
func (s *Service) InvestmentGroup(ctx context.Context, clientID string) (refdata.InvestmentGroup, error) {
	profile, err := s.profiles.ProfileByClient(ctx, clientID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", domainerrors.Newf(domainerrors.CodeNotFound,
			"investment profile not found for client %s", clientID)
	}
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeStorageIO, "failed to read investment profile")
	}
	return profile.Group, nil
}
