// Package profile maintains client investment profiles: the KYC, AML, and
// suitability facts the compliance checks consult. Profiles are seeded from
// reference data and can be corrected by operators; the workflow core only
// ever reads them.
package profile

import (
	"context"
	"errors"
	"log/slog"

	"investdesk/internal/refdata"
	"investdesk/internal/storage"
	domainerrors "investdesk/pkg/domain-errors"
	"investdesk/pkg/sentinel"
)

// Store is the persisted profile collection, keyed by client ID.
type Store = storage.Store[refdata.InvestmentProfile]

// Service exposes profile lookup and maintenance.
type Service struct {
	profiles Store
	logger   *slog.Logger
}

// Option configures optional service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs a profile service over the given store.
func New(profiles Store, opts ...Option) *Service {
	s := &Service{profiles: profiles, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed copies the given profiles into the store if it is empty. Re-running on
// a populated store is a no-op so operator corrections survive restarts.
func (s *Service) Seed(ctx context.Context, profiles []refdata.InvestmentProfile) error {
	existing, err := s.profiles.ReadAll(ctx)
	if err != nil {
		return storageErr(err, "failed to read profiles")
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range profiles {
		if _, err := s.profiles.Create(ctx, p); err != nil {
			return storageErr(err, "failed to seed profiles")
		}
	}
	s.logger.InfoContext(ctx, "seeded investment profiles", "count", len(profiles))
	return nil
}

// List returns every profile.
func (s *Service) List(ctx context.Context) ([]refdata.InvestmentProfile, error) {
	profiles, err := s.profiles.ReadAll(ctx)
	if err != nil {
		return nil, storageErr(err, "failed to read profiles")
	}
	return profiles, nil
}

// ByClient returns the profile for one client.
func (s *Service) ByClient(ctx context.Context, clientID string) (refdata.InvestmentProfile, error) {
	p, err := s.profiles.FindOne(ctx, func(p refdata.InvestmentProfile) bool {
		return p.ClientID == clientID
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return refdata.InvestmentProfile{}, domainerrors.Newf(domainerrors.CodeNotFound,
			"investment profile not found for client %s", clientID)
	}
	if err != nil {
		return refdata.InvestmentProfile{}, storageErr(err, "failed to read profiles")
	}
	return p, nil
}

// ProfileByClient adapts ByClient to the suitability engine's source
// contract: absent profiles surface as sentinel.ErrNotFound so the engine can
// fail softly with its own reason string.
func (s *Service) ProfileByClient(ctx context.Context, clientID string) (refdata.InvestmentProfile, error) {
	p, err := s.profiles.FindOne(ctx, func(p refdata.InvestmentProfile) bool {
		return p.ClientID == clientID
	})
	if err != nil {
		return refdata.InvestmentProfile{}, err
	}
	return p, nil
}

// UpdateRequest patches named profile fields. Nil fields are left untouched;
// the client ID itself can never change.
type UpdateRequest struct {
	ClientName *string                  `json:"clientName,omitempty"`
	KYC        *refdata.KYCStatus       `json:"kyc,omitempty"`
	AML        *refdata.AMLStatus       `json:"amlo,omitempty"`
	TotalAUM   *float64                 `json:"totalAUM,omitempty"`
	Group      *refdata.InvestmentGroup `json:"investmentGroup,omitempty"`
	Risk       *refdata.RiskLevel       `json:"risk,omitempty"`
	LastReview *string                  `json:"lastReviewDate,omitempty"`
	NextReview *string                  `json:"nextReviewDate,omitempty"`
}

// Update applies the patch to one client's profile.
func (s *Service) Update(ctx context.Context, clientID string, req UpdateRequest) (refdata.InvestmentProfile, error) {
	current, err := s.ByClient(ctx, clientID)
	if err != nil {
		return refdata.InvestmentProfile{}, err
	}

	next := current
	if req.ClientName != nil {
		next.ClientName = *req.ClientName
	}
	if req.KYC != nil {
		next.KYC = *req.KYC
	}
	if req.AML != nil {
		next.AML = *req.AML
	}
	if req.TotalAUM != nil {
		next.TotalAUM = *req.TotalAUM
	}
	if req.Group != nil {
		next.Group = *req.Group
	}
	if req.Risk != nil {
		if !req.Risk.Valid() {
			return refdata.InvestmentProfile{}, domainerrors.Newf(domainerrors.CodeBadRequest,
				"unknown risk level %q", *req.Risk)
		}
		next.Risk = *req.Risk
	}
	if req.LastReview != nil {
		next.LastReviewDate = *req.LastReview
	}
	if req.NextReview != nil {
		next.NextReviewDate = *req.NextReview
	}

	updated, err := s.profiles.Update(ctx, func(p refdata.InvestmentProfile) bool {
		return p.ClientID == clientID
	}, next)
	if err != nil {
		return refdata.InvestmentProfile{}, storageErr(err, "failed to update profile")
	}
	s.logger.InfoContext(ctx, "updated investment profile", "client_id", clientID)
	return updated, nil
}

func storageErr(err error, msg string) error {
	return domainerrors.Wrap(err, domainerrors.CodeStorageIO, msg)
}
