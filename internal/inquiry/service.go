package inquiry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"investdesk/internal/audit"
	"investdesk/internal/offer"
	"investdesk/internal/platform/metrics"
	"investdesk/internal/storage"
	domainerrors "investdesk/pkg/domain-errors"
	"investdesk/pkg/requestcontext"
	"investdesk/pkg/sentinel"
	"investdesk/pkg/seqid"
)

// Store is the persistence contract for inquiries.
type Store = storage.Store[Inquiry]

// OfferCreator is the conversion seam into the offer workflow.
type OfferCreator interface {
	CreateFromInquiry(ctx context.Context, snap offer.InquirySnapshot) (offer.Offer, error)
}

// Service implements the inquiry workflow.
type Service struct {
	inquiries Store
	offers    OfferCreator
	trail     *audit.Trail
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditTrail enables workflow audit recording.
func WithAuditTrail(trail *audit.Trail) Option {
	return func(s *Service) { s.trail = trail }
}

// New constructs the inquiry service.
func New(inquiries Store, offers OfferCreator, opts ...Option) *Service {
	s := &Service{
		inquiries: inquiries,
		offers:    offers,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns inquiries matching the filter, in creation order.
func (s *Service) List(ctx context.Context, filter Filter) ([]Inquiry, error) {
	inquiries, err := s.inquiries.FindMany(ctx, filter.matches)
	if err != nil {
		return nil, storageErr(err, "failed to list inquiries")
	}
	return inquiries, nil
}

// Get returns one inquiry by identifier.
func (s *Service) Get(ctx context.Context, id string) (Inquiry, error) {
	inquiry, err := s.inquiries.FindOne(ctx, func(i Inquiry) bool { return i.ID == id })
	if errors.Is(err, sentinel.ErrNotFound) {
		return Inquiry{}, domainerrors.Newf(domainerrors.CodeNotFound, "inquiry %s not found", id)
	}
	if err != nil {
		return Inquiry{}, storageErr(err, "failed to read inquiry")
	}
	return inquiry, nil
}

// Create persists a new inquiry. The identifier sequence is derived from
// records already persisted for the day; status defaults to Draft.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Inquiry, error) {
	if err := req.Validate(); err != nil {
		return Inquiry{}, err
	}

	now := requestcontext.Now(ctx)
	id, err := s.nextID(ctx, now)
	if err != nil {
		return Inquiry{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	inquiry := Inquiry{
		ID:               id,
		Source:           req.Source,
		ClientID:         req.ClientID,
		ProductID:        req.ProductID,
		RequestedAmount:  req.RequestedAmount,
		AdditionalRemark: req.AdditionalRemark,
		Status:           status,
		CreatedBy:        req.CreatedBy,
		CreatedDate:      now,
		UpdatedDate:      now,
	}

	created, err := s.inquiries.Create(ctx, inquiry)
	if err != nil {
		return Inquiry{}, storageErr(err, "failed to create inquiry")
	}

	s.logger.InfoContext(ctx, "inquiry created",
		"inquiry_id", created.ID,
		"client_id", created.ClientID,
		"source", created.Source,
		"status", created.Status,
	)
	if s.metrics != nil {
		s.metrics.InquiriesCreated.Inc()
	}
	s.audit(ctx, created.ID, "created", "", string(created.Status))

	return created, nil
}

// Update patches an inquiry. Terminal inquiries reject all mutation; a status
// change is validated against the transition table.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Inquiry, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Inquiry{}, err
	}

	next, err := applyPatch(current, req)
	if err != nil {
		return Inquiry{}, err
	}
	next.UpdatedDate = requestcontext.Now(ctx)

	updated, err := s.persist(ctx, id, next)
	if err != nil {
		return Inquiry{}, err
	}
	if updated.Status != current.Status {
		s.audit(ctx, id, "status_changed", string(current.Status), string(updated.Status))
	}
	return updated, nil
}

// Delete removes an inquiry permanently. Unlike offers, inquiries are hard
// deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.inquiries.Delete(ctx, func(i Inquiry) bool { return i.ID == id })
	if err != nil {
		return storageErr(err, "failed to delete inquiry")
	}
	if !removed {
		return domainerrors.Newf(domainerrors.CodeNotFound, "inquiry %s not found", id)
	}
	s.logger.InfoContext(ctx, "inquiry deleted", "inquiry_id", id)
	s.audit(ctx, id, "deleted", "", "")
	return nil
}

// Convert turns a Pending inquiry into an offer. The offer is created first;
// only on success is the inquiry marked Converted, so a failed offer creation
// leaves the inquiry Pending and retryable.
func (s *Service) Convert(ctx context.Context, id string) (offer.Offer, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return offer.Offer{}, err
	}

	if current.Status != StatusPending {
		return offer.Offer{}, domainerrors.Newf(domainerrors.CodeInvalidOperation,
			"only pending inquiries can be converted to offers (current: %s)", current.Status)
	}

	created, err := s.offers.CreateFromInquiry(ctx, offer.InquirySnapshot{
		InquiryID:       current.ID,
		ClientID:        current.ClientID,
		ProductID:       current.ProductID,
		RequestedAmount: current.RequestedAmount,
		Remark:          current.AdditionalRemark,
		CreatedBy:       current.CreatedBy,
	})
	if err != nil {
		return offer.Offer{}, err
	}

	converted := StatusConverted
	if _, err := s.Update(ctx, id, UpdateRequest{Status: &converted}); err != nil {
		// The offer exists but the inquiry is still Pending; surface the
		// failure so the operator can reconcile.
		s.logger.ErrorContext(ctx, "offer created but inquiry not marked converted",
			"inquiry_id", id,
			"offer_id", created.ID,
			"error", err.Error(),
		)
		return offer.Offer{}, err
	}

	s.logger.InfoContext(ctx, "inquiry converted to offer",
		"inquiry_id", id,
		"offer_id", created.ID,
	)
	if s.metrics != nil {
		s.metrics.InquiriesConverted.Inc()
	}

	return created, nil
}

// applyPatch merges an update request into the current inquiry, enforcing
// terminal-state immutability and transition validity.
func applyPatch(current Inquiry, req UpdateRequest) (Inquiry, error) {
	if current.Status.IsTerminal() {
		if req.Status != nil && *req.Status != current.Status {
			return Inquiry{}, domainerrors.Newf(domainerrors.CodeInvalidTransition,
				"invalid status transition from %s to %s", current.Status, *req.Status)
		}
		return Inquiry{}, domainerrors.Newf(domainerrors.CodeInvalidOperation,
			"inquiry in terminal status %s cannot be modified", current.Status)
	}

	next := current
	if req.Status != nil && *req.Status != current.Status {
		if !current.Status.CanTransitionTo(*req.Status) {
			return Inquiry{}, domainerrors.Newf(domainerrors.CodeInvalidTransition,
				"invalid status transition from %s to %s", current.Status, *req.Status)
		}
		next.Status = *req.Status
	}
	if req.Source != nil {
		if !req.Source.Valid() {
			return Inquiry{}, domainerrors.Newf(domainerrors.CodeBadRequest, "unknown source %q", *req.Source)
		}
		next.Source = *req.Source
	}
	if req.RequestedAmount != nil {
		if *req.RequestedAmount <= 0 {
			return Inquiry{}, domainerrors.New(domainerrors.CodeBadRequest, "requestedAmount must be positive")
		}
		next.RequestedAmount = *req.RequestedAmount
	}
	if req.AdditionalRemark != nil {
		next.AdditionalRemark = *req.AdditionalRemark
	}
	return next, nil
}

// persist writes the merged record back by identifier.
func (s *Service) persist(ctx context.Context, id string, next Inquiry) (Inquiry, error) {
	updated, err := s.inquiries.Update(ctx, func(i Inquiry) bool { return i.ID == id }, next)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Inquiry{}, domainerrors.Newf(domainerrors.CodeNotFound, "inquiry %s not found", id)
	}
	if err != nil {
		return Inquiry{}, storageErr(err, "failed to update inquiry")
	}
	return updated, nil
}

// nextID derives the next sequential identifier for the day from persisted
// state, so identifiers survive restarts.
func (s *Service) nextID(ctx context.Context, now time.Time) (string, error) {
	inquiries, err := s.inquiries.ReadAll(ctx)
	if err != nil {
		return "", storageErr(err, "failed to read inquiries")
	}
	existing := make([]string, 0, len(inquiries))
	for _, i := range inquiries {
		existing = append(existing, i.ID)
	}
	return seqid.Next("INQ", now, existing), nil
}

func (s *Service) audit(ctx context.Context, inquiryID, action, from, to string) {
	if s.trail == nil {
		return
	}
	s.trail.Record(ctx, audit.Event{
		Entity:   "inquiry",
		EntityID: inquiryID,
		Action:   action,
		From:     from,
		To:       to,
	})
}

func storageErr(err error, msg string) error {
	return domainerrors.Wrap(err, domainerrors.CodeStorageIO, msg)
}
