package offer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"investdesk/internal/audit"
	"investdesk/internal/notify"
	"investdesk/internal/platform/metrics"
	"investdesk/internal/refdata"
	"investdesk/internal/storage"
	"investdesk/internal/suitability"
	domainerrors "investdesk/pkg/domain-errors"
	"investdesk/pkg/requestcontext"
	"investdesk/pkg/sentinel"
	"investdesk/pkg/seqid"
)

// defaultExpectedReturn is the placeholder set at conversion; the real rate
// is filled in later while the offer is still in Proposal.
const defaultExpectedReturn = "0% p.a."

// Store is the persistence contract for offers.
type Store = storage.Store[Offer]

// ComplianceEvaluator computes the Pass/Fail facts recorded on a new offer.
type ComplianceEvaluator interface {
	EvaluateCompliance(ctx context.Context, clientID string, productRisk refdata.RiskLevel) (suitability.ComplianceResult, error)
}

// ProductSource resolves a product so conversion can use its risk level.
// Absent products return sentinel.ErrNotFound.
type ProductSource interface {
	ProductByID(ctx context.Context, productID string) (refdata.Product, error)
}

// Service implements the offer workflow.
type Service struct {
	offers     Store
	compliance ComplianceEvaluator
	products   ProductSource
	sender     notify.OfferSender
	otp        notify.OTPVerifier
	trail      *audit.Trail
	logger     *slog.Logger
	metrics    *metrics.Metrics
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

// WithSender replaces the mock delivery channel.
func WithSender(sender notify.OfferSender) Option {
	return func(s *Service) { s.sender = sender }
}

// WithOTPVerifier replaces the mock OTP verifier.
func WithOTPVerifier(otp notify.OTPVerifier) Option {
	return func(s *Service) { s.otp = otp }
}

// New constructs the offer service. Delivery and OTP verification default to
// the mock implementations.
func New(offers Store, compliance ComplianceEvaluator, products ProductSource, opts ...Option) *Service {
	s := &Service{
		offers:     offers,
		compliance: compliance,
		products:   products,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sender == nil {
		s.sender = notify.NewLogSender(s.logger)
	}
	if s.otp == nil {
		s.otp = notify.MockOTPVerifier{}
	}
	return s
}

// List returns offers matching the filter, in creation order.
func (s *Service) List(ctx context.Context, filter Filter) ([]Offer, error) {
	offers, err := s.offers.FindMany(ctx, filter.matches)
	if err != nil {
		return nil, storageErr(err, "failed to list offers")
	}
	return offers, nil
}

// Get returns one offer by identifier.
func (s *Service) Get(ctx context.Context, id string) (Offer, error) {
	offer, err := s.offers.FindOne(ctx, func(o Offer) bool { return o.ID == id })
	if errors.Is(err, sentinel.ErrNotFound) {
		return Offer{}, domainerrors.Newf(domainerrors.CodeNotFound, "offer %s not found", id)
	}
	if err != nil {
		return Offer{}, storageErr(err, "failed to read offer")
	}
	return offer, nil
}

// Create persists a manually authored offer. The caller supplies status and
// compliance facts directly; nothing is computed here. Status defaults to
// Proposal when omitted.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Offer, error) {
	if err := req.Validate(); err != nil {
		return Offer{}, err
	}

	now := requestcontext.Now(ctx)
	id, err := s.nextID(ctx, now)
	if err != nil {
		return Offer{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusProposal
	}

	offer := Offer{
		ID:                id,
		InquiryID:         req.InquiryID,
		ClientID:          req.ClientID,
		ProductID:         req.ProductID,
		InvestmentAmount:  req.InvestmentAmount,
		ExpectedReturn:    req.ExpectedReturn,
		MaturityDate:      req.MaturityDate,
		ProposalRemarks:   req.ProposalRemarks,
		Status:            status,
		CreatedBy:         req.CreatedBy,
		KYCStatus:         req.KYCStatus,
		SuitabilityStatus: req.SuitabilityStatus,
		CreatedDate:       now,
		UpdatedDate:       now,
		ExpiryDate:        req.ExpiryDate,
	}

	created, err := s.offers.Create(ctx, offer)
	if err != nil {
		return Offer{}, storageErr(err, "failed to create offer")
	}

	s.logger.InfoContext(ctx, "offer created",
		"offer_id", created.ID,
		"client_id", created.ClientID,
		"status", created.Status,
	)
	if s.metrics != nil {
		s.metrics.OffersCreated.Inc()
	}
	s.audit(ctx, created.ID, "created", "", string(created.Status))

	return created, nil
}

// CreateFromInquiry is the conversion constructor. It evaluates compliance
// against the product's risk level (Medium when the product is unknown),
// records the Pass/Fail facts on the new offer, and defaults expiry to 30
// days and maturity to one year out. The offer is created regardless of the
// compliance outcome; failed facts block later delivery, not creation.
func (s *Service) CreateFromInquiry(ctx context.Context, snap InquirySnapshot) (Offer, error) {
	productRisk := refdata.RiskMedium
	if product, err := s.products.ProductByID(ctx, snap.ProductID); err == nil {
		productRisk = product.RiskLevel
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return Offer{}, storageErr(err, "failed to read product")
	}

	result, err := s.compliance.EvaluateCompliance(ctx, snap.ClientID, productRisk)
	if err != nil {
		return Offer{}, err
	}

	now := requestcontext.Now(ctx)
	id, err := s.nextID(ctx, now)
	if err != nil {
		return Offer{}, err
	}

	offer := Offer{
		ID:                id,
		InquiryID:         snap.InquiryID,
		ClientID:          snap.ClientID,
		ProductID:         snap.ProductID,
		InvestmentAmount:  snap.RequestedAmount,
		ExpectedReturn:    defaultExpectedReturn,
		MaturityDate:      now.AddDate(1, 0, 0),
		ProposalRemarks:   snap.Remark,
		Status:            StatusProposal,
		CreatedBy:         snap.CreatedBy,
		KYCStatus:         result.KYCStatus,
		SuitabilityStatus: result.SuitabilityStatus,
		CreatedDate:       now,
		UpdatedDate:       now,
		ExpiryDate:        now.AddDate(0, 0, 30),
	}

	created, err := s.offers.Create(ctx, offer)
	if err != nil {
		return Offer{}, storageErr(err, "failed to create offer")
	}

	s.logger.InfoContext(ctx, "offer created from inquiry",
		"offer_id", created.ID,
		"inquiry_id", created.InquiryID,
		"client_id", created.ClientID,
		"kyc_status", created.KYCStatus,
		"suitability_status", created.SuitabilityStatus,
	)
	if s.metrics != nil {
		s.metrics.OffersCreated.Inc()
	}
	s.audit(ctx, created.ID, "created", "", string(StatusProposal))

	return created, nil
}

// Update patches an offer. Terminal offers reject all mutation; a status
// change is validated against the transition table.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Offer, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Offer{}, err
	}

	next, err := s.applyPatch(current, req)
	if err != nil {
		return Offer{}, err
	}
	next.UpdatedDate = requestcontext.Now(ctx)

	updated, err := s.persist(ctx, id, next)
	if err != nil {
		return Offer{}, err
	}
	if updated.Status != current.Status {
		s.audit(ctx, id, "status_changed", string(current.Status), string(updated.Status))
	}
	return updated, nil
}

// Delete soft-deletes an offer by forcing a transition to Rejected. Terminal
// offers cannot be deleted: Rejected is unreachable from them.
func (s *Service) Delete(ctx context.Context, id string) (Offer, error) {
	rejected := StatusRejected
	offer, err := s.Update(ctx, id, UpdateRequest{Status: &rejected})
	if err != nil {
		return Offer{}, err
	}
	s.logger.InfoContext(ctx, "offer rejected via delete", "offer_id", id)
	return offer, nil
}

// SendToClient delivers a Wait offer to its client. Both recorded compliance
// facts must be Pass; a failed gate leaves the offer untouched in Wait.
func (s *Service) SendToClient(ctx context.Context, id string) (Offer, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Offer{}, err
	}

	if current.Status != StatusWait {
		return Offer{}, domainerrors.Newf(domainerrors.CodeInvalidOperation,
			"only offers in Wait status can be sent to client (current: %s)", current.Status)
	}
	if current.KYCStatus != suitability.Pass || current.SuitabilityStatus != suitability.Pass {
		if s.metrics != nil {
			s.metrics.ComplianceFailures.WithLabelValues("send_to_client").Inc()
		}
		return Offer{}, domainerrors.New(domainerrors.CodeComplianceFailed,
			"cannot send offer: KYC or suitability check failed")
	}

	now := requestcontext.Now(ctx)
	next := current
	next.Status = StatusSent
	next.SentDate = &now
	next.UpdatedDate = now

	updated, err := s.persist(ctx, id, next)
	if err != nil {
		return Offer{}, err
	}

	if err := s.sender.SendOffer(ctx, updated.ClientID, updated.ID); err != nil {
		s.logger.ErrorContext(ctx, "offer delivery failed",
			"offer_id", updated.ID,
			"client_id", updated.ClientID,
			"error", err.Error(),
		)
	}

	s.logger.InfoContext(ctx, "offer sent to client",
		"offer_id", updated.ID,
		"client_id", updated.ClientID,
	)
	if s.metrics != nil {
		s.metrics.OffersSent.Inc()
	}
	s.audit(ctx, id, "status_changed", string(StatusWait), string(StatusSent))

	return updated, nil
}

// AcceptOffer records a client's acceptance of a Sent offer. The accepting
// client must match the offer's client; OTP verification is stamped on the
// record.
func (s *Service) AcceptOffer(ctx context.Context, id, clientID, paymentMethod string) (Offer, error) {
	if clientID == "" {
		return Offer{}, domainerrors.New(domainerrors.CodeBadRequest, "clientId is required")
	}
	if paymentMethod == "" {
		return Offer{}, domainerrors.New(domainerrors.CodeBadRequest, "paymentMethod is required")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return Offer{}, err
	}

	if current.Status != StatusSent {
		return Offer{}, domainerrors.Newf(domainerrors.CodeInvalidOperation,
			"only sent offers can be accepted (current: %s)", current.Status)
	}
	if current.ClientID != clientID {
		return Offer{}, domainerrors.New(domainerrors.CodeClientMismatch, "client ID mismatch")
	}

	verified, err := s.otp.Verify(ctx, clientID)
	if err != nil {
		return Offer{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "OTP verification failed")
	}
	if !verified {
		return Offer{}, domainerrors.New(domainerrors.CodePreconditionFailed, "OTP verification rejected")
	}

	now := requestcontext.Now(ctx)
	next := current
	next.Status = StatusAccepted
	next.AcceptedDate = &now
	next.AcceptedBy = clientID
	next.PaymentMethod = paymentMethod
	next.OTPVerified = true
	next.UpdatedDate = now

	updated, err := s.persist(ctx, id, next)
	if err != nil {
		return Offer{}, err
	}

	s.logger.InfoContext(ctx, "offer accepted",
		"offer_id", updated.ID,
		"client_id", clientID,
		"payment_method", paymentMethod,
	)
	if s.metrics != nil {
		s.metrics.OffersAccepted.Inc()
	}
	s.audit(ctx, id, "status_changed", string(StatusSent), string(StatusAccepted))

	return updated, nil
}

// ConfirmOrder finalizes an Accepted offer into a confirmed order. Both
// compliance facts must be Pass and a client acceptance must be on record.
func (s *Service) ConfirmOrder(ctx context.Context, id, approvedBy string) (Offer, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Offer{}, err
	}

	if current.Status != StatusAccepted {
		return Offer{}, domainerrors.Newf(domainerrors.CodeInvalidOperation,
			"only accepted offers can be confirmed (current: %s)", current.Status)
	}
	if current.KYCStatus != suitability.Pass {
		if s.metrics != nil {
			s.metrics.ComplianceFailures.WithLabelValues("confirm_order").Inc()
		}
		return Offer{}, domainerrors.New(domainerrors.CodeComplianceFailed, "cannot confirm: KYC check failed")
	}
	if current.SuitabilityStatus != suitability.Pass {
		if s.metrics != nil {
			s.metrics.ComplianceFailures.WithLabelValues("confirm_order").Inc()
		}
		return Offer{}, domainerrors.New(domainerrors.CodeComplianceFailed, "cannot confirm: suitability check failed")
	}
	if current.AcceptedBy == "" {
		return Offer{}, domainerrors.New(domainerrors.CodePreconditionFailed,
			"cannot confirm: client has not accepted the offer")
	}

	now := requestcontext.Now(ctx)
	next := current
	next.Status = StatusConfirmed
	next.ApprovedBy = approvedBy
	next.ApprovedDate = &now
	next.UpdatedDate = now

	updated, err := s.persist(ctx, id, next)
	if err != nil {
		return Offer{}, err
	}

	s.logger.InfoContext(ctx, "order confirmed",
		"offer_id", updated.ID,
		"approved_by", approvedBy,
	)
	if s.metrics != nil {
		s.metrics.OffersConfirmed.Inc()
	}
	s.audit(ctx, id, "status_changed", string(StatusAccepted), string(StatusConfirmed))

	return updated, nil
}

// applyPatch merges an update request into the current offer, enforcing
// terminal-state immutability and transition validity.
func (s *Service) applyPatch(current Offer, req UpdateRequest) (Offer, error) {
	if current.Status.IsTerminal() {
		if req.Status != nil && *req.Status != current.Status {
			return Offer{}, domainerrors.Newf(domainerrors.CodeInvalidTransition,
				"invalid status transition from %s to %s", current.Status, *req.Status)
		}
		return Offer{}, domainerrors.Newf(domainerrors.CodeInvalidOperation,
			"offer in terminal status %s cannot be modified", current.Status)
	}

	next := current
	if req.Status != nil && *req.Status != current.Status {
		if !current.Status.CanTransitionTo(*req.Status) {
			return Offer{}, domainerrors.Newf(domainerrors.CodeInvalidTransition,
				"invalid status transition from %s to %s", current.Status, *req.Status)
		}
		next.Status = *req.Status
	}
	if req.InvestmentAmount != nil {
		if *req.InvestmentAmount <= 0 {
			return Offer{}, domainerrors.New(domainerrors.CodeBadRequest, "investmentAmount must be positive")
		}
		next.InvestmentAmount = *req.InvestmentAmount
	}
	if req.ExpectedReturn != nil {
		next.ExpectedReturn = *req.ExpectedReturn
	}
	if req.MaturityDate != nil {
		next.MaturityDate = *req.MaturityDate
	}
	if req.ProposalRemarks != nil {
		next.ProposalRemarks = *req.ProposalRemarks
	}
	if req.ExpiryDate != nil {
		next.ExpiryDate = *req.ExpiryDate
	}
	return next, nil
}

// persist writes the merged record back by identifier.
func (s *Service) persist(ctx context.Context, id string, next Offer) (Offer, error) {
	updated, err := s.offers.Update(ctx, func(o Offer) bool { return o.ID == id }, next)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Offer{}, domainerrors.Newf(domainerrors.CodeNotFound, "offer %s not found", id)
	}
	if err != nil {
		return Offer{}, storageErr(err, "failed to update offer")
	}
	return updated, nil
}

// nextID derives the next sequential identifier for the day from persisted
// state, so identifiers survive restarts.
func (s *Service) nextID(ctx context.Context, now time.Time) (string, error) {
	offers, err := s.offers.ReadAll(ctx)
	if err != nil {
		return "", storageErr(err, "failed to read offers")
	}
	existing := make([]string, 0, len(offers))
	for _, o := range offers {
		existing = append(existing, o.ID)
	}
	return seqid.Next("OFF", now, existing), nil
}

func (s *Service) audit(ctx context.Context, offerID, action, from, to string) {
	if s.trail == nil {
		return
	}
	s.trail.Record(ctx, audit.Event{
		Entity:   "offer",
		EntityID: offerID,
		Action:   action,
		From:     from,
		To:       to,
	})
}

func storageErr(err error, msg string) error {
	return domainerrors.Wrap(err, domainerrors.CodeStorageIO, msg)
}
