package usecase

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"linkup-ads/internal/core/domain"
	"linkup-ads/internal/core/port"
)

// Lifecycle drives campaigns through creation, payment, approval and
// pause states. It implements port.LifecycleUseCase.
type Lifecycle struct {
	campaigns port.CampaignRepository
	validate  *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

// NewLifecycle creates the lifecycle controller.
func NewLifecycle(campaigns port.CampaignRepository, logger *slog.Logger) *Lifecycle {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// report offending fields by their wire names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Lifecycle{
		campaigns: campaigns,
		validate:  validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the submission and stores a new campaign with its
// creatives. A submission with a payment proof attached goes straight
// to PENDING_VERIFICATION; otherwise it waits in PENDING_PAYMENT.
func (u *Lifecycle) Create(ctx context.Context, req port.CreateCampaignReq) (*domain.Campaign, error) {
	if err := u.validateCreate(req); err != nil {
		return nil, err
	}

	now := u.now()
	status := domain.StatusPendingPayment
	if req.PaymentProof != "" {
		status = domain.StatusPendingVerification
	}
	c := &domain.Campaign{
		ID:             uuid.NewString(),
		OwnerID:        req.OwnerID,
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Objective:      req.Objective,
		DailyBudget:    req.DailyBudget,
		TotalBudget:    req.TotalBudget,
		DurationDays:   domain.DurationDays(req.TotalBudget, req.DailyBudget),
		Status:         status,
		PaymentProof:   req.PaymentProof,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	creatives := make([]domain.Creative, 0, len(req.Creatives))
	for _, in := range req.Creatives {
		mediaURL := in.ImageURL
		if domain.CreativeType(in.Type) == domain.CreativeVideo {
			mediaURL = in.VideoURL
		}
		creatives = append(creatives, domain.Creative{
			ID:             uuid.NewString(),
			CampaignID:     c.ID,
			Type:           domain.CreativeType(in.Type),
			MediaURL:       mediaURL,
			VideoDuration:  in.VideoDuration,
			CTA:            in.CTA,
			DestinationURL: in.DestinationURL,
			ApprovalStatus: domain.ApprovalPending,
			IsActive:       false,
			DisplayOrder:   in.DisplayOrder,
			RotationHours:  in.RotationHours,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	if err := u.campaigns.Create(ctx, c, creatives); err != nil {
		return nil, wrapInternal("create campaign", err)
	}
	u.logger.Info("campaign created",
		slog.String("campaign_id", c.ID),
		slog.String("status", string(c.Status)))
	return c, nil
}

// AttachPaymentProof records a submitted proof and moves the campaign
// to PENDING_VERIFICATION.
func (u *Lifecycle) AttachPaymentProof(ctx context.Context, id, proof string) (*domain.Campaign, error) {
	if proof == "" {
		return nil, &domain.ValidationError{Field: "paymentProof", Reason: "must not be empty"}
	}
	if err := u.campaigns.AttachPaymentProof(ctx, id, proof); err != nil {
		return nil, wrapInternal("attach payment proof", err)
	}
	return u.Get(ctx, id)
}

// ConfirmPayment moves a verified campaign into the approval queue.
func (u *Lifecycle) ConfirmPayment(ctx context.Context, id string) (*domain.Campaign, error) {
	err := u.campaigns.SetStatus(ctx, id, domain.StatusPendingVerification, domain.StatusPendingApproval)
	if err != nil {
		return nil, wrapInternal("confirm payment", err)
	}
	return u.Get(ctx, id)
}

// Approve activates a PENDING_APPROVAL campaign: run dates are stamped
// from the derived duration and every pending creative is cascaded to
// APPROVED/active in the same commit as the status change.
func (u *Lifecycle) Approve(ctx context.Context, id, role string) (*domain.Campaign, error) {
	if role != port.RoleAdmin {
		return nil, &domain.AuthorizationError{Role: role}
	}
	c, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(c.Status, domain.StatusActive) {
		return nil, &domain.TransitionError{ID: id, From: c.Status, To: domain.StatusActive}
	}
	start := u.now()
	end := start.AddDate(0, 0, c.DurationDays)
	if err = u.campaigns.Activate(ctx, id, start, end); err != nil {
		return nil, wrapInternal("approve campaign", err)
	}
	u.logger.Info("campaign approved", slog.String("campaign_id", id))
	return u.Get(ctx, id)
}

// Reject declines a PENDING_APPROVAL campaign and cascades its
// creatives to REJECTED/inactive atomically.
func (u *Lifecycle) Reject(ctx context.Context, id, role string) (*domain.Campaign, error) {
	if role != port.RoleAdmin {
		return nil, &domain.AuthorizationError{Role: role}
	}
	if err := u.campaigns.Reject(ctx, id); err != nil {
		return nil, wrapInternal("reject campaign", err)
	}
	u.logger.Info("campaign rejected", slog.String("campaign_id", id))
	return u.Get(ctx, id)
}

// Pause suspends delivery for an ACTIVE campaign.
func (u *Lifecycle) Pause(ctx context.Context, id string) (*domain.Campaign, error) {
	err := u.campaigns.SetStatus(ctx, id, domain.StatusActive, domain.StatusPaused)
	if err != nil {
		return nil, wrapInternal("pause campaign", err)
	}
	return u.Get(ctx, id)
}

// Resume restores delivery for a PAUSED campaign.
func (u *Lifecycle) Resume(ctx context.Context, id string) (*domain.Campaign, error) {
	err := u.campaigns.SetStatus(ctx, id, domain.StatusPaused, domain.StatusActive)
	if err != nil {
		return nil, wrapInternal("resume campaign", err)
	}
	return u.Get(ctx, id)
}

// Get returns a campaign or NotFoundError.
func (u *Lifecycle) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return nil, wrapInternal("get campaign", err)
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: "campaign", ID: id}
	}
	return c, nil
}

// Delete removes a campaign. Campaigns with recorded spend are refused
// unless force is set.
func (u *Lifecycle) Delete(ctx context.Context, id string, force bool) error {
	if err := u.campaigns.Delete(ctx, id, force); err != nil {
		if errors.Is(err, port.ErrSpendRecorded) {
			return err
		}
		return wrapInternal("delete campaign", err)
	}
	return nil
}

// validateCreate applies the struct tags plus the per-type creative
// rules, reporting the first offending field.
func (u *Lifecycle) validateCreate(req port.CreateCampaignReq) error {
	if err := u.validate.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return &domain.InternalError{Op: "validate campaign", Err: err}
		}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &domain.ValidationError{
				Field:  fe.Field(),
				Reason: reasonForTag(fe),
			}
		}
		return &domain.InternalError{Op: "validate campaign", Err: err}
	}
	for _, cr := range req.Creatives {
		switch domain.CreativeType(cr.Type) {
		case domain.CreativeVideo:
			if cr.VideoURL == "" {
				return &domain.ValidationError{Field: "videoUrl", Reason: "required for VIDEO creatives"}
			}
			if cr.VideoDuration <= 0 || cr.VideoDuration > domain.MaxVideoDuration {
				return &domain.ValidationError{Field: "videoDuration", Reason: "must be between 1 and 20 seconds"}
			}
		case domain.CreativeImage:
			if cr.ImageURL == "" {
				return &domain.ValidationError{Field: "imageUrl", Reason: "required for IMAGE creatives"}
			}
		}
	}
	return nil
}

func reasonForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gtefield":
		return "must be at least the " + strings.ToLower(fe.Param())
	case "min":
		return "must have at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

// wrapInternal passes domain errors through untouched and wraps
// everything else as InternalError.
func wrapInternal(op string, err error) error {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		inactiveErr   *domain.InactiveCampaignError
		transitionErr *domain.TransitionError
		authErr       *domain.AuthorizationError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &inactiveErr),
		errors.As(err, &transitionErr),
		errors.As(err, &authErr):
		return err
	}
	return &domain.InternalError{Op: op, Err: err}
}
