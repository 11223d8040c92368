package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("agromarket-service/usecase")

const (
	SubjectListingCreated = "listing.created"
	SubjectListingDeleted = "listing.deleted"
)

// DefaultNotifyTimeout bounds the confirmation email sent after a create.
const DefaultNotifyTimeout = 10 * time.Second

// ListingUsecase implements the listing query and mutation procedures.
type ListingUsecase struct {
	repo      domain.ListingRepository
	publisher domain.EventPublisher // optional
	notifier  domain.Notifier       // optional
	metrics   *metrics.MetricsManager
	logger    *logger.Logger

	notifyTimeout time.Duration
}

func NewListingUsecase(
	repo domain.ListingRepository,
	publisher domain.EventPublisher,
	notifier domain.Notifier,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:          repo,
		publisher:     publisher,
		notifier:      notifier,
		metrics:       mm,
		notifyTimeout: DefaultNotifyTimeout,
		logger:        log.Named("ListingUsecase"),
	}
}

// WithNotifyTimeout overrides DefaultNotifyTimeout. Non-positive values are ignored.
func (uc *ListingUsecase) WithNotifyTimeout(d time.Duration) *ListingUsecase {
	if d > 0 {
		uc.notifyTimeout = d
	}
	return uc
}

func requireCaller(caller domain.Caller) error {
	if !caller.Authenticated() {
		return domain.NewUnauthenticatedError()
	}
	return nil
}

func endSpan(span oteltrace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(domain.KindOf(err)))
	}
	span.End()
}

// GetAllListings returns every listing, oldest first.
func (uc *ListingUsecase) GetAllListings(ctx context.Context, caller domain.Caller) (_ []*domain.Listing, err error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.GetAllListings")
	defer func() { endSpan(span, err) }()

	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	uc.logger.Info("Fetching all listings", zap.String("caller_id", caller.UserID))

	listings, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to fetch all listings", zap.Error(err))
		return nil, domain.NewInternalError("failed to fetch listings", err)
	}
	return listings, nil
}

// GetListingsByUser returns the catalogue of userID. The caller need not be userID.
func (uc *ListingUsecase) GetListingsByUser(ctx context.Context, caller domain.Caller, userID string) (_ []*domain.Listing, err error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.GetListingsByUser")
	defer func() { endSpan(span, err) }()

	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	userID, err = domain.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("owner_id", userID))
	uc.logger.Info("Fetching listings by user", zap.String("caller_id", caller.UserID), zap.String("owner_id", userID))

	return uc.findByOwner(ctx, userID)
}

// GetFarmerListings returns the caller's own listings.
func (uc *ListingUsecase) GetFarmerListings(ctx context.Context, caller domain.Caller) (_ []*domain.Listing, err error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.GetFarmerListings")
	defer func() { endSpan(span, err) }()

	// The identity is resolved before it is used as a filter.
	if err := requireCaller(caller); err != nil {
		uc.logger.Warn("Refusing farmer listings without identity")
		return nil, err
	}
	uc.logger.Info("Fetching farmer listings", zap.String("caller_id", caller.UserID))

	return uc.findByOwner(ctx, caller.UserID)
}

func (uc *ListingUsecase) findByOwner(ctx context.Context, userID string) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch listings by owner", zap.String("owner_id", userID), zap.Error(err))
		return nil, domain.NewInternalError("failed to fetch listings", err)
	}
	return listings, nil
}

// AddListing creates a listing owned by the caller and returns its id.
func (uc *ListingUsecase) AddListing(ctx context.Context, caller domain.Caller, in domain.NewListing) (_ string, err error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.AddListing")
	defer func() { endSpan(span, err) }()

	if err := requireCaller(caller); err != nil {
		return "", err
	}
	in, err = in.Validate()
	if err != nil {
		uc.logger.Info("Rejected invalid listing", zap.String("caller_id", caller.UserID), zap.Error(err))
		return "", err
	}
	uc.logger.Info("Creating listing", zap.String("caller_id", caller.UserID), zap.String("name", in.Name))

	id, err := uc.repo.Create(ctx, caller.UserID, in)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInsert) {
			uc.logger.Error("Store returned no id for new listing", zap.String("caller_id", caller.UserID))
		} else {
			uc.logger.Error("Failed to create listing", zap.String("caller_id", caller.UserID), zap.Error(err))
		}
		return "", domain.NewInternalError("failed to create listing", err)
	}
	if id == "" {
		uc.logger.Error("Store returned an empty id for new listing", zap.String("caller_id", caller.UserID))
		return "", domain.NewInternalError("failed to create listing", domain.ErrEmptyInsert)
	}
	span.SetAttributes(attribute.String("listing_id", id))
	if uc.metrics != nil {
		uc.metrics.ListingsCreated.Inc()
	}

	uc.publish(ctx, SubjectListingCreated, map[string]string{"id": id, "user_id": caller.UserID, "name": in.Name})
	if uc.notifier != nil && caller.Email != "" {
		uc.notify(ctx, id, caller.Email, in.Name)
	}

	uc.logger.Info("Listing created", zap.String("listing_id", id), zap.String("caller_id", caller.UserID))
	return id, nil
}

// DeleteListing removes a listing owned by the caller. A missing listing and a
// listing owned by someone else produce the same error.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, caller domain.Caller, id string) (err error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.DeleteListing")
	defer func() { endSpan(span, err) }()

	if err := requireCaller(caller); err != nil {
		return err
	}
	id, err = domain.ValidateListingID(id)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("listing_id", id))
	uc.logger.Info("Deleting listing", zap.String("listing_id", id), zap.String("caller_id", caller.UserID))

	affected, err := uc.repo.DeleteOwned(ctx, id, caller.UserID)
	if err != nil {
		uc.logger.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return domain.NewInternalError("failed to delete listing", err)
	}
	if affected == 0 {
		uc.logger.Warn("Listing not deleted: missing or owned by another user",
			zap.String("listing_id", id), zap.String("caller_id", caller.UserID))
		return domain.NewNotFoundError()
	}
	if uc.metrics != nil {
		uc.metrics.ListingsDeleted.Inc()
	}

	uc.publish(ctx, SubjectListingDeleted, map[string]string{"id": id, "user_id": caller.UserID})
	uc.logger.Info("Listing deleted", zap.String("listing_id", id))
	return nil
}

// notify runs detached from the request's cancellation but under its own deadline.
func (uc *ListingUsecase) notify(ctx context.Context, listingID, email, name string) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.notifyTimeout)
	defer cancel()
	if err := uc.notifier.SendListingCreatedEmail(nctx, email, name); err != nil {
		uc.logger.Warn("Failed to send listing confirmation email", zap.String("listing_id", listingID), zap.Error(err))
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, data interface{}) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
