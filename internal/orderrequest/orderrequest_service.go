package orderrequest

import (
	"context"
	"strings"
	"time"

	"go-staffhub/internal/authz"
	"go-staffhub/internal/identity"
	orderrequesterrors "go-staffhub/internal/orderrequest/errors"
	"go-staffhub/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=orderrequest_service.go -destination=mock/orderrequest_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, ordered *bool) ([]OrderResponse, error)
	Create(ctx context.Context, actor identity.Actor, req CreateOrderRequest) (OrderResponse, error)
	MarkOrdered(ctx context.Context, actor identity.Actor, id string) (OrderResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("orderrequest.service")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		logger: zap.L().Named("orderrequest.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.Logger(ctx, s.logger)
}

func mapToResponse(o OrderRequest) OrderResponse {
	items := o.Items
	if items == nil {
		items = []string{}
	}
	resp := OrderResponse{
		ID:          o.ID.String(),
		RequesterID: o.RequesterID.String(),
		Items:       items,
		Details:     o.Details,
		Reason:      o.Reason,
		Ordered:     o.Ordered,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.Requester != nil {
		resp.RequesterName = o.Requester.Name
	}
	if o.OrderedBy != nil {
		resp.OrderedBy = o.OrderedBy.String()
	}
	if o.OrderedAt != nil {
		resp.OrderedAt = o.OrderedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func parseOrderID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, orderrequesterrors.ErrOrderRequestNotFound
	}
	return parsed, nil
}

// cleanItems trims every item and drops the blank ones.
func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (s *service) List(ctx context.Context, ordered *bool) ([]OrderResponse, error) {
	rows, err := s.repo.List(ctx, ordered)
	if err != nil {
		s.log(ctx).Error("list order requests failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	out := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToResponse(row))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateOrderRequest) (OrderResponse, error) {
	requester, err := uuid.Parse(strings.TrimSpace(actor.ID))
	if err != nil {
		return OrderResponse{}, orderrequesterrors.ErrInvalidUserID
	}
	items := cleanItems(req.Items)
	if len(items) == 0 {
		return OrderResponse{}, orderrequesterrors.ErrItemsRequired
	}

	now := s.now().UTC()
	row := &OrderRequest{
		ID:          uuid.New(),
		RequesterID: requester,
		Items:       items,
		Details:     strings.TrimSpace(req.Details),
		Reason:      strings.TrimSpace(req.Reason),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.log(ctx).Error("create order request failed", zap.Error(err))
		return OrderResponse{}, mapRepositoryError(err)
	}

	s.log(ctx).Info("order request filed",
		zap.String("order_request_id", row.ID.String()),
		zap.Int("items", len(items)),
	)
	return mapToResponse(*row), nil
}

// MarkOrdered is idempotent: a request that is already ordered keeps its
// first fulfilment stamp.
func (s *service) MarkOrdered(ctx context.Context, actor identity.Actor, id string) (OrderResponse, error) {
	if !authz.CanMarkOrdered(actor.Role) {
		return OrderResponse{}, orderrequesterrors.ErrNotAllowedToMarkOrdered
	}
	by, err := uuid.Parse(strings.TrimSpace(actor.ID))
	if err != nil {
		return OrderResponse{}, orderrequesterrors.ErrInvalidUserID
	}
	oid, err := parseOrderID(id)
	if err != nil {
		return OrderResponse{}, err
	}

	affected, err := s.repo.MarkOrdered(ctx, oid, by, s.now().UTC())
	if err != nil {
		s.log(ctx).Error("mark order request ordered failed", zap.Error(err))
		return OrderResponse{}, mapRepositoryError(err)
	}

	row, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return OrderResponse{}, mapRepositoryError(err)
	}
	if affected > 0 {
		s.log(ctx).Info("order request marked ordered",
			zap.String("order_request_id", oid.String()),
			zap.String("actor_id", by.String()),
		)
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	oid, err := parseOrderID(id)
	if err != nil {
		return err
	}

	row, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !authz.CanDeleteOrderRequest(actor.ID, actor.Role, row.RequesterID.String()) {
		return orderrequesterrors.ErrNotAllowedToDelete
	}

	affected, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return orderrequesterrors.ErrOrderRequestNotFound
	}

	s.log(ctx).Info("order request removed",
		zap.String("order_request_id", oid.String()),
		zap.String("actor_id", actor.ID),
	)
	return nil
}
