package ari

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aokpower/ari-cart/internal/domain/shared"
	"github.com/aokpower/ari-cart/internal/domain/storefront"
	"github.com/aokpower/ari-cart/internal/infrastructure/logger"
	"github.com/aokpower/ari-cart/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// State is a step of one add-to-cart invocation
type State string

const (
	StateParsingParams   State = "PARSING_PARAMS"
	StateLookingUp       State = "LOOKING_UP"
	StateAddingToCart    State = "ADDING_TO_CART"
	StateRefreshingCount State = "REFRESHING_COUNT"
	StateDone            State = "DONE"
	StateFailed          State = "FAILED"
)

// Shopper-facing wording
const (
	FailureTitle       = "Something went wrong!"
	FailureLead        = "We're sorry; Your item couldn't be added to the cart:"
	ContactInstruction = "Try calling us at 1 (844) 587-6937."
	OutOfStockTitle    = "Can't add item to cart: This item is out of stock"
)

// FailureMessage is the body of the catch-all alert for err
func FailureMessage(err error) string {
	return FailureLead + "\n" + err.Error() + "\n" + ContactInstruction
}

// Outcome describes how an invocation ended
type Outcome struct {
	InvocationID string
	State        State
	// FailedAt is the step that was running when the invocation failed
	FailedAt  State
	Params    storefront.ActionParams
	ProductID int64
	Result    storefront.CartItemResult
	Err       error
}

// Succeeded reports whether the invocation reached StateDone
func (o *Outcome) Succeeded() bool {
	return o.State == StateDone
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the base logger; invocations derive a child logger from it
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStepTimeout bounds each of the lookup, add and refresh calls.
// Zero or negative leaves the calls unbounded.
func WithStepTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.stepTimeout = d
	}
}

// WithMetrics records invocation and step metrics
func WithMetrics(m *telemetry.ARIMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// Service drives a single "add this SKU to the cart" action from the host
// page's parameter string to a user notification.
type Service struct {
	lookup      storefront.PartLookup
	cart        storefront.Cart
	notifier    storefront.Notifier
	logger      *zap.Logger
	stepTimeout time.Duration
	metrics     *telemetry.ARIMetrics
}

// NewService creates a new Service
func NewService(lookup storefront.PartLookup, cart storefront.Cart, notifier storefront.Notifier, opts ...Option) *Service {
	s := &Service{
		lookup:   lookup,
		cart:     cart,
		notifier: notifier,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddToCartARI is the host page entry point. It never returns an error:
// every outcome reaches the shopper through the notifier.
func (s *Service) AddToCartARI(ctx context.Context, raw string) {
	s.Run(ctx, raw)
}

// Run performs the invocation and reports how it ended. At most one
// catch-all alert is raised, and only when Outcome.State is StateFailed.
func (s *Service) Run(ctx context.Context, raw string) *Outcome {
	out := &Outcome{InvocationID: uuid.NewString(), State: StateParsingParams}

	base := s.logger
	if l, ok := ctx.Value(logger.LoggerKey).(*zap.Logger); ok {
		base = l
	}
	ctx, log := logger.WithInvocationID(ctx, base, out.InvocationID)

	ctx, span := telemetry.StartServiceSpan(ctx, "ari", "AddToCart",
		telemetry.WithAttribute(telemetry.SpanAttrInvocationID, out.InvocationID),
	)
	defer span.End()

	if err := s.run(ctx, raw, out); err != nil {
		out.FailedAt = out.State
		out.State = StateFailed
		out.Err = err

		msg := FailureMessage(err)
		logger.WithTraceContext(ctx, log).Error(msg,
			zap.String("failed_at", string(out.FailedAt)),
			zap.Error(err),
		)
		s.notifier.Alert(FailureTitle, msg)

		telemetry.SetAttributes(span, telemetry.SpanAttrState, string(out.FailedAt))
		telemetry.RecordError(span, err)
		s.metrics.RecordInvocation(ctx, string(out.State), string(out.FailedAt))
		return out
	}

	out.State = StateDone
	telemetry.SetOK(span)
	s.metrics.RecordInvocation(ctx, string(out.State), "")
	return out
}

func (s *Service) run(ctx context.Context, raw string, out *Outcome) error {
	log := logger.FromContext(ctx)

	params, err := storefront.ParseActionParams(raw)
	if err != nil {
		return err
	}
	out.Params = params

	out.State = StateLookingUp
	log.Info(fmt.Sprintf("looking up part %s...", params.SKU))
	id, err := s.lookupID(ctx, params.SKU)
	if err != nil {
		return err
	}
	out.ProductID = id
	log.Info(fmt.Sprintf("Found %s, id = %d", params.SKU, id))

	out.State = StateAddingToCart
	result, err := s.addToCart(ctx, storefront.CartItemRequest{ID: id, Quantity: params.Quantity})
	if err != nil {
		return err
	}
	out.Result = result

	switch result.Status {
	case storefront.ItemStatusAdded:
		msg := fmt.Sprintf("Successfully added %s to cart.", params.SKU)
		s.notifier.Success(msg)
		s.metrics.RecordItemsAdded(ctx, params.Quantity)
		log.Info(msg, zap.Int64("variant_id", id), zap.Int("quantity", params.Quantity))
	case storefront.ItemStatusUnprocessable:
		s.notifier.Alert(OutOfStockTitle, result.Description)
	default:
		log.Error("Add to cart returned a status we don't handle", zap.Stringer("status", result.Status))
		return storefront.ErrUnhandledStatus
	}

	out.State = StateRefreshingCount
	return s.refreshCount(ctx)
}

func (s *Service) lookupID(ctx context.Context, sku string) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "ari.lookup",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrSKU, sku),
	)
	defer span.End()

	start := time.Now()
	found, err := callWithTimeout(ctx, s.stepTimeout, func(ctx context.Context) (storefront.LookupResult, error) {
		return s.lookup.IDOfSKU(ctx, sku)
	})
	s.metrics.RecordStep(ctx, "lookup", time.Since(start), err)
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, err
	}
	if !found.Exists {
		err := &storefront.PartUnavailableError{SKU: sku}
		telemetry.RecordError(span, err)
		return 0, err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(found.Value), 10, 64)
	if err != nil {
		logger.FromContext(ctx).Warn("Lookup returned a non-numeric part id", zap.String("value", found.Value))
		telemetry.RecordError(span, storefront.ErrLookupInvalidID)
		return 0, storefront.ErrLookupInvalidID
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrVariantID, id)
	telemetry.SetOK(span)
	return id, nil
}

func (s *Service) addToCart(ctx context.Context, item storefront.CartItemRequest) (storefront.CartItemResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ari.add_to_cart",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrVariantID, item.ID),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, item.Quantity),
	)
	defer span.End()

	start := time.Now()
	result, err := callWithTimeout(ctx, s.stepTimeout, func(ctx context.Context) (storefront.CartItemResult, error) {
		return s.cart.AddToCart(ctx, item)
	})
	s.metrics.RecordStep(ctx, "add_to_cart", time.Since(start), err)
	if err != nil {
		telemetry.RecordError(span, err)
		return storefront.CartItemResult{}, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrItemStatus, result.Status.String())
	telemetry.SetOK(span)
	return result, nil
}

func (s *Service) refreshCount(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "ari.refresh_count", telemetry.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	count, err := callWithTimeout(ctx, s.stepTimeout, s.cart.UpdateCartCount)
	s.metrics.RecordStep(ctx, "refresh_count", time.Since(start), err)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCartCount, count)
	telemetry.SetOK(span)
	return nil
}

// callWithTimeout runs op under shared.Timeout when d is positive
func callWithTimeout[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return op(ctx)
	}
	return shared.Timeout(ctx, d, op)
}
