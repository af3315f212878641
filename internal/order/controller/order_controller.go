package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"chaospizza/internal/domain"
	"chaospizza/internal/dto"
	apperrors "chaospizza/internal/errors"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
}

type GetOrderUseCase interface {
	GetOrder(ctx context.Context, slug string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetHistory(ctx context.Context, slug string) ([]domain.Transition, error)
}

type TransitionOrderUseCase interface {
	Ordering(ctx context.Context, slug string) (*domain.Order, error)
	Ordered(ctx context.Context, slug string) (*domain.Order, error)
	Delivered(ctx context.Context, slug string) (*domain.Order, error)
	Cancel(ctx context.Context, slug string, reason string) (*domain.Order, error)
}

type OrderController struct {
	createUC     CreateOrderUseCase
	getUC        GetOrderUseCase
	transitionUC TransitionOrderUseCase
	logger       *zap.Logger
}

func NewOrderController(
	createUC CreateOrderUseCase,
	getUC GetOrderUseCase,
	transitionUC TransitionOrderUseCase,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		createUC:     createUC,
		getUC:        getUC,
		transitionUC: transitionUC,
		logger:       logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.createUC.CreateOrder(r.Context(), req)
	if err != nil {
		handleError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order, ""), logger)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.getUC.ListOrders(r.Context())
	if err != nil {
		handleError(w, err, logger)
		return
	}

	summaries := make([]dto.OrderSummaryResponse, len(orders))
	for i, order := range orders {
		summaries[i] = dto.OrderSummaryResponse{
			Slug:           order.Slug,
			Coordinator:    order.Coordinator,
			RestaurantName: order.RestaurantName,
			State:          order.State.String(),
			CreatedAt:      order.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, summaries, logger)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	order, err := c.getUC.GetOrder(r.Context(), chi.URLParam(r, "orderSlug"))
	if err != nil {
		handleError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order, rememberedParticipant(r)), logger)
}

func (c *OrderController) History(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	transitions, err := c.getUC.GetHistory(r.Context(), chi.URLParam(r, "orderSlug"))
	if err != nil {
		handleError(w, err, logger)
		return
	}

	history := make([]dto.TransitionResponse, len(transitions))
	for i, t := range transitions {
		history[i] = dto.TransitionResponse{
			FromState: t.FromState.String(),
			ToState:   t.ToState.String(),
			Timestamp: t.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, history, logger)
}

func (c *OrderController) Ordering(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.transitionUC.Ordering)
}

func (c *OrderController) Ordered(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.transitionUC.Ordered)
}

func (c *OrderController) Delivered(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.transitionUC.Delivered)
}

func (c *OrderController) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, slug string) (*domain.Order, error),
) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	order, err := op(r.Context(), chi.URLParam(r, "orderSlug"))
	if err != nil {
		handleError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order, ""), logger)
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.transitionUC.Cancel(r.Context(), chi.URLParam(r, "orderSlug"), req.Reason)
	if err != nil {
		handleError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order, ""), logger)
}

func toOrderResponse(order *domain.Order, remembered string) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = toItemResponse(item)
	}

	return dto.OrderResponse{
		Slug:                  order.Slug,
		Coordinator:           order.Coordinator,
		RestaurantName:        order.RestaurantName,
		RestaurantURL:         order.RestaurantURL,
		State:                 order.State.String(),
		CancelReason:          order.CancelReason,
		TotalPrice:            order.TotalPrice(),
		Items:                 items,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
		RememberedParticipant: remembered,
	}
}

func toItemResponse(item domain.OrderItem) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		Slug:        item.Slug,
		Participant: item.Participant,
		Description: item.Description,
		Price:       item.Price,
		Amount:      item.Amount,
		TotalPrice:  item.TotalPrice(),
		CreatedAt:   item.CreatedAt,
	}
}

type errorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

// handleError translates the error taxonomy into HTTP responses. Rejected
// writes always leave storage untouched, so every failure here is safe to
// report and retry from the client side.
func handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), logger)
		return
	}

	if _, ok := apperrors.IsUniquenessError(err); ok {
		writeError(w, http.StatusConflict, "CONFLICT", err.Error(), logger)
		return
	}

	if _, ok := apperrors.IsInvalidTransitionError(err); ok {
		writeError(w, http.StatusConflict, "INVALID_TRANSITION", err.Error(), logger)
		return
	}

	if _, ok := apperrors.IsStateError(err); ok {
		writeError(w, http.StatusConflict, "ORDER_NOT_WRITABLE", err.Error(), logger)
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		writeError(w, http.StatusConflict, "DEADLOCK", err.Error(), logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", logger)
}

func writeError(w http.ResponseWriter, status int, code, message string, logger *zap.Logger) {
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}, logger)
}

func writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	response := validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(response)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
