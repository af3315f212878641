package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"chaospizza/internal/domain"
	"chaospizza/internal/dto"
	apperrors "chaospizza/internal/errors"
)

type ItemUseCase interface {
	AddItem(ctx context.Context, orderSlug string, fields dto.ItemFields) (*domain.OrderItem, error)
	UpdateItem(ctx context.Context, orderSlug, itemSlug string, fields dto.ItemFields) (*domain.OrderItem, error)
	DeleteItem(ctx context.Context, orderSlug, itemSlug string) error
}

type OrderItemController struct {
	itemUC ItemUseCase
	logger *zap.Logger
}

func NewOrderItemController(itemUC ItemUseCase, logger *zap.Logger) *OrderItemController {
	return &OrderItemController{
		itemUC: itemUC,
		logger: logger,
	}
}

// Add creates a new item on the order and remembers the participant's name
// in the session cookie for subsequent requests.
func (c *OrderItemController) Add(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	fields, ok := c.decodeItemRequest(w, r, logger)
	if !ok {
		return
	}

	item, err := c.itemUC.AddItem(r.Context(), chi.URLParam(r, "orderSlug"), fields)
	if err != nil {
		handleError(w, err, logger)
		return
	}

	rememberParticipant(w, item.Participant)
	writeJSON(w, http.StatusCreated, toItemResponse(*item), logger)
}

func (c *OrderItemController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	fields, ok := c.decodeItemRequest(w, r, logger)
	if !ok {
		return
	}

	item, err := c.itemUC.UpdateItem(r.Context(), chi.URLParam(r, "orderSlug"), chi.URLParam(r, "itemSlug"), fields)
	if err != nil {
		handleError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(*item), logger)
}

func (c *OrderItemController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	err := c.itemUC.DeleteItem(r.Context(), chi.URLParam(r, "orderSlug"), chi.URLParam(r, "itemSlug"))
	if err != nil {
		handleError(w, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderItemController) decodeItemRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (dto.ItemFields, bool) {
	var req dto.OrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return dto.ItemFields{}, false
	}

	return dto.ItemFields{
		Participant: req.Participant,
		Description: req.Description,
		Price:       req.Price,
		Amount:      req.Amount,
	}, true
}
