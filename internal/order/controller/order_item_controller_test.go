package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chaospizza/internal/domain"
	"chaospizza/internal/dto"
	apperrors "chaospizza/internal/errors"
)

type mockItemUseCase struct {
	AddItemFunc    func(ctx context.Context, orderSlug string, fields dto.ItemFields) (*domain.OrderItem, error)
	UpdateItemFunc func(ctx context.Context, orderSlug, itemSlug string, fields dto.ItemFields) (*domain.OrderItem, error)
	DeleteItemFunc func(ctx context.Context, orderSlug, itemSlug string) error
}

func (m *mockItemUseCase) AddItem(ctx context.Context, orderSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
	return m.AddItemFunc(ctx, orderSlug, fields)
}

func (m *mockItemUseCase) UpdateItem(ctx context.Context, orderSlug, itemSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
	return m.UpdateItemFunc(ctx, orderSlug, itemSlug, fields)
}

func (m *mockItemUseCase) DeleteItem(ctx context.Context, orderSlug, itemSlug string) error {
	return m.DeleteItemFunc(ctx, orderSlug, itemSlug)
}

func newItemTestRouter(c *OrderItemController) http.Handler {
	r := chi.NewRouter()
	r.Post("/orders/{orderSlug}/items", c.Add)
	r.Put("/orders/{orderSlug}/items/{itemSlug}", c.Update)
	r.Delete("/orders/{orderSlug}/items/{itemSlug}", c.Delete)
	return r
}

func TestOrderItemController_Add_RemembersParticipant(t *testing.T) {
	itemUC := &mockItemUseCase{
		AddItemFunc: func(ctx context.Context, orderSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
			item, err := domain.NewOrderItem(1, fields.Participant, fields.Description, fields.Price, fields.Amount)
			require.NoError(t, err)
			item.ID = 1
			return item, nil
		},
	}

	c := NewOrderItemController(itemUC, zap.NewNop())
	router := newItemTestRouter(c)

	body := `{"participant":"Kevin","description":"Test","price":"7.20","amount":1}`
	req := httptest.NewRequest(http.MethodPost, "/orders/bernd-hallo-pizza/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, participantCookie, cookies[0].Name)
	assert.Equal(t, "Kevin", cookies[0].Value)
}

func TestOrderItemController_Add_OrderNotWritable(t *testing.T) {
	itemUC := &mockItemUseCase{
		AddItemFunc: func(ctx context.Context, orderSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
			return nil, apperrors.NewStateError("ordering")
		},
	}

	c := NewOrderItemController(itemUC, zap.NewNop())
	router := newItemTestRouter(c)

	body := `{"participant":"Kevin","description":"Test","price":"7.20","amount":1}`
	req := httptest.NewRequest(http.MethodPost, "/orders/bernd-hallo-pizza/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORDER_NOT_WRITABLE")
	assert.Empty(t, rec.Result().Cookies(), "no cookie on failure")
}

func TestOrderItemController_Update_PassesDecimalPrice(t *testing.T) {
	var gotFields dto.ItemFields
	itemUC := &mockItemUseCase{
		UpdateItemFunc: func(ctx context.Context, orderSlug, itemSlug string, fields dto.ItemFields) (*domain.OrderItem, error) {
			gotFields = fields
			return &domain.OrderItem{Slug: itemSlug, Participant: fields.Participant, Price: fields.Price, Amount: fields.Amount}, nil
		},
	}

	c := NewOrderItemController(itemUC, zap.NewNop())
	router := newItemTestRouter(c)

	body := `{"participant":"Kevin","description":"Pizza Funghi","price":"8.90","amount":2}`
	req := httptest.NewRequest(http.MethodPut, "/orders/bernd-hallo-pizza/items/kevin-test", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotFields.Price.Equal(decimal.RequireFromString("8.90")))
	assert.Equal(t, 2, gotFields.Amount)
}

func TestOrderItemController_Delete_Success(t *testing.T) {
	itemUC := &mockItemUseCase{
		DeleteItemFunc: func(ctx context.Context, orderSlug, itemSlug string) error {
			return nil
		},
	}

	c := NewOrderItemController(itemUC, zap.NewNop())
	router := newItemTestRouter(c)

	req := httptest.NewRequest(http.MethodDelete, "/orders/bernd-hallo-pizza/items/kevin-test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
