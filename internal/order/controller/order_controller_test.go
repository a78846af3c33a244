package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopbot/internal/domain"
	apperrors "shopbot/internal/errors"
	"shopbot/internal/order/usecase"
)

type mockUseCase struct {
	ProcessFunc func(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error)
	commands    []usecase.ProcessOrderCommand
}

func (m *mockUseCase) Process(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error) {
	m.commands = append(m.commands, cmd)
	return m.ProcessFunc(ctx, cmd)
}

const orderBody = `{
	"userId": 42,
	"cart": [{"id":1,"name":"Чай","unit":"piece","price":500,"quantity":2}],
	"userData": {"fullName":"Иван Иванов","phone":"+79991234567","city":"Москва"},
	"deliveryMethod": "Почта России"
}`

func TestHandleCreateOrder_Success(t *testing.T) {
	uc := &mockUseCase{
		ProcessFunc: func(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error) {
			return &usecase.OrderResult{
				OrderID:   "T7",
				Region:    domain.RegionLocal,
				Status:    domain.OrderStatusNotifiedManager,
				Delivered: true,
			}, nil
		},
	}
	ctrl := NewController(uc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(orderBody))
	rec := httptest.NewRecorder()
	ctrl.HandleCreateOrder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "T7", resp["orderNumber"])

	require.Len(t, uc.commands, 1)
	cmd := uc.commands[0]
	assert.Equal(t, int64(42), cmd.UserID)
	assert.Equal(t, int64(0), cmd.ChatID)
	assert.Equal(t, "Иван Иванов", cmd.Contact.FullName)
	require.Len(t, cmd.Lines, 1)
	assert.Equal(t, int64(500), cmd.Lines[0].Price)
}

func TestHandleCreateOrder_InvalidJSON(t *testing.T) {
	uc := &mockUseCase{
		ProcessFunc: func(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error) {
			t.Fatal("use case must not run for malformed bodies")
			return nil, nil
		},
	}
	ctrl := NewController(uc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	ctrl.HandleCreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestHandleCreateOrder_MissingUserID(t *testing.T) {
	ctrl := NewController(&mockUseCase{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(`{"cart":[]}`))
	rec := httptest.NewRecorder()
	ctrl.HandleCreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "userId")
}

func TestHandleCreateOrder_ValidationErrorFromUseCase(t *testing.T) {
	uc := &mockUseCase{
		ProcessFunc: func(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error) {
			return nil, apperrors.NewValidationError("❌ Проверьте данные заказа и попробуйте снова.",
				apperrors.ValidationDetail{Field: "userData.phone", Message: "phone is required"})
		},
	}
	ctrl := NewController(uc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(orderBody))
	rec := httptest.NewRecorder()
	ctrl.HandleCreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "userData.phone")
}

func TestHandleCreateOrder_StorageError(t *testing.T) {
	uc := &mockUseCase{
		ProcessFunc: func(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error) {
			return nil, apperrors.NewStorageError("persisting counter failed", nil)
		},
	}
	ctrl := NewController(uc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(orderBody))
	rec := httptest.NewRecorder()
	ctrl.HandleCreateOrder(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORAGE_ERROR")
}

func TestHandleNotifyManager_SharesTheOrderPipeline(t *testing.T) {
	uc := &mockUseCase{
		ProcessFunc: func(ctx context.Context, cmd usecase.ProcessOrderCommand) (*usecase.OrderResult, error) {
			return &usecase.OrderResult{OrderID: "T8", Status: domain.OrderStatusNotifiedManager}, nil
		},
	}
	ctrl := NewController(uc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/notify-manager", strings.NewReader(orderBody))
	rec := httptest.NewRecorder()
	ctrl.HandleNotifyManager(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, uc.commands, 1)
	assert.Contains(t, rec.Body.String(), "T8")
}
