package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	httpapi "restaurant-backend/restaurant-svc/internal/api/http"
	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/mocks"
	"restaurant-backend/restaurant-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:5173"

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

type fixture struct {
	customers *mocks.CustomerRepository
	tables    *mocks.TableRepository
	dishes    *mocks.DishRepository
	setMeals  *mocks.SetMealRepository
	orders    *mocks.OrderRepository
	qr        *mocks.QRGenerator
	router    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	log := logrus.NewEntry(logger)

	f := &fixture{
		customers: mocks.NewCustomerRepository(t),
		tables:    mocks.NewTableRepository(t),
		dishes:    mocks.NewDishRepository(t),
		setMeals:  mocks.NewSetMealRepository(t),
		orders:    mocks.NewOrderRepository(t),
		qr:        mocks.NewQRGenerator(t),
	}
	handler := httpapi.NewHandler(httpapi.Services{
		Customers:    service.NewCustomerService(f.customers),
		Tables:       service.NewTableService(f.tables),
		Dishes:       service.NewDishService(f.dishes, nil, log),
		SetMeals:     service.NewSetMealService(f.setMeals, nil, log),
		SetDishes:    service.NewSetDishService(f.setMeals, nil, log),
		Orders:       service.NewOrderService(f.orders, f.qr, nil, nil, log),
		OrderDetails: service.NewOrderDetailsService(f.orders, nil, log),
		Sales:        service.NewSalesService(nil),
	}, log)
	f.router = httpapi.NewRouter(handler, testOrigin)
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"restaurant-svc"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateCustomerHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*mocks.CustomerRepository)
		wantCode  int
	}{
		{
			name: "valid request",
			body: `{"name":"Ann","phone":"555-0100"}`,
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("CreateCustomer", mock.Anything, mock.AnythingOfType("*domain.Customer")).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Customer).ID = 1 }).
					Return(nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "invalid JSON",
			body:      `{invalid}`,
			setupMock: func(m *mocks.CustomerRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "missing name",
			body:      `{"phone":"555-0100"}`,
			setupMock: func(m *mocks.CustomerRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate phone",
			body: `{"name":"Bob","phone":"555-0100"}`,
			setupMock: func(m *mocks.CustomerRepository) {
				m.On("CreateCustomer", mock.Anything, mock.Anything).Return(domain.ErrConflict).Once()
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)
			testCase.setupMock(f.customers)

			w := f.do(http.MethodPost, "/api/customers", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
			if w.Code == http.StatusCreated {
				assert.JSONEq(t, `{"id":1,"name":"Ann","phone":"555-0100"}`, w.Body.String())
			} else {
				assert.NotEmpty(t, errorBody(t, w))
			}
		})
	}
}

func TestGetDishHandler(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		setupMock func(*mocks.DishRepository)
		wantCode  int
	}{
		{
			name: "found",
			path: "/api/dishes/1",
			setupMock: func(m *mocks.DishRepository) {
				m.On("GetDish", mock.Anything, int64(1)).
					Return(&domain.Dish{ID: 1, Name: "Fried Rice", Price: decimal.NewNullDecimal(decimal.NewFromInt(80)), Type: "main"}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "missing",
			path: "/api/dishes/9",
			setupMock: func(m *mocks.DishRepository) {
				m.On("GetDish", mock.Anything, int64(9)).Return(nil, domain.ErrNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "non numeric id",
			path:      "/api/dishes/abc",
			setupMock: func(m *mocks.DishRepository) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)
			testCase.setupMock(f.dishes)

			w := f.do(http.MethodGet, testCase.path, "")

			assert.Equal(t, testCase.wantCode, w.Code)
			if w.Code == http.StatusOK {
				assert.JSONEq(t, `{"id":1,"name":"Fried Rice","description":"","price":80,"type":"main"}`, w.Body.String())
			}
		})
	}
}

func TestWriteDishHandler_RequiresPrice(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "create without price", method: http.MethodPost, path: "/api/dishes", body: `{"name":"Soup","type":"main"}`},
		{name: "replace without price", method: http.MethodPut, path: "/api/dishes/4", body: `{"name":"Soup","type":"main"}`},
		{name: "create with null price", method: http.MethodPost, path: "/api/dishes", body: `{"name":"Soup","type":"main","price":null}`},
		{name: "set meal without price", method: http.MethodPost, path: "/api/sets", body: `{"name":"Combo A"}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)

			w := f.do(testCase.method, testCase.path, testCase.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorBody(t, w), "price is required")
			f.dishes.AssertNotCalled(t, "CreateDish", mock.Anything, mock.Anything)
			f.dishes.AssertNotCalled(t, "UpdateDish", mock.Anything, mock.Anything)
			f.setMeals.AssertNotCalled(t, "CreateSetMeal", mock.Anything, mock.Anything)
		})
	}
}

func TestPatchDishHandler_KeepsPrice(t *testing.T) {
	f := newFixture(t)
	f.dishes.On("GetDish", mock.Anything, int64(4)).
		Return(&domain.Dish{ID: 4, Name: "Soup", Price: decimal.NewNullDecimal(decimal.NewFromInt(5)), Type: "side"}, nil).Once()
	f.dishes.On("UpdateDish", mock.Anything, mock.MatchedBy(func(d *domain.Dish) bool {
		return d.Name == "Miso Soup" && d.Price.Valid && d.Price.Decimal.Equal(decimal.NewFromInt(5))
	})).Return(nil).Once()

	w := f.do(http.MethodPatch, "/api/dishes/4", `{"name":"Miso Soup"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListTablesHandler_Paged(t *testing.T) {
	f := newFixture(t)
	f.tables.On("ListTables", mock.Anything, domain.PageRequest{Number: 1, Size: 2}).
		Return([]domain.TableInfo{{ID: 3, Capacity: 4, Location: "Patio"}}, int64(3), nil).Once()

	w := f.do(http.MethodGet, "/api/tables?page=1&size=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"items": [{"id":3,"capacity":4,"location":"Patio"}],
		"page": {"number":1,"size":2,"totalElements":3,"totalPages":2}
	}`, w.Body.String())
}

func TestListHandler_BadPage(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/tables?page=first", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderDetailsHandler_RejectsAmbiguousLine(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "both", body: `{"orderId":1,"dishId":1,"setMealId":2,"quantity":1}`},
		{name: "neither", body: `{"orderId":1,"quantity":1}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)

			w := f.do(http.MethodPost, "/api/orderDetails", testCase.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorBody(t, w), "exactly one of dish or set meal")
		})
	}
}

func TestPatchOrderDetailsHandler_RejectsAmbiguousLine(t *testing.T) {
	stored := func() *domain.OrderDetails {
		return &domain.OrderDetails{
			ID:       11,
			OrderID:  7,
			DishID:   domain.Int64Ptr(1),
			Quantity: 2,
			Dish:     &domain.ItemRef{ID: 1, Name: "Fried Rice", Price: decimal.NewFromInt(80)},
		}
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "adding a set meal to a dish line", body: `{"setMealId":2}`},
		{name: "clearing the only reference", body: `{"dishId":null}`},
		{name: "clearing both references", body: `{"dishId":null,"setMealId":null}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)
			f.orders.On("GetOrderDetails", mock.Anything, int64(11)).Return(stored(), nil).Once()

			w := f.do(http.MethodPatch, "/api/orderDetails/11", testCase.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorBody(t, w), "exactly one of dish or set meal")
			f.orders.AssertNotCalled(t, "UpdateOrderDetails", mock.Anything, mock.Anything)
		})
	}
}

func TestPatchOrderDetailsHandler_SwitchesItem(t *testing.T) {
	f := newFixture(t)
	f.orders.On("GetOrderDetails", mock.Anything, int64(11)).
		Return(&domain.OrderDetails{ID: 11, OrderID: 7, DishID: domain.Int64Ptr(1), Quantity: 2}, nil).Once()
	f.orders.On("UpdateOrderDetails", mock.Anything, mock.MatchedBy(func(line *domain.OrderDetails) bool {
		return line.ID == 11 && line.DishID == nil && *line.SetMealID == 2 && line.Quantity == 2
	})).Return(&domain.OrderDetails{ID: 11, OrderID: 7, DishID: domain.Int64Ptr(1), Quantity: 2}, nil).Once()

	w := f.do(http.MethodPatch, "/api/orderDetails/11", `{"dishId":null,"setMealId":2}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPatchOrderHandler(t *testing.T) {
	stored := func() *domain.OrderInfo {
		return &domain.OrderInfo{
			ID:         7,
			TotalPrice: decimal.NewFromInt(160),
			PayStatus:  domain.PayStatusUnpaid,
			CustomerID: domain.Int64Ptr(3),
			TableID:    domain.Int64Ptr(2),
			OrderDetails: []domain.OrderDetails{
				{ID: 70, OrderID: 7, DishID: domain.Int64Ptr(1), Quantity: 2},
			},
		}
	}

	tests := []struct {
		name  string
		body  string
		check func(*testing.T, *domain.OrderInfo)
	}{
		{
			name: "absent fields are kept and lines untouched",
			body: `{"payStatus":"paid"}`,
			check: func(t *testing.T, o *domain.OrderInfo) {
				assert.Equal(t, domain.PayStatusPaid, o.PayStatus)
				assert.Equal(t, int64(3), *o.CustomerID)
				assert.Nil(t, o.OrderDetails)
			},
		},
		{
			name: "explicit null clears the reference",
			body: `{"customerId":null}`,
			check: func(t *testing.T, o *domain.OrderInfo) {
				assert.Nil(t, o.CustomerID)
				assert.Equal(t, int64(2), *o.TableID)
			},
		},
		{
			name: "empty line list removes all lines",
			body: `{"orderDetails":[]}`,
			check: func(t *testing.T, o *domain.OrderInfo) {
				assert.NotNil(t, o.OrderDetails)
				assert.Empty(t, o.OrderDetails)
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)
			f.orders.On("GetOrder", mock.Anything, int64(7)).Return(stored(), nil).Once()
			f.orders.On("UpdateOrder", mock.Anything, mock.AnythingOfType("*domain.OrderInfo")).
				Run(func(args mock.Arguments) {
					order := args.Get(1).(*domain.OrderInfo)
					assert.Equal(t, int64(7), order.ID)
					testCase.check(t, order)
				}).
				Return(nil, nil).Once()

			w := f.do(http.MethodPatch, "/api/orders/7", testCase.body)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestPutOrderHandler_UnknownTable(t *testing.T) {
	f := newFixture(t)
	f.orders.On("UpdateOrder", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()

	w := f.do(http.MethodPut, "/api/orders/7", `{"tableId":99}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSetMealHandler(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode int
	}{
		{name: "deleted", wantCode: http.StatusNoContent},
		{name: "still ordered", repoErr: domain.ErrConflict, wantCode: http.StatusConflict},
		{name: "missing", repoErr: domain.ErrNotFound, wantCode: http.StatusNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)
			f.setMeals.On("DeleteSetMeal", mock.Anything, int64(3)).Return(testCase.repoErr).Once()

			w := f.do(http.MethodDelete, "/api/sets/3", "")

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestSetDishHandlers(t *testing.T) {
	key := domain.SetDishKey{SetMealID: 3, DishID: 4}

	t.Run("get by composite key", func(t *testing.T) {
		f := newFixture(t)
		f.setMeals.On("GetSetDish", mock.Anything, key).Return(&domain.SetDish{
			ID:       key,
			Quantity: 1,
			SetMeal:  &domain.ItemRef{ID: 3, Name: "Combo A", Price: decimal.NewFromInt(25)},
			Dish:     &domain.ItemRef{ID: 4, Name: "Soup", Price: decimal.NewFromInt(5)},
		}, nil).Once()

		w := f.do(http.MethodGet, "/api/setDishes/3/4", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"id": {"setMealId":3,"dishId":4},
			"quantity": 1,
			"setMeal": {"id":3,"name":"Combo A","price":25},
			"dish": {"id":4,"name":"Soup","price":5}
		}`, w.Body.String())
	})

	t.Run("create from references", func(t *testing.T) {
		f := newFixture(t)
		f.setMeals.On("CreateSetDish", mock.Anything, mock.MatchedBy(func(sd *domain.SetDish) bool {
			return sd.ID == key
		})).Return(nil).Once()

		w := f.do(http.MethodPost, "/api/setDishes", `{"setMeal":{"id":3},"dish":{"id":4},"quantity":2}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("put keeps key from path", func(t *testing.T) {
		f := newFixture(t)
		f.setMeals.On("UpdateSetDish", mock.Anything, &domain.SetDish{ID: key, Quantity: 3}).Return(nil).Once()

		w := f.do(http.MethodPut, "/api/setDishes/3/4", `{"id":{"setMealId":9,"dishId":9},"quantity":3}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		f.setMeals.On("DeleteSetDish", mock.Anything, key).Return(nil).Once()

		w := f.do(http.MethodDelete, "/api/setDishes/3/4", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestOrderSubResources(t *testing.T) {
	t.Run("lines", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("ListOrderLines", mock.Anything, int64(7)).Return(nil, nil).Once()

		w := f.do(http.MethodGet, "/api/orders/7/orderDetails", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("qr code", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("GetOrder", mock.Anything, int64(7)).Return(&domain.OrderInfo{ID: 7}, nil).Once()
		f.qr.On("Generate", int64(7)).Return([]byte{0x89, 'P', 'N', 'G'}, nil).Once()

		w := f.do(http.MethodGet, "/api/orders/7/qrcode", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})
}

func TestSalesTodayHandler(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/sales/today", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dishes":[]`)
}

func TestRouter_CORS(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{name: "configured origin", origin: testOrigin, wantOrigin: testOrigin},
		{name: "other origin", origin: "http://localhost:3000", wantOrigin: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)
			req := httptest.NewRequest(http.MethodOptions, "/api/customers", nil)
			req.Header.Set("Origin", testCase.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			w := httptest.NewRecorder()

			f.router.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if testCase.wantOrigin != "" {
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			}
		})
	}
}

func TestRouter_KeepsIncomingRequestID(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
