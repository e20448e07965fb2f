package domain_test

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

func TestOrderDetails_BeforeWrite(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.OrderDetails
		wantErr error
		wantQty int
	}{
		{
			name:    "dish only",
			line:    domain.OrderDetails{OrderID: 1, DishID: domain.Int64Ptr(3), Quantity: 2},
			wantQty: 2,
		},
		{
			name:    "set meal only gets default quantity",
			line:    domain.OrderDetails{OrderID: 1, SetMealID: domain.Int64Ptr(4)},
			wantQty: 1,
		},
		{
			name:    "both references",
			line:    domain.OrderDetails{OrderID: 1, DishID: domain.Int64Ptr(3), SetMealID: domain.Int64Ptr(4)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "neither reference",
			line:    domain.OrderDetails{OrderID: 1, Quantity: 1},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "negative quantity",
			line:    domain.OrderDetails{OrderID: 1, DishID: domain.Int64Ptr(3), Quantity: -1},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "negative subtotal",
			line:    domain.OrderDetails{OrderID: 1, DishID: domain.Int64Ptr(3), SubTotal: decimal.NewFromInt(-5)},
			wantErr: domain.ErrMalformed,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			line := testCase.line
			err := line.BeforeWrite()
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantQty, line.Quantity)
		})
	}
}

func TestOrderDetails_Item(t *testing.T) {
	line := domain.OrderDetails{SetMealID: domain.Int64Ptr(9)}
	kind, id := line.Item()
	assert.Equal(t, domain.ItemKindSet, kind)
	assert.Equal(t, int64(9), id)

	line = domain.OrderDetails{DishID: domain.Int64Ptr(2)}
	kind, id = line.Item()
	assert.Equal(t, domain.ItemKindDish, kind)
	assert.Equal(t, int64(2), id)
}

func TestNewSetDish_DerivesKeyFromParents(t *testing.T) {
	combo := &domain.SetMeal{ID: 7, Name: "Combo A", Price: decimal.NewNullDecimal(decimal.NewFromInt(150))}
	soup := &domain.Dish{ID: 11, Name: "Soup"}

	sd := domain.NewSetDish(combo, soup, 1)

	assert.Equal(t, domain.SetDishKey{SetMealID: 7, DishID: 11}, sd.ID)
	assert.Equal(t, combo.ID, sd.ID.SetMealID)
	assert.Equal(t, soup.ID, sd.ID.DishID)
	assert.Equal(t, "7_11", sd.ID.String())
	require.NoError(t, sd.BeforeWrite())
}

func TestSetDishKey_StructuralEquality(t *testing.T) {
	a := domain.SetDishKey{SetMealID: 1, DishID: 2}
	b := domain.SetDishKey{SetMealID: 1, DishID: 2}
	c := domain.SetDishKey{SetMealID: 2, DishID: 1}

	assert.True(t, a == b)
	assert.False(t, a == c)

	seen := map[domain.SetDishKey]int{a: 1}
	seen[b]++
	seen[c]++
	assert.Len(t, seen, 2)
	assert.Equal(t, 2, seen[a])
}

func TestSetDish_BeforeWrite(t *testing.T) {
	tests := []struct {
		name    string
		sd      domain.SetDish
		wantErr bool
	}{
		{name: "complete key", sd: domain.SetDish{ID: domain.SetDishKey{SetMealID: 1, DishID: 2}}},
		{name: "missing dish", sd: domain.SetDish{ID: domain.SetDishKey{SetMealID: 1}}, wantErr: true},
		{
			name: "mismatched set meal ref",
			sd: domain.SetDish{
				ID:      domain.SetDishKey{SetMealID: 1, DishID: 2},
				SetMeal: &domain.ItemRef{ID: 5},
			},
			wantErr: true,
		},
		{
			name:    "negative quantity",
			sd:      domain.SetDish{ID: domain.SetDishKey{SetMealID: 1, DishID: 2}, Quantity: -3},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			sd := testCase.sd
			err := sd.BeforeWrite()
			if testCase.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, sd.Quantity)
		})
	}
}

func TestOrderInfo_BeforeWriteDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	order := domain.OrderInfo{}

	require.NoError(t, order.BeforeWrite(now))
	assert.Equal(t, now, order.DateTime)
	assert.Equal(t, domain.PayStatusUnpaid, order.PayStatus)
	assert.True(t, order.TotalPrice.IsZero())
}

func TestEntityValidation(t *testing.T) {
	price := func(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

	tests := []struct {
		name    string
		entity  interface{ Validate() error }
		wantErr error
	}{
		{name: "customer without phone", entity: &domain.Customer{Name: "Amy"}, wantErr: domain.ErrMalformed},
		{name: "customer", entity: &domain.Customer{Name: "Amy", Phone: "0912"}},
		{name: "dish without type", entity: &domain.Dish{Name: "Rice", Price: price(10)}, wantErr: domain.ErrMalformed},
		{name: "dish", entity: &domain.Dish{Name: "Rice", Type: "main", Price: price(10)}},
		{name: "free dish", entity: &domain.Dish{Name: "Water", Type: "drink", Price: price(0)}},
		{name: "dish without price", entity: &domain.Dish{Name: "Rice", Type: "main"}, wantErr: domain.ErrMalformed},
		{name: "dish with negative price", entity: &domain.Dish{Name: "Rice", Type: "main", Price: price(-1)}, wantErr: domain.ErrMalformed},
		{name: "empty set meal", entity: &domain.SetMeal{}, wantErr: domain.ErrMalformed},
		{name: "set meal without price", entity: &domain.SetMeal{Name: "Combo A"}, wantErr: domain.ErrMalformed},
		{name: "set meal", entity: &domain.SetMeal{Name: "Combo A", Price: price(25)}},
		{name: "table without capacity", entity: &domain.TableInfo{Location: "window"}, wantErr: domain.ErrMalformed},
		{name: "table", entity: &domain.TableInfo{Capacity: 4, Location: "window"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.entity.Validate()
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDish_PriceJSON(t *testing.T) {
	var dish domain.Dish
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Soup","type":"main"}`), &dish))
	assert.False(t, dish.Price.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"price":12.5}`), &dish))
	assert.True(t, dish.Price.Valid)
	assert.Equal(t, "12.5", dish.Price.Decimal.String())

	// absent keeps the current value, null clears it
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Broth"}`), &dish))
	assert.True(t, dish.Price.Valid)
	require.NoError(t, json.Unmarshal([]byte(`{"price":null}`), &dish))
	assert.False(t, dish.Price.Valid)
}

func TestOrderDetails_JSONNullableRefs(t *testing.T) {
	line := domain.OrderDetails{ID: 1, OrderID: 2, DishID: domain.Int64Ptr(3), Quantity: 2, SubTotal: decimal.NewFromInt(160)}
	body, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"orderId":2,"dishId":3,"setMealId":null,"quantity":2,"subTotal":160}`, string(body))

	// an explicit null clears a reference when decoding over an existing value
	require.NoError(t, json.Unmarshal([]byte(`{"dishId":null,"setMealId":5}`), &line))
	assert.Nil(t, line.DishID)
	require.NotNil(t, line.SetMealID)
	assert.Equal(t, int64(5), *line.SetMealID)
	assert.Equal(t, 2, line.Quantity)
}

func TestNewPage(t *testing.T) {
	req := domain.NewPageRequest(-1, 500)
	assert.Equal(t, 0, req.Number)
	assert.Equal(t, domain.MaxPageSize, req.Size)

	page := domain.NewPage[domain.Customer](nil, domain.NewPageRequest(1, 2), 5)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 3, page.Page.TotalPages)
	assert.Equal(t, 2, domain.NewPageRequest(1, 2).Offset())
}
