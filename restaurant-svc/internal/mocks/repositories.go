package mocks

import (
	"context"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// value returns the i-th return value, or the zero T when it was set to nil.
func value[T any](args mock.Arguments, i int) T {
	var zero T
	if v := args.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

type CustomerRepository struct {
	mock.Mock
}

func NewCustomerRepository(t testingT) *CustomerRepository {
	m := &CustomerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CustomerRepository) ListCustomers(ctx context.Context, page domain.PageRequest) ([]domain.Customer, int64, error) {
	args := m.Called(ctx, page)
	return value[[]domain.Customer](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *CustomerRepository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	return value[*domain.Customer](args, 0), args.Error(1)
}

func (m *CustomerRepository) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepository) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepository) DeleteCustomer(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type TableRepository struct {
	mock.Mock
}

func NewTableRepository(t testingT) *TableRepository {
	m := &TableRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TableRepository) ListTables(ctx context.Context, page domain.PageRequest) ([]domain.TableInfo, int64, error) {
	args := m.Called(ctx, page)
	return value[[]domain.TableInfo](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *TableRepository) GetTable(ctx context.Context, id int64) (*domain.TableInfo, error) {
	args := m.Called(ctx, id)
	return value[*domain.TableInfo](args, 0), args.Error(1)
}

func (m *TableRepository) CreateTable(ctx context.Context, t *domain.TableInfo) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TableRepository) UpdateTable(ctx context.Context, t *domain.TableInfo) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TableRepository) DeleteTable(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type DishRepository struct {
	mock.Mock
}

func NewDishRepository(t testingT) *DishRepository {
	m := &DishRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DishRepository) ListDishes(ctx context.Context, page domain.PageRequest) ([]domain.Dish, int64, error) {
	args := m.Called(ctx, page)
	return value[[]domain.Dish](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *DishRepository) GetDish(ctx context.Context, id int64) (*domain.Dish, error) {
	args := m.Called(ctx, id)
	return value[*domain.Dish](args, 0), args.Error(1)
}

func (m *DishRepository) CreateDish(ctx context.Context, d *domain.Dish) error {
	return m.Called(ctx, d).Error(0)
}

func (m *DishRepository) UpdateDish(ctx context.Context, d *domain.Dish) error {
	return m.Called(ctx, d).Error(0)
}

func (m *DishRepository) DeleteDish(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *DishRepository) SetMealsContainingDish(ctx context.Context, dishID int64) ([]int64, error) {
	args := m.Called(ctx, dishID)
	return value[[]int64](args, 0), args.Error(1)
}

type SetMealRepository struct {
	mock.Mock
}

func NewSetMealRepository(t testingT) *SetMealRepository {
	m := &SetMealRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SetMealRepository) ListSetMeals(ctx context.Context, page domain.PageRequest) ([]domain.SetMeal, int64, error) {
	args := m.Called(ctx, page)
	return value[[]domain.SetMeal](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *SetMealRepository) GetSetMeal(ctx context.Context, id int64) (*domain.SetMeal, error) {
	args := m.Called(ctx, id)
	return value[*domain.SetMeal](args, 0), args.Error(1)
}

func (m *SetMealRepository) ListSetMealDishes(ctx context.Context, setMealID int64) ([]domain.SetDish, error) {
	args := m.Called(ctx, setMealID)
	return value[[]domain.SetDish](args, 0), args.Error(1)
}

func (m *SetMealRepository) CreateSetMeal(ctx context.Context, s *domain.SetMeal) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SetMealRepository) UpdateSetMeal(ctx context.Context, s *domain.SetMeal) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SetMealRepository) DeleteSetMeal(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SetMealRepository) ListSetDishes(ctx context.Context, page domain.PageRequest) ([]domain.SetDish, int64, error) {
	args := m.Called(ctx, page)
	return value[[]domain.SetDish](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *SetMealRepository) GetSetDish(ctx context.Context, key domain.SetDishKey) (*domain.SetDish, error) {
	args := m.Called(ctx, key)
	return value[*domain.SetDish](args, 0), args.Error(1)
}

func (m *SetMealRepository) CreateSetDish(ctx context.Context, sd *domain.SetDish) error {
	return m.Called(ctx, sd).Error(0)
}

func (m *SetMealRepository) UpdateSetDish(ctx context.Context, sd *domain.SetDish) error {
	return m.Called(ctx, sd).Error(0)
}

func (m *SetMealRepository) DeleteSetDish(ctx context.Context, key domain.SetDishKey) error {
	return m.Called(ctx, key).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) ListOrders(ctx context.Context, page domain.PageRequest) ([]domain.OrderInfo, int64, error) {
	args := m.Called(ctx, page)
	return value[[]domain.OrderInfo](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *OrderRepository) GetOrder(ctx context.Context, id int64) (*domain.OrderInfo, error) {
	args := m.Called(ctx, id)
	return value[*domain.OrderInfo](args, 0), args.Error(1)
}

func (m *OrderRepository) ListOrderLines(ctx context.Context, orderID int64) ([]domain.OrderDetails, error) {
	args := m.Called(ctx, orderID)
	return value[[]domain.OrderDetails](args, 0), args.Error(1)
}

func (m *OrderRepository) CreateOrder(ctx context.Context, o *domain.OrderInfo) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepository) UpdateOrder(ctx context.Context, o *domain.OrderInfo) ([]domain.OrderDetails, error) {
	args := m.Called(ctx, o)
	return value[[]domain.OrderDetails](args, 0), args.Error(1)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, id int64) ([]domain.OrderDetails, error) {
	args := m.Called(ctx, id)
	return value[[]domain.OrderDetails](args, 0), args.Error(1)
}

func (m *OrderRepository) ListOrderDetails(ctx context.Context, page domain.PageRequest) ([]domain.OrderDetails, int64, error) {
	args := m.Called(ctx, page)
	return value[[]domain.OrderDetails](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *OrderRepository) GetOrderDetails(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	args := m.Called(ctx, id)
	return value[*domain.OrderDetails](args, 0), args.Error(1)
}

func (m *OrderRepository) CreateOrderDetails(ctx context.Context, line *domain.OrderDetails) error {
	return m.Called(ctx, line).Error(0)
}

func (m *OrderRepository) UpdateOrderDetails(ctx context.Context, line *domain.OrderDetails) (*domain.OrderDetails, error) {
	args := m.Called(ctx, line)
	return value[*domain.OrderDetails](args, 0), args.Error(1)
}

func (m *OrderRepository) DeleteOrderDetails(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	args := m.Called(ctx, id)
	return value[*domain.OrderDetails](args, 0), args.Error(1)
}
