package service

import (
	"context"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"
)

type CustomerRepository interface {
	ListCustomers(ctx context.Context, page domain.PageRequest) ([]domain.Customer, int64, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) error
	UpdateCustomer(ctx context.Context, c *domain.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
}

type TableRepository interface {
	ListTables(ctx context.Context, page domain.PageRequest) ([]domain.TableInfo, int64, error)
	GetTable(ctx context.Context, id int64) (*domain.TableInfo, error)
	CreateTable(ctx context.Context, t *domain.TableInfo) error
	UpdateTable(ctx context.Context, t *domain.TableInfo) error
	DeleteTable(ctx context.Context, id int64) error
}

type DishRepository interface {
	ListDishes(ctx context.Context, page domain.PageRequest) ([]domain.Dish, int64, error)
	GetDish(ctx context.Context, id int64) (*domain.Dish, error)
	CreateDish(ctx context.Context, d *domain.Dish) error
	UpdateDish(ctx context.Context, d *domain.Dish) error
	DeleteDish(ctx context.Context, id int64) error
	SetMealsContainingDish(ctx context.Context, dishID int64) ([]int64, error)
}

type SetMealRepository interface {
	ListSetMeals(ctx context.Context, page domain.PageRequest) ([]domain.SetMeal, int64, error)
	GetSetMeal(ctx context.Context, id int64) (*domain.SetMeal, error)
	ListSetMealDishes(ctx context.Context, setMealID int64) ([]domain.SetDish, error)
	CreateSetMeal(ctx context.Context, s *domain.SetMeal) error
	UpdateSetMeal(ctx context.Context, s *domain.SetMeal) error
	DeleteSetMeal(ctx context.Context, id int64) error

	ListSetDishes(ctx context.Context, page domain.PageRequest) ([]domain.SetDish, int64, error)
	GetSetDish(ctx context.Context, key domain.SetDishKey) (*domain.SetDish, error)
	CreateSetDish(ctx context.Context, sd *domain.SetDish) error
	UpdateSetDish(ctx context.Context, sd *domain.SetDish) error
	DeleteSetDish(ctx context.Context, key domain.SetDishKey) error
}

type OrderRepository interface {
	ListOrders(ctx context.Context, page domain.PageRequest) ([]domain.OrderInfo, int64, error)
	GetOrder(ctx context.Context, id int64) (*domain.OrderInfo, error)
	ListOrderLines(ctx context.Context, orderID int64) ([]domain.OrderDetails, error)
	CreateOrder(ctx context.Context, o *domain.OrderInfo) error
	UpdateOrder(ctx context.Context, o *domain.OrderInfo) ([]domain.OrderDetails, error)
	DeleteOrder(ctx context.Context, id int64) ([]domain.OrderDetails, error)

	ListOrderDetails(ctx context.Context, page domain.PageRequest) ([]domain.OrderDetails, int64, error)
	GetOrderDetails(ctx context.Context, id int64) (*domain.OrderDetails, error)
	CreateOrderDetails(ctx context.Context, line *domain.OrderDetails) error
	UpdateOrderDetails(ctx context.Context, line *domain.OrderDetails) (*domain.OrderDetails, error)
	DeleteOrderDetails(ctx context.Context, id int64) (*domain.OrderDetails, error)
}

type MenuCache interface {
	DishKey(id int64) string
	SetMealKey(id int64) string
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type QRCache interface {
	GetQRCode(ctx context.Context, orderID int64) ([]byte, error)
	SaveQRCode(ctx context.Context, orderID int64, qr []byte) error
	DeleteQRCode(ctx context.Context, orderID int64) error
}

type SalesReader interface {
	TopSales(ctx context.Context, day time.Time, kind string, limit int64) ([]domain.SalesEntry, error)
}

type LinePublisher interface {
	PublishLineEvents(ctx context.Context, events ...domain.OrderLineEvent) error
}

type CustomerServiceInterface interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Customer], error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
}

type TableServiceInterface interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.TableInfo], error)
	Get(ctx context.Context, id int64) (*domain.TableInfo, error)
	Create(ctx context.Context, t *domain.TableInfo) error
	Update(ctx context.Context, t *domain.TableInfo) error
	Delete(ctx context.Context, id int64) error
}

type DishServiceInterface interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Dish], error)
	Get(ctx context.Context, id int64) (*domain.Dish, error)
	Create(ctx context.Context, d *domain.Dish) error
	Update(ctx context.Context, d *domain.Dish) error
	Delete(ctx context.Context, id int64) error
}

type SetMealServiceInterface interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.SetMeal], error)
	Get(ctx context.Context, id int64) (*domain.SetMeal, error)
	SetDishes(ctx context.Context, setMealID int64) ([]domain.SetDish, error)
	Create(ctx context.Context, s *domain.SetMeal) error
	Update(ctx context.Context, s *domain.SetMeal) error
	Delete(ctx context.Context, id int64) error
}

type SetDishServiceInterface interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.SetDish], error)
	Get(ctx context.Context, key domain.SetDishKey) (*domain.SetDish, error)
	Create(ctx context.Context, sd *domain.SetDish) error
	Update(ctx context.Context, sd *domain.SetDish) error
	Delete(ctx context.Context, key domain.SetDishKey) error
}

type OrderServiceInterface interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.OrderInfo], error)
	Get(ctx context.Context, id int64) (*domain.OrderInfo, error)
	Lines(ctx context.Context, orderID int64) ([]domain.OrderDetails, error)
	Create(ctx context.Context, o *domain.OrderInfo) error
	Update(ctx context.Context, o *domain.OrderInfo) error
	Delete(ctx context.Context, id int64) error
	QRCode(ctx context.Context, orderID int64) ([]byte, error)
}

type OrderDetailsServiceInterface interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.OrderDetails], error)
	Get(ctx context.Context, id int64) (*domain.OrderDetails, error)
	Create(ctx context.Context, line *domain.OrderDetails) error
	Update(ctx context.Context, line *domain.OrderDetails) error
	Delete(ctx context.Context, id int64) error
}

type SalesServiceInterface interface {
	Today(ctx context.Context) (*SalesReport, error)
}
