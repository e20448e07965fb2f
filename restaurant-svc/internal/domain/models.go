package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	PayStatusUnpaid = "unpaid"
	PayStatusPaid   = "paid"

	ItemKindDish = "dish"
	ItemKindSet  = "set"
)

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (c *Customer) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	if err := required("name", c.Name, 100); err != nil {
		return err
	}
	return required("phone", c.Phone, 20)
}

type Dish struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	Type        string              `json:"type"`
}

func (d *Dish) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	d.Type = strings.TrimSpace(d.Type)
	if err := required("name", d.Name, 100); err != nil {
		return err
	}
	if err := required("type", d.Type, 50); err != nil {
		return err
	}
	return requiredPrice(d.Price)
}

func (d *Dish) Ref() *ItemRef {
	return &ItemRef{ID: d.ID, Name: d.Name, Price: d.Price.Decimal}
}

type SetMeal struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	// SetDishes is owned by the set meal. A nil slice on update means
	// "leave the entries alone"; an empty one removes them all.
	SetDishes []SetDish `json:"setDishes"`
}

func (s *SetMeal) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if err := required("name", s.Name, 100); err != nil {
		return err
	}
	return requiredPrice(s.Price)
}

func (s *SetMeal) Ref() *ItemRef {
	return &ItemRef{ID: s.ID, Name: s.Name, Price: s.Price.Decimal}
}

// SetDishKey identifies a set dish by the ids of its two owners.
// It is comparable, so == and map keys use both components.
type SetDishKey struct {
	SetMealID int64 `json:"setMealId"`
	DishID    int64 `json:"dishId"`
}

func (k SetDishKey) String() string {
	return fmt.Sprintf("%d_%d", k.SetMealID, k.DishID)
}

func (k SetDishKey) Complete() bool {
	return k.SetMealID > 0 && k.DishID > 0
}

type SetDish struct {
	ID       SetDishKey `json:"id"`
	Quantity int        `json:"quantity"`
	SetMeal  *ItemRef   `json:"setMeal,omitempty"`
	Dish     *ItemRef   `json:"dish,omitempty"`
}

// NewSetDish links a dish into a set meal. The key is taken from the
// parents' ids.
func NewSetDish(setMeal *SetMeal, dish *Dish, quantity int) SetDish {
	return SetDish{
		ID:       SetDishKey{SetMealID: setMeal.ID, DishID: dish.ID},
		Quantity: quantity,
		SetMeal:  setMeal.Ref(),
		Dish:     dish.Ref(),
	}
}

// BeforeWrite runs before every insert and update of a set dish.
func (sd *SetDish) BeforeWrite() error {
	if sd.Quantity == 0 {
		sd.Quantity = 1
	}
	if sd.Quantity < 0 {
		return fmt.Errorf("%w: set dish quantity must be positive", ErrValidation)
	}
	if !sd.ID.Complete() {
		return fmt.Errorf("%w: set dish needs both setMealId and dishId", ErrValidation)
	}
	if sd.SetMeal != nil && sd.SetMeal.ID != 0 && sd.SetMeal.ID != sd.ID.SetMealID {
		return fmt.Errorf("%w: set dish key does not match its set meal", ErrValidation)
	}
	if sd.Dish != nil && sd.Dish.ID != 0 && sd.Dish.ID != sd.ID.DishID {
		return fmt.Errorf("%w: set dish key does not match its dish", ErrValidation)
	}
	return nil
}

type TableInfo struct {
	ID       int64  `json:"id"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
}

func (t *TableInfo) Validate() error {
	t.Location = strings.TrimSpace(t.Location)
	if t.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrMalformed)
	}
	return required("location", t.Location, 100)
}

type OrderInfo struct {
	ID         int64           `json:"id"`
	DateTime   time.Time       `json:"dateTime"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	PayStatus  string          `json:"payStatus"`
	CustomerID *int64          `json:"customerId"`
	TableID    *int64          `json:"tableId"`
	// OrderDetails is owned by the order, same nil/empty rule as
	// SetMeal.SetDishes.
	OrderDetails []OrderDetails `json:"orderDetails"`
}

// BeforeWrite fills defaults and checks the header fields of an order.
func (o *OrderInfo) BeforeWrite(now time.Time) error {
	if o.DateTime.IsZero() {
		o.DateTime = now
	}
	o.PayStatus = strings.TrimSpace(o.PayStatus)
	if o.PayStatus == "" {
		o.PayStatus = PayStatusUnpaid
	}
	if utf8.RuneCountInString(o.PayStatus) > 20 {
		return fmt.Errorf("%w: payStatus is longer than 20 characters", ErrMalformed)
	}
	return nonNegative("totalPrice", o.TotalPrice)
}

type OrderDetails struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	DishID    *int64          `json:"dishId"`
	SetMealID *int64          `json:"setMealId"`
	Quantity  int             `json:"quantity"`
	SubTotal  decimal.Decimal `json:"subTotal"`
	Dish      *ItemRef        `json:"dish,omitempty"`
	SetMeal   *ItemRef        `json:"setMeal,omitempty"`
	// OrderedAt is the time of the owning order. Sales are counted on
	// that day.
	OrderedAt time.Time       `json:"-"`
}

// BeforeWrite runs before every insert and update of an order line. A line
// must point at exactly one of a dish or a set meal.
func (d *OrderDetails) BeforeWrite() error {
	hasDish := d.DishID != nil
	hasSet := d.SetMealID != nil
	if hasDish == hasSet {
		return fmt.Errorf("%w: order line must reference exactly one of dish or set meal", ErrValidation)
	}
	if d.Quantity == 0 {
		d.Quantity = 1
	}
	if d.Quantity < 0 {
		return fmt.Errorf("%w: order line quantity must be positive", ErrValidation)
	}
	return nonNegative("subTotal", d.SubTotal)
}

// Item reports what the line points at. Only meaningful after BeforeWrite.
func (d *OrderDetails) Item() (kind string, id int64) {
	if d.DishID != nil {
		return ItemKindDish, *d.DishID
	}
	if d.SetMealID != nil {
		return ItemKindSet, *d.SetMealID
	}
	return "", 0
}

// ItemRef is the compact form of a dish or set meal embedded in reads.
type ItemRef struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func required(field, value string, maxLen int) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrMalformed, field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return fmt.Errorf("%w: %s is longer than %d characters", ErrMalformed, field, maxLen)
	}
	return nil
}

func nonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrMalformed, field)
	}
	return nil
}

// requiredPrice rejects a price that was absent or null in the request.
func requiredPrice(price decimal.NullDecimal) error {
	if !price.Valid {
		return fmt.Errorf("%w: price is required", ErrMalformed)
	}
	return nonNegative("price", price.Decimal)
}

func Int64Ptr(v int64) *int64 { return &v }
