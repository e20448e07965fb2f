package mocks

import (
	"context"
	"fmt"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuCache struct {
	mock.Mock
}

func NewMenuCache(t testingT) *MenuCache {
	m := &MenuCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// DishKey and SetMealKey are pure and not recorded as calls.
func (m *MenuCache) DishKey(id int64) string {
	return fmt.Sprintf("menu:dish:%d", id)
}

func (m *MenuCache) SetMealKey(id int64) string {
	return fmt.Sprintf("menu:set:%d", id)
}

func (m *MenuCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MenuCache) Set(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MenuCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type QRCache struct {
	mock.Mock
}

func NewQRCache(t testingT) *QRCache {
	m := &QRCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRCache) GetQRCode(ctx context.Context, orderID int64) ([]byte, error) {
	args := m.Called(ctx, orderID)
	return value[[]byte](args, 0), args.Error(1)
}

func (m *QRCache) SaveQRCode(ctx context.Context, orderID int64, qr []byte) error {
	return m.Called(ctx, orderID, qr).Error(0)
}

func (m *QRCache) DeleteQRCode(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(orderID int64) ([]byte, error) {
	args := m.Called(orderID)
	return value[[]byte](args, 0), args.Error(1)
}

type LinePublisher struct {
	mock.Mock
}

func NewLinePublisher(t testingT) *LinePublisher {
	m := &LinePublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LinePublisher) PublishLineEvents(ctx context.Context, events ...domain.OrderLineEvent) error {
	return m.Called(ctx, events).Error(0)
}

type SalesReader struct {
	mock.Mock
}

func NewSalesReader(t testingT) *SalesReader {
	m := &SalesReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SalesReader) TopSales(ctx context.Context, day time.Time, kind string, limit int64) ([]domain.SalesEntry, error) {
	args := m.Called(ctx, day, kind, limit)
	return value[[]domain.SalesEntry](args, 0), args.Error(1)
}
