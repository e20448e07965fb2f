package service

import (
	"context"
	"fmt"

	"restaurant-backend/restaurant-svc/internal/domain"
)

type CustomerService struct {
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Customer], error) {
	customers, total, err := s.repo.ListCustomers(ctx, page)
	if err != nil {
		return domain.Page[domain.Customer]{}, fmt.Errorf("list customers: %w", err)
	}
	return domain.NewPage(customers, page, total), nil
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.repo.CreateCustomer(ctx, c)
}

func (s *CustomerService) Update(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateCustomer(ctx, c)
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}

var _ CustomerServiceInterface = (*CustomerService)(nil)

type TableService struct {
	repo TableRepository
}

func NewTableService(repo TableRepository) *TableService {
	return &TableService{repo: repo}
}

func (s *TableService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.TableInfo], error) {
	tables, total, err := s.repo.ListTables(ctx, page)
	if err != nil {
		return domain.Page[domain.TableInfo]{}, fmt.Errorf("list tables: %w", err)
	}
	return domain.NewPage(tables, page, total), nil
}

func (s *TableService) Get(ctx context.Context, id int64) (*domain.TableInfo, error) {
	return s.repo.GetTable(ctx, id)
}

func (s *TableService) Create(ctx context.Context, t *domain.TableInfo) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.repo.CreateTable(ctx, t)
}

func (s *TableService) Update(ctx context.Context, t *domain.TableInfo) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateTable(ctx, t)
}

func (s *TableService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTable(ctx, id)
}

var _ TableServiceInterface = (*TableService)(nil)
