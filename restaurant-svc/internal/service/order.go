package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

// lineEvents publishes order line changes, stamped with the time of the
// order each line belongs to. Publishing is best effort: the write has
// already committed, so a failure is only logged.
type lineEvents struct {
	publisher LinePublisher
	log       *logrus.Entry
	now       func() time.Time
}

func (e lineEvents) publish(ctx context.Context, added, removed []domain.OrderDetails) {
	if e.publisher == nil || len(added)+len(removed) == 0 {
		return
	}
	events := make([]domain.OrderLineEvent, 0, len(added)+len(removed))
	for _, line := range removed {
		events = append(events, domain.NewLineEvent(domain.EventLineRemoved, line, e.soldAt(line)))
	}
	for _, line := range added {
		events = append(events, domain.NewLineEvent(domain.EventLineAdded, line, e.soldAt(line)))
	}
	if err := e.publisher.PublishLineEvents(ctx, events...); err != nil {
		e.log.WithError(err).WithField("events", len(events)).Error("failed to publish order line events")
	}
}

func (e lineEvents) soldAt(line domain.OrderDetails) time.Time {
	if line.OrderedAt.IsZero() {
		return e.now()
	}
	return line.OrderedAt
}

// lineChanges pairs lines by id and keeps those whose item, quantity or
// sales day differ. A changed line is reported as removed and added.
func lineChanges(before, after []domain.OrderDetails) (added, removed []domain.OrderDetails) {
	previous := make(map[int64]domain.OrderDetails, len(before))
	for _, line := range before {
		previous[line.ID] = line
	}
	for _, line := range after {
		old, ok := previous[line.ID]
		if ok {
			delete(previous, line.ID)
			if sameSale(old, line) {
				continue
			}
			removed = append(removed, old)
		}
		added = append(added, line)
	}
	for _, line := range before {
		if _, gone := previous[line.ID]; gone {
			removed = append(removed, line)
		}
	}
	return added, removed
}

func sameSale(a, b domain.OrderDetails) bool {
	aKind, aID := a.Item()
	bKind, bID := b.Item()
	return aKind == bKind && aID == bID && a.Quantity == b.Quantity &&
		salesDay(a.OrderedAt) == salesDay(b.OrderedAt)
}

func salesDay(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

type OrderService struct {
	repo   OrderRepository
	qr     QRGenerator
	qrs    QRCache
	events lineEvents
	now    func() time.Time
}

// NewOrderService accepts nil for qrs and publisher.
func NewOrderService(repo OrderRepository, qr QRGenerator, qrs QRCache, publisher LinePublisher, log *logrus.Entry) *OrderService {
	return &OrderService{
		repo:   repo,
		qr:     qr,
		qrs:    qrs,
		events: lineEvents{publisher: publisher, log: log, now: time.Now},
		now:    time.Now,
	}
}

func (s *OrderService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.OrderInfo], error) {
	orders, total, err := s.repo.ListOrders(ctx, page)
	if err != nil {
		return domain.Page[domain.OrderInfo]{}, fmt.Errorf("list orders: %w", err)
	}
	return domain.NewPage(orders, page, total), nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.OrderInfo, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *OrderService) Lines(ctx context.Context, orderID int64) ([]domain.OrderDetails, error) {
	return s.repo.ListOrderLines(ctx, orderID)
}

func (s *OrderService) Create(ctx context.Context, o *domain.OrderInfo) error {
	if err := o.BeforeWrite(s.now()); err != nil {
		return err
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return err
	}
	s.events.publish(ctx, o.OrderDetails, nil)
	return nil
}

// Update replaces the order header. When OrderDetails is non-nil the line
// collection is replaced as well. Only lines whose counted sale changed are
// published; moving the order to another day moves all of its lines.
func (s *OrderService) Update(ctx context.Context, o *domain.OrderInfo) error {
	if err := o.BeforeWrite(s.now()); err != nil {
		return err
	}
	previous, err := s.repo.UpdateOrder(ctx, o)
	if err != nil {
		return err
	}

	current := o.OrderDetails
	if current == nil {
		current = make([]domain.OrderDetails, len(previous))
		copy(current, previous)
	}
	for i := range current {
		current[i].OrderedAt = o.DateTime
	}
	added, removed := lineChanges(previous, current)
	s.events.publish(ctx, added, removed)
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}
	s.events.publish(ctx, nil, removed)
	if s.qrs != nil {
		if err := s.qrs.DeleteQRCode(ctx, id); err != nil {
			s.events.log.WithError(err).WithField("order_id", id).Warn("failed to drop cached qr code")
		}
	}
	return nil
}

// QRCode returns the PNG linking to the order, generating it on a cache miss.
func (s *OrderService) QRCode(ctx context.Context, orderID int64) ([]byte, error) {
	if _, err := s.repo.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	if s.qrs != nil {
		cached, err := s.qrs.GetQRCode(ctx, orderID)
		if err != nil {
			s.events.log.WithError(err).WithField("order_id", orderID).Warn("qr cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	png, err := s.qr.Generate(orderID)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}

	if s.qrs != nil {
		if err := s.qrs.SaveQRCode(ctx, orderID, png); err != nil {
			s.events.log.WithError(err).WithField("order_id", orderID).Warn("qr cache write failed")
		}
	}
	return png, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)

type OrderDetailsService struct {
	repo   OrderRepository
	events lineEvents
}

func NewOrderDetailsService(repo OrderRepository, publisher LinePublisher, log *logrus.Entry) *OrderDetailsService {
	return &OrderDetailsService{
		repo:   repo,
		events: lineEvents{publisher: publisher, log: log, now: time.Now},
	}
}

func (s *OrderDetailsService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.OrderDetails], error) {
	lines, total, err := s.repo.ListOrderDetails(ctx, page)
	if err != nil {
		return domain.Page[domain.OrderDetails]{}, fmt.Errorf("list order details: %w", err)
	}
	return domain.NewPage(lines, page, total), nil
}

func (s *OrderDetailsService) Get(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	return s.repo.GetOrderDetails(ctx, id)
}

func (s *OrderDetailsService) Create(ctx context.Context, line *domain.OrderDetails) error {
	if err := checkLine(line); err != nil {
		return err
	}
	if err := s.repo.CreateOrderDetails(ctx, line); err != nil {
		return err
	}
	s.events.publish(ctx, []domain.OrderDetails{*line}, nil)
	return nil
}

func (s *OrderDetailsService) Update(ctx context.Context, line *domain.OrderDetails) error {
	if err := checkLine(line); err != nil {
		return err
	}
	previous, err := s.repo.UpdateOrderDetails(ctx, line)
	if err != nil {
		return err
	}
	added, removed := lineChanges([]domain.OrderDetails{*previous}, []domain.OrderDetails{*line})
	s.events.publish(ctx, added, removed)
	return nil
}

func (s *OrderDetailsService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteOrderDetails(ctx, id)
	if err != nil {
		return err
	}
	s.events.publish(ctx, nil, []domain.OrderDetails{*removed})
	return nil
}

// checkLine runs the line's pre-write hook ahead of the repository so a
// line that is both invalid and orphaned reports the validation failure.
func checkLine(line *domain.OrderDetails) error {
	if err := line.BeforeWrite(); err != nil {
		return err
	}
	if line.OrderID <= 0 {
		return fmt.Errorf("%w: orderId is required", domain.ErrMalformed)
	}
	return nil
}

var _ OrderDetailsServiceInterface = (*OrderDetailsService)(nil)
