package service

import (
	"context"
	"fmt"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

// menuCache wraps an optional MenuCache. Cache failures are logged and
// never reach the caller.
type menuCache struct {
	cache MenuCache
	log   *logrus.Entry
}

func (m menuCache) load(ctx context.Context, key string, dest any) bool {
	if m.cache == nil {
		return false
	}
	hit, err := m.cache.Get(ctx, key, dest)
	if err != nil {
		m.log.WithError(err).WithField("key", key).Warn("menu cache read failed")
		return false
	}
	return hit
}

func (m menuCache) store(ctx context.Context, key string, value any) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Set(ctx, key, value); err != nil {
		m.log.WithError(err).WithField("key", key).Warn("menu cache write failed")
	}
}

func (m menuCache) evictDishes(ctx context.Context, ids ...int64) {
	if m.cache == nil {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, m.cache.DishKey(id))
	}
	m.evict(ctx, keys)
}

func (m menuCache) evictSetMeals(ctx context.Context, ids ...int64) {
	if m.cache == nil {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, m.cache.SetMealKey(id))
	}
	m.evict(ctx, keys)
}

func (m menuCache) evict(ctx context.Context, keys []string) {
	if err := m.cache.Delete(ctx, keys...); err != nil {
		m.log.WithError(err).WithField("keys", keys).Warn("menu cache eviction failed")
	}
}

type DishService struct {
	repo  DishRepository
	cache menuCache
}

// NewDishService accepts a nil cache, in which case reads go straight to
// the repository.
func NewDishService(repo DishRepository, cache MenuCache, log *logrus.Entry) *DishService {
	return &DishService{repo: repo, cache: menuCache{cache: cache, log: log}}
}

func (s *DishService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Dish], error) {
	dishes, total, err := s.repo.ListDishes(ctx, page)
	if err != nil {
		return domain.Page[domain.Dish]{}, fmt.Errorf("list dishes: %w", err)
	}
	return domain.NewPage(dishes, page, total), nil
}

func (s *DishService) Get(ctx context.Context, id int64) (*domain.Dish, error) {
	var cached domain.Dish
	if s.cache.cache != nil && s.cache.load(ctx, s.cache.cache.DishKey(id), &cached) {
		return &cached, nil
	}

	dish, err := s.repo.GetDish(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache.cache != nil {
		s.cache.store(ctx, s.cache.cache.DishKey(id), dish)
	}
	return dish, nil
}

func (s *DishService) Create(ctx context.Context, d *domain.Dish) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return s.repo.CreateDish(ctx, d)
}

func (s *DishService) Update(ctx context.Context, d *domain.Dish) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateDish(ctx, d); err != nil {
		return err
	}
	s.evict(ctx, d.ID)
	return nil
}

func (s *DishService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteDish(ctx, id); err != nil {
		return err
	}
	s.cache.evictDishes(ctx, id)
	return nil
}

// evict drops the dish and every cached set meal embedding it.
func (s *DishService) evict(ctx context.Context, id int64) {
	if s.cache.cache == nil {
		return
	}
	s.cache.evictDishes(ctx, id)
	setMealIDs, err := s.repo.SetMealsContainingDish(ctx, id)
	if err != nil {
		s.cache.log.WithError(err).WithField("dish_id", id).Warn("failed to resolve set meals for eviction")
		return
	}
	if len(setMealIDs) > 0 {
		s.cache.evictSetMeals(ctx, setMealIDs...)
	}
}

var _ DishServiceInterface = (*DishService)(nil)

type SetMealService struct {
	repo  SetMealRepository
	cache menuCache
}

func NewSetMealService(repo SetMealRepository, cache MenuCache, log *logrus.Entry) *SetMealService {
	return &SetMealService{repo: repo, cache: menuCache{cache: cache, log: log}}
}

func (s *SetMealService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.SetMeal], error) {
	meals, total, err := s.repo.ListSetMeals(ctx, page)
	if err != nil {
		return domain.Page[domain.SetMeal]{}, fmt.Errorf("list set meals: %w", err)
	}
	return domain.NewPage(meals, page, total), nil
}

func (s *SetMealService) Get(ctx context.Context, id int64) (*domain.SetMeal, error) {
	var cached domain.SetMeal
	if s.cache.cache != nil && s.cache.load(ctx, s.cache.cache.SetMealKey(id), &cached) {
		return &cached, nil
	}

	meal, err := s.repo.GetSetMeal(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache.cache != nil {
		s.cache.store(ctx, s.cache.cache.SetMealKey(id), meal)
	}
	return meal, nil
}

func (s *SetMealService) SetDishes(ctx context.Context, setMealID int64) ([]domain.SetDish, error) {
	return s.repo.ListSetMealDishes(ctx, setMealID)
}

func (s *SetMealService) Create(ctx context.Context, meal *domain.SetMeal) error {
	if err := meal.Validate(); err != nil {
		return err
	}
	return s.repo.CreateSetMeal(ctx, meal)
}

func (s *SetMealService) Update(ctx context.Context, meal *domain.SetMeal) error {
	if err := meal.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateSetMeal(ctx, meal); err != nil {
		return err
	}
	s.cache.evictSetMeals(ctx, meal.ID)
	return nil
}

func (s *SetMealService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSetMeal(ctx, id); err != nil {
		return err
	}
	s.cache.evictSetMeals(ctx, id)
	return nil
}

var _ SetMealServiceInterface = (*SetMealService)(nil)

type SetDishService struct {
	repo  SetMealRepository
	cache menuCache
}

func NewSetDishService(repo SetMealRepository, cache MenuCache, log *logrus.Entry) *SetDishService {
	return &SetDishService{repo: repo, cache: menuCache{cache: cache, log: log}}
}

func (s *SetDishService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.SetDish], error) {
	dishes, total, err := s.repo.ListSetDishes(ctx, page)
	if err != nil {
		return domain.Page[domain.SetDish]{}, fmt.Errorf("list set dishes: %w", err)
	}
	return domain.NewPage(dishes, page, total), nil
}

func (s *SetDishService) Get(ctx context.Context, key domain.SetDishKey) (*domain.SetDish, error) {
	return s.repo.GetSetDish(ctx, key)
}

func (s *SetDishService) Create(ctx context.Context, sd *domain.SetDish) error {
	if err := s.repo.CreateSetDish(ctx, sd); err != nil {
		return err
	}
	s.cache.evictSetMeals(ctx, sd.ID.SetMealID)
	return nil
}

func (s *SetDishService) Update(ctx context.Context, sd *domain.SetDish) error {
	if err := s.repo.UpdateSetDish(ctx, sd); err != nil {
		return err
	}
	s.cache.evictSetMeals(ctx, sd.ID.SetMealID)
	return nil
}

func (s *SetDishService) Delete(ctx context.Context, key domain.SetDishKey) error {
	if err := s.repo.DeleteSetDish(ctx, key); err != nil {
		return err
	}
	s.cache.evictSetMeals(ctx, key.SetMealID)
	return nil
}

var _ SetDishServiceInterface = (*SetDishService)(nil)
