package service

import (
	"context"
	"time"

	"videogames-be/internal/cache"
	"videogames-be/internal/entities"
	"videogames-be/internal/models"
	"videogames-be/internal/projection"
	"videogames-be/internal/repository"
	"videogames-be/internal/validation"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	List(ctx context.Context, page models.Page) ([]*entities.Category, error)
	Get(ctx context.Context, id int64) (*entities.Category, error)
	Create(ctx context.Context, in projection.Input) (*entities.Category, error)
	Update(ctx context.Context, id int64, in projection.Input) (*entities.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	list      *listCache[*entities.Category]
	validator *validation.Validator
}

// NewCategoryService creates a new category service. cacheClient may be nil,
// in which case lists are always read from the repository.
func NewCategoryService(repo repository.CategoryRepository, cacheClient cache.Cache, validator *validation.Validator, ttl time.Duration) CategoryService {
	return &categoryService{
		repo:      repo,
		list:      newListCache[*entities.Category](cacheClient, "categories", categoriesTag, ttl),
		validator: validator,
	}
}

func (s *categoryService) List(ctx context.Context, page models.Page) ([]*entities.Category, error) {
	categories, err := s.list.get(ctx, page, s.repo.List)
	if err != nil {
		return nil, storageError("list categories", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*entities.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get category", err)
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, in projection.Input) (*entities.Category, error) {
	category := &entities.Category{}
	if err := s.apply(category, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, storageError("create category", err)
	}
	if err := s.list.invalidate(ctx); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, in projection.Input) (*entities.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get category", err)
	}
	if err := s.apply(category, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, storageError("update category", err)
	}
	// Cached game pages embed the category.
	if err := s.list.invalidate(ctx, videoGamesTag); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageError("delete category", err)
	}
	return s.list.invalidate(ctx)
}

func (s *categoryService) apply(category *entities.Category, in projection.Input) error {
	m := newMerger(in)
	m.string("name", &category.Name)
	return m.check(s.validator, category)
}
