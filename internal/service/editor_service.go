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

// EditorService defines the interface for editor business logic
type EditorService interface {
	List(ctx context.Context, page models.Page) ([]*entities.Editor, error)
	Get(ctx context.Context, id int64) (*entities.Editor, error)
	Create(ctx context.Context, in projection.Input) (*entities.Editor, error)
	Update(ctx context.Context, id int64, in projection.Input) (*entities.Editor, error)
	Delete(ctx context.Context, id int64) error
}

type editorService struct {
	repo      repository.EditorRepository
	list      *listCache[*entities.Editor]
	validator *validation.Validator
}

func NewEditorService(repo repository.EditorRepository, cacheClient cache.Cache, validator *validation.Validator, ttl time.Duration) EditorService {
	return &editorService{
		repo:      repo,
		list:      newListCache[*entities.Editor](cacheClient, "editors", editorsTag, ttl),
		validator: validator,
	}
}

func (s *editorService) List(ctx context.Context, page models.Page) ([]*entities.Editor, error) {
	editors, err := s.list.get(ctx, page, s.repo.List)
	if err != nil {
		return nil, storageError("list editors", err)
	}
	return editors, nil
}

func (s *editorService) Get(ctx context.Context, id int64) (*entities.Editor, error) {
	editor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get editor", err)
	}
	return editor, nil
}

func (s *editorService) Create(ctx context.Context, in projection.Input) (*entities.Editor, error) {
	editor := &entities.Editor{}
	if err := s.apply(editor, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, editor); err != nil {
		return nil, storageError("create editor", err)
	}
	if err := s.list.invalidate(ctx); err != nil {
		return nil, err
	}
	return editor, nil
}

func (s *editorService) Update(ctx context.Context, id int64, in projection.Input) (*entities.Editor, error) {
	editor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get editor", err)
	}
	if err := s.apply(editor, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, editor); err != nil {
		return nil, storageError("update editor", err)
	}
	// Cached game pages embed the editor.
	if err := s.list.invalidate(ctx, videoGamesTag); err != nil {
		return nil, err
	}
	return editor, nil
}

func (s *editorService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageError("delete editor", err)
	}
	return s.list.invalidate(ctx)
}

func (s *editorService) apply(editor *entities.Editor, in projection.Input) error {
	m := newMerger(in)
	m.string("name", &editor.Name)
	m.string("country", &editor.Country)
	return m.check(s.validator, editor)
}
