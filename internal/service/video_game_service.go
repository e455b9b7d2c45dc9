package service

import (
	"context"
	"errors"
	"time"

	"videogames-be/internal/cache"
	"videogames-be/internal/entities"
	"videogames-be/internal/models"
	"videogames-be/internal/projection"
	"videogames-be/internal/repository"
	"videogames-be/internal/validation"
)

// VideoGameService defines the interface for video game business logic
type VideoGameService interface {
	List(ctx context.Context, page models.Page) ([]*entities.VideoGame, error)
	Get(ctx context.Context, id int64) (*entities.VideoGame, error)
	Create(ctx context.Context, in projection.Input) (*entities.VideoGame, error)
	Update(ctx context.Context, id int64, in projection.Input) (*entities.VideoGame, error)
	Delete(ctx context.Context, id int64) error
}

type videoGameService struct {
	repo       repository.VideoGameRepository
	categories repository.CategoryRepository
	editors    repository.EditorRepository
	list       *listCache[*entities.VideoGame]
	validator  *validation.Validator
}

// NewVideoGameService creates a new video game service. The category and
// editor repositories resolve the references carried by write payloads.
func NewVideoGameService(
	repo repository.VideoGameRepository,
	categories repository.CategoryRepository,
	editors repository.EditorRepository,
	cacheClient cache.Cache,
	validator *validation.Validator,
	ttl time.Duration,
) VideoGameService {
	return &videoGameService{
		repo:       repo,
		categories: categories,
		editors:    editors,
		list:       newListCache[*entities.VideoGame](cacheClient, "video_games", videoGamesTag, ttl),
		validator:  validator,
	}
}

func (s *videoGameService) List(ctx context.Context, page models.Page) ([]*entities.VideoGame, error) {
	games, err := s.list.get(ctx, page, s.repo.List)
	if err != nil {
		return nil, storageError("list video games", err)
	}
	return games, nil
}

func (s *videoGameService) Get(ctx context.Context, id int64) (*entities.VideoGame, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get video game", err)
	}
	return game, nil
}

func (s *videoGameService) Create(ctx context.Context, in projection.Input) (*entities.VideoGame, error) {
	game := &entities.VideoGame{}
	if err := s.apply(ctx, game, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, game); err != nil {
		return nil, storageError("create video game", err)
	}
	if err := s.list.invalidate(ctx); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *videoGameService) Update(ctx context.Context, id int64, in projection.Input) (*entities.VideoGame, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get video game", err)
	}
	if err := s.apply(ctx, game, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, game); err != nil {
		return nil, storageError("update video game", err)
	}
	if err := s.list.invalidate(ctx); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *videoGameService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageError("delete video game", err)
	}
	return s.list.invalidate(ctx)
}

func (s *videoGameService) apply(ctx context.Context, game *entities.VideoGame, in projection.Input) error {
	m := newMerger(in)
	m.string("title", &game.Title)
	m.date("releaseDate", &game.ReleaseDate)
	m.string("description", &game.Description)

	if id, ok := m.ref("category"); ok {
		game.Category = nil
		if id != 0 {
			category, err := s.categories.FindByID(ctx, id)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				m.fail("category", "exists", "This category does not exist.")
			case err != nil:
				return storageError("get category", err)
			default:
				game.Category = category
			}
		}
	}
	if id, ok := m.ref("editor"); ok {
		game.Editor = nil
		if id != 0 {
			editor, err := s.editors.FindByID(ctx, id)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				m.fail("editor", "exists", "This editor does not exist.")
			case err != nil:
				return storageError("get editor", err)
			default:
				game.Editor = editor
			}
		}
	}

	return m.check(s.validator, game)
}
