package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// PopularFilmsCacheKey - ключ кэша отсортированного списка популярных фильмов.
const PopularFilmsCacheKey = "films:popular"

// DefaultPopularCount используется, когда параметр count не задан.
const DefaultPopularCount = 10

// FilmUseCase представляет собой бизнес-логику работы с фильмами,
// лайками и рейтингом популярности.
type FilmUseCase struct {
	filmRepo     repositories.FilmRepository
	userRepo     repositories.UserRepository
	genreRepo    repositories.GenreRepository
	mpaRepo      repositories.MpaRepository
	popularCache cache.Cache
	defaultCount int
}

// NewFilmUseCase создает новый экземпляр FilmUseCase. popularCache может
// быть nil, тогда популярные фильмы считаются на каждый запрос.
func NewFilmUseCase(
	filmRepo repositories.FilmRepository,
	userRepo repositories.UserRepository,
	genreRepo repositories.GenreRepository,
	mpaRepo repositories.MpaRepository,
	popularCache cache.Cache,
	defaultCount int,
) *FilmUseCase {
	if defaultCount <= 0 {
		defaultCount = DefaultPopularCount
	}
	return &FilmUseCase{
		filmRepo:     filmRepo,
		userRepo:     userRepo,
		genreRepo:    genreRepo,
		mpaRepo:      mpaRepo,
		popularCache: popularCache,
		defaultCount: defaultCount,
	}
}

// CreateFilm проверяет фильм, разрешает справочные ссылки и сохраняет его.
func (uc *FilmUseCase) CreateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	if err := film.Validate(); err != nil {
		return nil, err
	}
	if err := uc.resolveReferences(ctx, film); err != nil {
		return nil, err
	}

	created, err := uc.filmRepo.Create(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("failed to create film: %w", err)
	}

	uc.invalidatePopular(ctx)
	logger.Log(ctx).Info(ctx, "film created", zap.Int64("film_id", created.ID))
	return created, nil
}

// UpdateFilm полностью замещает запись фильма по id из тела запроса.
func (uc *FilmUseCase) UpdateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	if err := film.Validate(); err != nil {
		return nil, err
	}
	if err := uc.resolveReferences(ctx, film); err != nil {
		return nil, err
	}

	updated, err := uc.filmRepo.Update(ctx, film)
	if err != nil {
		return nil, err
	}

	uc.invalidatePopular(ctx)
	logger.Log(ctx).Info(ctx, "film updated", zap.Int64("film_id", updated.ID))
	return updated, nil
}

// GetFilm возвращает фильм по id.
func (uc *FilmUseCase) GetFilm(ctx context.Context, id int64) (*entities.Film, error) {
	return uc.filmRepo.FindByID(ctx, id)
}

// ListFilms возвращает все фильмы.
func (uc *FilmUseCase) ListFilms(ctx context.Context) ([]*entities.Film, error) {
	films, err := uc.filmRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	return films, nil
}

// AddLike ставит лайк фильму от пользователя; повторный лайк не ошибка.
// Фильм и пользователь должны существовать. Возвращает обновленный фильм.
func (uc *FilmUseCase) AddLike(ctx context.Context, filmID, userID int64) (*entities.Film, error) {
	if err := uc.ensureFilmAndUserExist(ctx, filmID, userID); err != nil {
		return nil, err
	}

	if err := uc.filmRepo.AddLike(ctx, filmID, userID); err != nil {
		return nil, fmt.Errorf("failed to add like: %w", err)
	}

	uc.invalidatePopular(ctx)
	logger.Log(ctx).Info(ctx, "like added",
		zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return uc.filmRepo.FindByID(ctx, filmID)
}

// RemoveLike убирает лайк; отсутствие лайка не ошибка.
// Фильм и пользователь должны существовать. Возвращает обновленный фильм.
func (uc *FilmUseCase) RemoveLike(ctx context.Context, filmID, userID int64) (*entities.Film, error) {
	if err := uc.ensureFilmAndUserExist(ctx, filmID, userID); err != nil {
		return nil, err
	}

	if err := uc.filmRepo.RemoveLike(ctx, filmID, userID); err != nil {
		return nil, fmt.Errorf("failed to remove like: %w", err)
	}

	uc.invalidatePopular(ctx)
	logger.Log(ctx).Info(ctx, "like removed",
		zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return uc.filmRepo.FindByID(ctx, filmID)
}

// PopularFilms возвращает count фильмов по убыванию числа лайков; при
// равенстве побеждает меньший id. Пустая коллекция фильмов - ошибка.
func (uc *FilmUseCase) PopularFilms(ctx context.Context, count int) ([]*entities.Film, error) {
	if count <= 0 {
		count = uc.defaultCount
	}

	if films, ok := uc.cachedPopular(ctx); ok {
		return truncateFilms(films, count), nil
	}

	films, err := uc.filmRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	if len(films) == 0 {
		return nil, entities.ErrEmptyFilmCollection
	}

	sort.SliceStable(films, func(i, j int) bool {
		if films[i].Rate != films[j].Rate {
			return films[i].Rate > films[j].Rate
		}
		return films[i].ID < films[j].ID
	})

	uc.storePopular(ctx, films)
	return truncateFilms(films, count), nil
}

// resolveReferences нормализует жанры и подставляет имена справочных
// записей; неизвестный id справочника - NotFound.
func (uc *FilmUseCase) resolveReferences(ctx context.Context, film *entities.Film) error {
	film.NormalizeGenres()

	mpa, err := uc.mpaRepo.FindByID(ctx, film.Mpa.ID)
	if err != nil {
		return err
	}
	film.Mpa = *mpa

	for i, genre := range film.Genres {
		resolved, err := uc.genreRepo.FindByID(ctx, genre.ID)
		if err != nil {
			return err
		}
		film.Genres[i] = *resolved
	}
	return nil
}

func (uc *FilmUseCase) ensureFilmAndUserExist(ctx context.Context, filmID, userID int64) error {
	if err := uc.filmRepo.ExistsByID(ctx, filmID); err != nil {
		return err
	}
	return uc.userRepo.ExistsByID(ctx, userID)
}

// cachedPopular читает отсортированный список из кэша; любая ошибка кэша
// деградирует до пересчета.
func (uc *FilmUseCase) cachedPopular(ctx context.Context) ([]*entities.Film, bool) {
	if uc.popularCache == nil {
		return nil, false
	}

	raw, err := uc.popularCache.Get(ctx, PopularFilmsCacheKey)
	if err != nil || raw == "" {
		return nil, false
	}

	var films []*entities.Film
	if err := json.Unmarshal([]byte(raw), &films); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to decode cached popular films", zap.Error(err))
		return nil, false
	}
	if len(films) == 0 {
		return nil, false
	}
	return films, true
}

func (uc *FilmUseCase) storePopular(ctx context.Context, films []*entities.Film) {
	if uc.popularCache == nil {
		return
	}

	raw, err := json.Marshal(films)
	if err != nil {
		logger.Log(ctx).Warn(ctx, "failed to encode popular films", zap.Error(err))
		return
	}
	if err := uc.popularCache.Set(ctx, PopularFilmsCacheKey, string(raw), 0); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to cache popular films", zap.Error(err))
	}
}

func (uc *FilmUseCase) invalidatePopular(ctx context.Context) {
	if uc.popularCache == nil {
		return
	}
	if err := uc.popularCache.Delete(ctx, PopularFilmsCacheKey); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate popular films cache", zap.Error(err))
	}
}

func truncateFilms(films []*entities.Film, count int) []*entities.Film {
	if count >= len(films) {
		return films
	}
	return films[:count]
}
