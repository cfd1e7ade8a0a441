package memory

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// FilmStorage хранит фильмы и лайки в памяти. Поле Rate вычисляется
// при чтении как мощность множества лайков фильма.
type FilmStorage struct {
	mu     sync.RWMutex
	films  map[int64]*entities.Film
	likes  map[int64]map[int64]struct{}
	nextID int64
}

// NewFilmStorage создает пустое хранилище фильмов.
func NewFilmStorage() repositories.FilmRepository {
	return &FilmStorage{
		films: make(map[int64]*entities.Film),
		likes: make(map[int64]map[int64]struct{}),
	}
}

// Create присваивает новый идентификатор и сохраняет запись.
func (s *FilmStorage) Create(_ context.Context, film *entities.Film) (*entities.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := cloneFilm(film)
	stored.ID = s.nextID
	s.films[stored.ID] = stored

	return s.filmWithRate(stored.ID), nil
}

// Update замещает запись целиком; отсутствующий id - ошибка NotFound.
func (s *FilmStorage) Update(_ context.Context, film *entities.Film) (*entities.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return nil, entities.NewNotFoundError(entities.KindFilm, film.ID)
	}
	s.films[film.ID] = cloneFilm(film)

	return s.filmWithRate(film.ID), nil
}

// FindByID возвращает копию записи или ошибку NotFound.
func (s *FilmStorage) FindByID(_ context.Context, id int64) (*entities.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.films[id]; !ok {
		return nil, entities.NewNotFoundError(entities.KindFilm, id)
	}
	return s.filmWithRate(id), nil
}

// FindAll возвращает все фильмы в порядке создания.
func (s *FilmStorage) FindAll(_ context.Context) ([]*entities.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	films := make([]*entities.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, s.filmWithRate(id))
	}
	return films, nil
}

// ExistsByID - guard существования фильма.
func (s *FilmStorage) ExistsByID(_ context.Context, id int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.films[id]; !ok {
		return entities.NewNotFoundError(entities.KindFilm, id)
	}
	return nil
}

// AddLike вставляет ассоциацию; повторная вставка не меняет множество.
func (s *FilmStorage) AddLike(_ context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.likes[filmID]
	if !ok {
		set = make(map[int64]struct{})
		s.likes[filmID] = set
	}
	set[userID] = struct{}{}
	return nil
}

// RemoveLike удаляет ассоциацию; отсутствие не ошибка.
func (s *FilmStorage) RemoveLike(_ context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if set, ok := s.likes[filmID]; ok {
		delete(set, userID)
	}
	return nil
}

// filmWithRate возвращает копию фильма с заполненным Rate.
// Вызывается под блокировкой.
func (s *FilmStorage) filmWithRate(id int64) *entities.Film {
	film := cloneFilm(s.films[id])
	film.Rate = len(s.likes[id])
	return film
}

func cloneFilm(f *entities.Film) *entities.Film {
	c := *f
	c.Genres = make([]entities.Genre, len(f.Genres))
	copy(c.Genres, f.Genres)
	return &c
}
