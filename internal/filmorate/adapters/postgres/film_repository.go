package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const filmSelect = `
        SELECT f.film_id, f.name, f.description, f.release_date, f.duration,
               m.mpa_rating_id, m.name AS mpa_name,
               COUNT(l.user_id)::int AS rate
        FROM films AS f
        JOIN mpa_rating AS m ON m.mpa_rating_id = f.mpa_rating_id
        LEFT JOIN likes_films_users_link AS l ON l.film_id = f.film_id`

const filmGroupBy = ` GROUP BY f.film_id, m.mpa_rating_id, m.name`

// FilmRepository реализует repositories.FilmRepository поверх PostgreSQL.
type FilmRepository struct {
	pool PgxPoolInterface
}

// NewFilmRepository создает новый репозиторий фильмов.
func NewFilmRepository(pool PgxPoolInterface) repositories.FilmRepository {
	return &FilmRepository{pool: pool}
}

// Create сохраняет фильм вместе со связями жанров и возвращает запись с id.
func (r *FilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Create"))

	var filmID int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO films (name, description, release_date, duration, mpa_rating_id)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING film_id`,
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, film.Mpa.ID,
	).Scan(&filmID)
	if err != nil {
		log.Error(ctx, "error creating film", zap.Error(err))
		return nil, fmt.Errorf("error creating film: %w", err)
	}

	if err := r.insertGenreLinks(ctx, filmID, film.Genres); err != nil {
		return nil, err
	}

	log.Debug(ctx, "film created", zap.Int64("id", filmID))
	return r.FindByID(ctx, filmID)
}

// Update замещает запись и связи жанров целиком; отсутствующий id - NotFound.
func (r *FilmRepository) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Update"))

	tag, err := r.pool.Exec(ctx,
		`UPDATE films
         SET name = $1, description = $2, release_date = $3, duration = $4, mpa_rating_id = $5
         WHERE film_id = $6`,
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, film.Mpa.ID, film.ID)
	if err != nil {
		log.Error(ctx, "error updating film", zap.Error(err))
		return nil, fmt.Errorf("error updating film: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, entities.NewNotFoundError(entities.KindFilm, film.ID)
	}

	if _, err := r.pool.Exec(ctx,
		`DELETE FROM films_genre_link WHERE film_id = $1`, film.ID); err != nil {
		return nil, fmt.Errorf("error clearing film genres: %w", err)
	}
	if err := r.insertGenreLinks(ctx, film.ID, film.Genres); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, film.ID)
}

// FindByID находит фильм по id вместе с жанрами и числом лайков.
func (r *FilmRepository) FindByID(ctx context.Context, id int64) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "FindByID"))

	query := filmSelect + ` WHERE f.film_id = $1` + filmGroupBy

	film, err := scanFilm(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "film not found", zap.Int64("id", id))
			return nil, entities.NewNotFoundError(entities.KindFilm, id)
		}
		log.Error(ctx, "error finding film by id", zap.Error(err))
		return nil, fmt.Errorf("error querying film by id: %w", err)
	}

	genres, err := r.filmGenres(ctx, id)
	if err != nil {
		return nil, err
	}
	film.Genres = genres

	return film, nil
}

// FindAll возвращает все фильмы с жанрами и числом лайков в порядке создания.
func (r *FilmRepository) FindAll(ctx context.Context) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "FindAll"))

	query := filmSelect + filmGroupBy + ` ORDER BY f.film_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error querying films", zap.Error(err))
		return nil, fmt.Errorf("error querying films: %w", err)
	}
	defer rows.Close()

	films := make([]*entities.Film, 0)
	byID := make(map[int64]*entities.Film)
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			log.Error(ctx, "error scanning film row", zap.Error(err))
			return nil, fmt.Errorf("error scanning film row: %w", err)
		}
		film.Genres = []entities.Genre{}
		films = append(films, film)
		byID[film.ID] = film
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating film rows: %w", err)
	}

	if err := r.attachGenres(ctx, byID); err != nil {
		return nil, err
	}
	return films, nil
}

// ExistsByID - guard существования фильма.
func (r *FilmRepository) ExistsByID(ctx context.Context, id int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM films WHERE film_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking film existence: %w", err)
	}
	if !exists {
		return entities.NewNotFoundError(entities.KindFilm, id)
	}
	return nil
}

// AddLike вставляет ассоциацию; повторная вставка игнорируется.
func (r *FilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO likes_films_users_link (film_id, user_id)
         VALUES ($1, $2)
         ON CONFLICT DO NOTHING`,
		filmID, userID)
	if err != nil {
		return fmt.Errorf("error adding like: %w", err)
	}
	return nil
}

// RemoveLike удаляет ассоциацию; отсутствие не ошибка.
func (r *FilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM likes_films_users_link
         WHERE film_id = $1 AND user_id = $2`,
		filmID, userID)
	if err != nil {
		return fmt.Errorf("error removing like: %w", err)
	}
	return nil
}

func (r *FilmRepository) insertGenreLinks(ctx context.Context, filmID int64, genres []entities.Genre) error {
	for _, genre := range genres {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO films_genre_link (film_id, genre_id)
             VALUES ($1, $2)
             ON CONFLICT DO NOTHING`,
			filmID, genre.ID)
		if err != nil {
			return fmt.Errorf("error linking genre %d to film %d: %w", genre.ID, filmID, err)
		}
	}
	return nil
}

func (r *FilmRepository) filmGenres(ctx context.Context, filmID int64) ([]entities.Genre, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.genre_id, g.name
         FROM genre AS g
         JOIN films_genre_link AS fgl ON fgl.genre_id = g.genre_id
         WHERE fgl.film_id = $1
         ORDER BY g.genre_id`,
		filmID)
	if err != nil {
		return nil, fmt.Errorf("error querying film genres: %w", err)
	}
	defer rows.Close()

	genres := make([]entities.Genre, 0)
	for rows.Next() {
		var g entities.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("error scanning genre row: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genre rows: %w", err)
	}
	return genres, nil
}

// attachGenres загружает связи жанров одним запросом и раскладывает по фильмам.
func (r *FilmRepository) attachGenres(ctx context.Context, films map[int64]*entities.Film) error {
	if len(films) == 0 {
		return nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT fgl.film_id, g.genre_id, g.name
         FROM films_genre_link AS fgl
         JOIN genre AS g ON g.genre_id = fgl.genre_id
         ORDER BY fgl.film_id, g.genre_id`)
	if err != nil {
		return fmt.Errorf("error querying genre links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filmID int64
		var g entities.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return fmt.Errorf("error scanning genre link row: %w", err)
		}
		if film, ok := films[filmID]; ok {
			film.Genres = append(film.Genres, g)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating genre link rows: %w", err)
	}
	return nil
}

// scanFilm читает одну сгруппированную строку films.
func scanFilm(row pgx.Row) (*entities.Film, error) {
	var film entities.Film
	var releaseDate time.Time

	err := row.Scan(
		&film.ID, &film.Name, &film.Description, &releaseDate, &film.Duration,
		&film.Mpa.ID, &film.Mpa.Name, &film.Rate,
	)
	if err != nil {
		return nil, err
	}
	film.ReleaseDate = entities.DateOf(releaseDate)
	return &film, nil
}
