package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// GenreRepository читает справочник жанров из PostgreSQL.
type GenreRepository struct {
	pool PgxPoolInterface
}

// NewGenreRepository создает репозиторий справочника жанров.
func NewGenreRepository(pool PgxPoolInterface) repositories.GenreRepository {
	return &GenreRepository{pool: pool}
}

func (r *GenreRepository) FindAll(ctx context.Context) ([]entities.Genre, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT genre_id, name FROM genre ORDER BY genre_id`)
	if err != nil {
		return nil, fmt.Errorf("error querying genres: %w", err)
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

func (r *GenreRepository) FindByID(ctx context.Context, id int64) (*entities.Genre, error) {
	var g entities.Genre
	err := r.pool.QueryRow(ctx,
		`SELECT genre_id, name FROM genre WHERE genre_id = $1`, id,
	).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NewNotFoundError(entities.KindGenre, id)
		}
		return nil, fmt.Errorf("error querying genre by id: %w", err)
	}
	return &g, nil
}

// MpaRepository читает справочник рейтингов MPA из PostgreSQL.
type MpaRepository struct {
	pool PgxPoolInterface
}

// NewMpaRepository создает репозиторий справочника рейтингов MPA.
func NewMpaRepository(pool PgxPoolInterface) repositories.MpaRepository {
	return &MpaRepository{pool: pool}
}

func (r *MpaRepository) FindAll(ctx context.Context) ([]entities.Mpa, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT mpa_rating_id, name FROM mpa_rating ORDER BY mpa_rating_id`)
	if err != nil {
		return nil, fmt.Errorf("error querying mpa ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]entities.Mpa, 0)
	for rows.Next() {
		var m entities.Mpa
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("error scanning mpa row: %w", err)
		}
		ratings = append(ratings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mpa rows: %w", err)
	}
	return ratings, nil
}

func (r *MpaRepository) FindByID(ctx context.Context, id int64) (*entities.Mpa, error) {
	var m entities.Mpa
	err := r.pool.QueryRow(ctx,
		`SELECT mpa_rating_id, name FROM mpa_rating WHERE mpa_rating_id = $1`, id,
	).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NewNotFoundError(entities.KindMpa, id)
		}
		return nil, fmt.Errorf("error querying mpa rating by id: %w", err)
	}
	return &m, nil
}
