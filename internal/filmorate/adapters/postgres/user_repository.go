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

const userColumns = "user_id, email, login, name, birthday"

// UserRepository реализует repositories.UserRepository поверх PostgreSQL.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create сохраняет нового пользователя и возвращает запись с присвоенным id.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (email, login, name, birthday)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Email, user.Login, user.Name, birthdayArg(user)))
	if err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	log.Debug(ctx, "user created", zap.Int64("id", created.ID))
	return created, nil
}

// Update замещает запись целиком; отсутствующий id - ошибка NotFound.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users
        SET email = $1, login = $2, name = $3, birthday = $4
        WHERE user_id = $5
        RETURNING ` + userColumns

	updated, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Email, user.Login, user.Name, birthdayArg(user), user.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NewNotFoundError(entities.KindUser, user.ID)
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated, nil
}

// FindByID находит пользователя по id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("id", id))
			return nil, entities.NewNotFoundError(entities.KindUser, id)
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindAll возвращает всех пользователей в порядке создания.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id`
	return r.queryUsers(ctx, query)
}

// ExistsByID - guard существования пользователя.
func (r *UserRepository) ExistsByID(ctx context.Context, id int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking user existence: %w", err)
	}
	if !exists {
		return entities.NewNotFoundError(entities.KindUser, id)
	}
	return nil
}

// FindByEmailOrLogin возвращает (nil, nil), когда совпадений нет.
func (r *UserRepository) FindByEmailOrLogin(ctx context.Context, email, login string) (*entities.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1 OR login = $2
        ORDER BY user_id
        LIMIT 1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email or login: %w", err)
	}
	return user, nil
}

// AddFriend вставляет направленное ребро; повторная вставка игнорируется.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO friendship_user_to_user_link (user_id, friend_id)
         VALUES ($1, $2)
         ON CONFLICT DO NOTHING`,
		userID, friendID)
	if err != nil {
		return fmt.Errorf("error adding friend: %w", err)
	}
	return nil
}

// RemoveFriend удаляет ребро; отсутствие ребра не ошибка.
func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM friendship_user_to_user_link
         WHERE user_id = $1 AND friend_id = $2`,
		userID, friendID)
	if err != nil {
		return fmt.Errorf("error removing friend: %w", err)
	}
	return nil
}

// FindFriends возвращает пользователей, на которых указывают ребра (userID -> *).
func (r *UserRepository) FindFriends(ctx context.Context, userID int64) ([]*entities.User, error) {
	query := `
        SELECT u.user_id, u.email, u.login, u.name, u.birthday
        FROM users AS u
        JOIN friendship_user_to_user_link AS f ON u.user_id = f.friend_id
        WHERE f.user_id = $1
        ORDER BY u.user_id`

	return r.queryUsers(ctx, query, userID)
}

// FindCommonFriends пересекает множества друзей двух пользователей по id.
func (r *UserRepository) FindCommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error) {
	query := `
        SELECT u.user_id, u.email, u.login, u.name, u.birthday
        FROM users AS u
        JOIN friendship_user_to_user_link AS f1 ON u.user_id = f1.friend_id AND f1.user_id = $1
        JOIN friendship_user_to_user_link AS f2 ON u.user_id = f2.friend_id AND f2.user_id = $2
        ORDER BY u.user_id`

	return r.queryUsers(ctx, query, userID, otherID)
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error querying users", zap.Error(err))
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, "error scanning user row", zap.Error(err))
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// scanUser читает одну строку users; birthday может быть NULL.
func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var birthday *time.Time

	if err := row.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &birthday); err != nil {
		return nil, err
	}
	if birthday != nil {
		user.Birthday = entities.DateOf(*birthday)
	}
	return &user, nil
}

// birthdayArg отображает нулевую дату на NULL.
func birthdayArg(user *entities.User) interface{} {
	if user.Birthday.IsZero() {
		return nil
	}
	return user.Birthday.Time
}
