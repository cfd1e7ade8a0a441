// Package entities определяет доменные сущности сервиса Filmorate.
package entities

import (
	"strings"
	"time"
)

// User представляет пользователя сервиса.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
}

// Validate проверяет инварианты полей пользователя.
func (u *User) Validate() error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return NewValidationError("email", "must not be blank and must contain the @ symbol")
	}
	if u.Login == "" || strings.ContainsAny(u.Login, " \t") {
		return NewValidationError("login", "must not be blank or contain whitespace")
	}
	if !u.Birthday.IsZero() && u.Birthday.After(DateOf(time.Now())) {
		return NewValidationError("birthday", "must not be in the future")
	}
	return nil
}

// NormalizeName подставляет login вместо пустого отображаемого имени.
// Вызывается до сохранения и до проверки уникальности.
func (u *User) NormalizeName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}
