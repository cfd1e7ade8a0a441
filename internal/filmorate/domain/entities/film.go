package entities

import (
	"sort"
	"time"
)

// MinReleaseDate - дата первого киносеанса; более ранний релиз невозможен.
var MinReleaseDate = NewDate(1895, time.December, 28)

// MaxDescriptionLen - максимальная длина описания фильма.
const MaxDescriptionLen = 200

// Film представляет фильм с рейтингом MPA, набором жанров и числом лайков.
type Film struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate Date    `json:"releaseDate"`
	Duration    int     `json:"duration"`
	Mpa         Mpa     `json:"mpa"`
	Genres      []Genre `json:"genres"`
	Rate        int     `json:"rate"`
}

// Validate проверяет инварианты полей фильма.
func (f *Film) Validate() error {
	if f.Name == "" {
		return NewValidationError("name", "must not be blank")
	}
	if len([]rune(f.Description)) > MaxDescriptionLen {
		return NewValidationError("description", "must not exceed 200 characters")
	}
	if f.ReleaseDate.IsZero() || f.ReleaseDate.Before(MinReleaseDate) {
		return NewValidationError("releaseDate", "must not be earlier than 1895-12-28")
	}
	if f.Duration < 0 {
		return NewValidationError("duration", "must not be negative")
	}
	if f.Mpa.ID <= 0 {
		return NewValidationError("mpa", "must reference an MPA rating")
	}
	return nil
}

// NormalizeGenres удаляет дубликаты жанров и упорядочивает их по id.
func (f *Film) NormalizeGenres() {
	if len(f.Genres) == 0 {
		f.Genres = []Genre{}
		return
	}
	seen := make(map[int64]struct{}, len(f.Genres))
	unique := make([]Genre, 0, len(f.Genres))
	for _, g := range f.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		unique = append(unique, g)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].ID < unique[j].ID })
	f.Genres = unique
}
