package entities

// Mpa - справочная запись рейтинга MPA; не изменяется через сервис.
type Mpa struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
