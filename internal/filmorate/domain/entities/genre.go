package entities

// Genre - справочная запись жанра; не изменяется через сервис.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
