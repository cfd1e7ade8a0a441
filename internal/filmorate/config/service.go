package config

// ServiceConfig содержит поведенческие настройки предметной области.
type ServiceConfig struct {
	// EnforceUserUniqueness включает отказ при повторном email или login.
	EnforceUserUniqueness bool `yaml:"enforce_user_uniqueness" env:"FILMORATE_ENFORCE_USER_UNIQUENESS" env-default:"false"`
	// PopularDefaultCount - размер списка популярных фильмов без параметра count.
	PopularDefaultCount int `yaml:"popular_default_count" env:"FILMORATE_POPULAR_DEFAULT_COUNT" env-default:"10"`
}
