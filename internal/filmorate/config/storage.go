package config

// Режимы хранилища.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// StorageConfig выбирает реализацию хранилища.
type StorageConfig struct {
	Mode string `yaml:"mode" env:"FILMORATE_STORAGE_MODE" env-default:"postgres"`
}

// IsMemory сообщает, выбрано ли хранилище в памяти.
func (c *StorageConfig) IsMemory() bool {
	return c.Mode == StorageMemory
}
