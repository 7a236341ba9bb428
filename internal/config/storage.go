package config

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// StorageConfig selects where played games are kept.
type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER" envDefault:"memory"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/league.db"`
}

func (c *StorageConfig) normalize() {
	if c.Driver == "" {
		c.Driver = defaultStorageDriver
	}
	if c.SQLitePath == "" {
		c.SQLitePath = defaultSQLitePath
	}
}

// ArchiveConfig controls where finished seasons are written.
type ArchiveConfig struct {
	Path      string `env:"ARCHIVE_PATH" envDefault:"data/seasons"`
	Retention int    `env:"ARCHIVE_RETENTION" envDefault:"10"`
}

func (c *ArchiveConfig) normalize() {
	if c.Path == "" {
		c.Path = defaultArchivePath
	}
	if c.Retention <= 0 {
		c.Retention = defaultArchiveRetention
	}
}
