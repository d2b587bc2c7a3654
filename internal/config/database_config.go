package config

type Database struct{}

var _ DatabaseConfig = Database{}

func (Database) GetDatabaseDSN() string {
	return GetEnv("DATABASE_URL", "")
}

func (Database) GetDatabaseMigrate() bool {
	return GetEnv("DB_MIGRATE", "true") == "true"
}
