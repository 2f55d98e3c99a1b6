package config

const (
	// EngineMySQL selects the gorm MySQL driver.
	EngineMySQL = "mysql"
	// EngineSQLite selects the embedded SQLite driver.
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
// With EngineSQLite only Name is used (path of the database file).
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string
}
