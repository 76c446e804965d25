package db

// Config is the connection and pool configuration for the shared gorm
// handle. ConnMaxLifetime and ConnMaxIdleTime are in seconds.
type Config struct {
	Type            string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}
