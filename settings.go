package pgfrontend

// Settings carries the minimal information needed to dial and authenticate
// against a server: host (blank for the default Unix socket directory, an
// absolute path for a specific Unix socket directory, or a host/IP for
// TCP), port, user, password, and database.
type Settings struct {
	Host     string
	Port     uint16
	User     string
	Password string
	Database string
}

// ConnectOption configures a Settings value, in the teacher's
// functional-options idiom.
type ConnectOption func(*Settings)

// WithHost overrides the host to dial.
func WithHost(host string) ConnectOption {
	return func(s *Settings) { s.Host = host }
}

// WithPort overrides the port to dial.
func WithPort(port uint16) ConnectOption {
	return func(s *Settings) { s.Port = port }
}

// WithCredentials sets the user and password to authenticate with.
func WithCredentials(user, password string) ConnectOption {
	return func(s *Settings) { s.User = user; s.Password = password }
}

// WithDatabase sets the database to connect to.
func WithDatabase(database string) ConnectOption {
	return func(s *Settings) { s.Database = database }
}

// DefaultSettings returns a Settings with the default Unix socket directory
// and PostgreSQL's default port.
func DefaultSettings(opts ...ConnectOption) Settings {
	s := Settings{Port: 5432}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
