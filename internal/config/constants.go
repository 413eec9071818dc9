package config

// Default paths and names
const (
	// DefaultDatabasePath is the default path for the local SQLite database
	DefaultDatabasePath = "./copywriting.db"

	// DefaultDataFile is the JSON array read by the import command
	DefaultDataFile = "data.json"

	// DefaultRawFile is the plain-text file read by the convert command
	DefaultRawFile = "data-raw.txt"

	// DefaultTable is the hosted collection holding submissions
	DefaultTable = "copywriting"
)

// Environment variable names of the hosted store credentials. The VITE_ prefixed
// names are shared with the frontend build; the plain names are accepted as aliases.
const (
	EnvSupabaseURL          = "VITE_SUPABASE_URL"
	EnvSupabaseURLAlias     = "SUPABASE_URL"
	EnvSupabaseAnonKey      = "VITE_SUPABASE_ANON_KEY"
	EnvSupabaseAnonKeyAlias = "SUPABASE_ANON_KEY"
)
