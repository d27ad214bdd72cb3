package domain

// Config represents the skein configuration loaded from skein.yaml.
type Config struct {
	Defaults EntryDefaults
	Display  DisplayConfig
	Reports  ReportsConfig
	Paths    PathsConfig
}

// EntryDefaults are the raw field values given to rows created by Add.
type EntryDefaults struct {
	Mass    string
	Length  string
	Strands string
}

type DisplayConfig struct {
	Precision int
}

type ReportsConfig struct {
	Enabled bool
}

type PathsConfig struct {
	ProjectsDir string
	ReportsDir  string
}

// DefaultConfig provides sane defaults if skein.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultEntryDefaults(),
		Display:  DisplayConfig{Precision: 2},
		Reports:  ReportsConfig{Enabled: true},
		Paths: PathsConfig{
			ProjectsDir: "projects",
			ReportsDir:  "reports",
		},
	}
}

// DefaultEntryDefaults matches a fresh row: 100 g, no length yet, one strand.
func DefaultEntryDefaults() EntryDefaults {
	return EntryDefaults{Mass: "100", Length: "", Strands: "1"}
}
