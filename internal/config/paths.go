package config

// ProjectConfigPath returns the path to the project-level config file.
// This is always .jsonchangelog.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".jsonchangelog.yml"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON config file.
func LegacyProjectConfigPath() string {
	return ".jsonchangelog.json"
}
