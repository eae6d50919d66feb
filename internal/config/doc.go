// Package config manages user-level settings stored at ~/.flaskgen/config.yaml.
// It loads, reads, and writes the keys that feed project generation (the
// default project location, whether to add a test harness, whether to
// initialise a git repository, the advertised Python version) and validates
// the file against an embedded JSON schema.
package config
