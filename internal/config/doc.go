// Package config assembles the notka client configuration from environment
// variables, command-line flags, and an optional JSON file.
//
// Sources are merged by a builder in precedence order (env over flags over
// JSON over defaults) using mergo, then validated. See [GetConfig].
package config
