// Package config loads user configuration for the modelkit CLI.
//
// Configuration is read from $XDG_CONFIG_HOME/modelkit/config.yaml and
// supplies display defaults, like feature names for a known dataset,
// that would otherwise be passed as flags on every invocation.
package config
