// Package config loads finscan settings from defaults, a YAML file, the
// environment and a .env file.
//
// Precedence, lowest first: NewConfig defaults, the config file, FINSCAN_*
// environment variables, then command-line flags applied by the caller.
//
// Config files are looked up in this order:
//  1. the path given with --config
//  2. .finscan.yaml in the current directory
//  3. $XDG_CONFIG_HOME/finscan/finscan.yaml
package config
