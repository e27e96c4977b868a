// Package config loads the strictdata.yaml file used by the command line tool.
package config
