// Package config defines the application configuration structures and
// loads them from the environment.
package config
