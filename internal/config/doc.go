// Package config provides configuration structures and utilities for seoreport.
// It defines the page geometry, fonts, labels and output preferences used
// when rendering reports, and loads them from the configuration file.
package config
