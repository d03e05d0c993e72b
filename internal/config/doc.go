// Package config defines the format-agnostic run profile model and the
// Loader interface implemented by the HCL, YAML and JSON profile readers.
package config
