// Package config provides centralized configuration management for the
// dashboard asset builder. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern AMES_* for namespacing:
//
//	AMES_SERVER_PORT=8080
//	AMES_LOGGING_LEVEL=debug
//	AMES_LOGGING_OUTPUT=both
//	AMES_BUILD_WRITE_WORKBOOK=false
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	chartPath := paths.GetChartPath("saleprice_distribution.png")
//	logPath := paths.GetLogPath("builder.log")
//
// Source artifacts (the executed notebook, the optional profile report and
// the optional mockup image) live next to the executable; generated assets
// live under the web root. Only output directories are ever created.
package config
