// Package logging provides structured logging utilities for labnet commands.
//
// # Overview
//
// The package wraps log/slog with labnet defaults: JSON records on stderr,
// module and version attributes on every record, and source locations when
// running at debug level. Stdout is left to command output, so the resolved
// target path printed by `labnet resolve` can be captured by shell scripts
// while diagnostics go elsewhere.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-lookup detail, with source location
//   - INFO: default
//   - WARN/WARNING: suspicious topology content (duplicate aliases and the like)
//   - ERROR: failures
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("labnet", version)
//	    slog.Info("places rendered",
//	        "lab", "labgrid-fcefyn",
//	        "template", "places.yaml.j2",
//	        "places", 12,
//	    )
//	}
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given:
//
//	LOG_LEVEL=debug labnet resolve belkin_rt3200_1
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "places rendered",
//	    "module": "labnet",
//	    "version": "v1.0.0",
//	    "lab": "labgrid-fcefyn"
//	}
//
// # Integration
//
// pkg/cli installs the default logger before any command runs. Library
// packages (topology, resolver, render, report, lint) log through slog's
// default logger only.
package logging
