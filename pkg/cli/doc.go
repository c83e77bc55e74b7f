// Package cli implements the labnet command-line interface.
//
// # Overview
//
// labnet works on the lab topology document (labnet.yaml) of an
// openwrt-tests checkout. It is used from CI scripts, which need the target
// file of the device under test, and by lab operators regenerating the
// coordinator's places inventory.
//
// # Commands
//
// resolve - Print the target file for a device or instance name:
//
//	labnet resolve [--labnet FILE] [--details] [--format yaml|json|table] <device_name>
//
// Prints targets/<stem>.yaml on stdout and nothing else, so the result can
// be captured with $(labnet resolve ...).
//
// places - Render the coordinator places inventory:
//
//	labnet places [--lab NAME] [--labnet FILE] [--template FILE] [--output FILE]
//	              [--engine jinja|gotemplate] [--structural] [--format text|yaml|json|table]
//
// Writes the rendered file, creating parent directories, then lists the
// generated places.
//
// lint - Check the topology:
//
//	labnet lint [--labnet FILE] [--targets-dir DIR] [--format text|yaml|json|table]
//
// # Global Flags
//
//	--log-level     debug, info, warn, error (env LOG_LEVEL)
//	--metrics-file  write Prometheus metrics in textfile format on exit
//	--help, -h      Show command help
//	--version, -v   Show version information
//
// # Environment
//
//	LABNET_PATH      default for --labnet
//	LABNET_TEMPLATE  default for --template
//	LABNET_LAB       default for --lab
//	LABNET_OUTPUT    default for --output
//
// # Exit Status
//
// 0 on success. 1 on any failure, with a single "Error: [CODE] ..." line on
// stderr.
package cli
