// Package conf contains the version constants and the project configuration
// that is shared across packages.
package conf

import (
	"fmt"
	"time"
)

const (
	// NAME is the name of the application.
	NAME = "typify"
	// VERSION is the version of the typify application.
	VERSION = "typify 0.1.0"
	// VERSIONMAJORN is the major version.
	VERSIONMAJORN = 0
	// VERSIONMINORN is the minor version.
	VERSIONMINORN = 1
	// VERSIONPATCHN is the patch version.
	VERSIONPATCHN = 0
	// CONFIGFILE is the project configuration file looked up from the working directory.
	CONFIGFILE = ".typify.toml"
)

// FullVersion returns the version and copyright.
func FullVersion() string {
	return fmt.Sprintf("%v Copyright (C) %v", VERSION, time.Now().Year())
}

// Copyright is the copyright to be written out in the CLI.
func Copyright() string {
	return fmt.Sprintf("Copyright (C) %v", time.Now().Year())
}
