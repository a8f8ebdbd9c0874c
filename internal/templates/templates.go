// Package templates holds the starter files written by homeseed init.
package templates

import (
	"embed"
)

//go:embed starter/*
var starterFiles embed.FS

// Starter file names, as written to the config directory.
const (
	ManifestName = "components.yaml"
	LayoutName   = "default_workspace.xml"
)

// GetStarterManifest returns the starter component manifest content
func GetStarterManifest() ([]byte, error) {
	return starterFiles.ReadFile("starter/" + ManifestName)
}

// GetStarterLayout returns the starter layout document content
func GetStarterLayout() ([]byte, error) {
	return starterFiles.ReadFile("starter/" + LayoutName)
}
