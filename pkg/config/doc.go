// Package config loads kicadlib configuration: directory layout, project
// table names, the symbol library header, the 3D model variable and the
// library catalog.
package config
