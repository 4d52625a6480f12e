// Package embedded carries the static roster configuration data compiled
// into the binary.
package embedded

import (
	"embed"
)

// FS embeds the roster yaml files at build time: canonical accounts,
// synonym entries, and omitted raw names.
//
//go:embed data/*
var FS embed.FS
