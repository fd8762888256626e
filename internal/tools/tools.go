//go:build tools

// Package tools pins the module versions of static-analysis binaries used
// for linting, so `go mod tidy` does not drop them. None of these are imported by any buildable package.
package tools

import (
	_ "4d63.com/gochecknoinits"
	_ "github.com/gordonklaus/ineffassign"
	_ "github.com/jgautheron/goconst"
	_ "github.com/mibk/dupl"
	_ "github.com/stripe/safesql"
	_ "github.com/tsenart/deadcode"
	_ "golang.org/x/tools/cmd/goimports"
	_ "honnef.co/go/tools/cmd/staticcheck"
	_ "mvdan.cc/interfacer"
	_ "mvdan.cc/lint"
)
