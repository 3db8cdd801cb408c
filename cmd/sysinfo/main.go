package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/comfortablynick/sysinfo/pkg/cli"
)

//go:embed VERSION
var Version string

func main() {
	app := cli.New(strings.TrimSpace(Version))

	if err := app.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "sysinfo: %v\n", err)
		os.Exit(1)
	}
}
