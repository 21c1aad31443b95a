// cmd/seqkernel/main.go
package main

import (
	"seqkernel/internal/appshell"
	"seqkernel/internal/cli"
)

func main() {
	appshell.Main(cli.Run)
}
