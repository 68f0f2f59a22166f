package main

import (
	"github.com/parniayzdin/Fuelio/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
