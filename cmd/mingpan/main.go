package main

import (
	_ "time/tzdata"

	"github.com/mingpan/mingpan/internal/cli"
)

func main() {
	cli.Execute()
}
