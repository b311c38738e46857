package main

import (
	"os"

	"github.com/PolarWolf314/cryptora/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
