package main

import (
	"os"

	"github.com/nnnkkk7/go-relaxcsv/cmd/relaxcsv/app"
)

func main() {
	if err := app.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
