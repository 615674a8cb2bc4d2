package main

import (
	"os"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
