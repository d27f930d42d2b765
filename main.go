package main

import (
	"log"

	"github.com/spigell/lead-screener/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
