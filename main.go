package main

import (
	"log"

	"github.com/MarognaLorenzo/MarOS/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
