package main

import (
	"log"

	"github.com/FACorreiaa/go-trip-planner/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
