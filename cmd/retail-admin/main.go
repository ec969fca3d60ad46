package main

import (
	"log"

	"retail/internal/adapter/cli"
)

func main() {
	if err := cli.NewAdminCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
