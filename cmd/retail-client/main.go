package main

import (
	"log"

	"retail/internal/adapter/cli"
)

func main() {
	if err := cli.NewClientCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
