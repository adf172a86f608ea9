package main

import (
	"os"

	"horse.fit/minhon/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
