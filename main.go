package main

import (
	"os"

	"github.com/commonshub/commonshub/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
