package main

import (
	"countries/internal/app"
	"os"

	"github.com/sirupsen/logrus"
)

// @title Countries API
// @version 1.0
// @description Country data merged with exchange rates, estimated GDP and a generated summary image.
// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
