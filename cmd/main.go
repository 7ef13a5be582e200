package main

import (
	"github.com/okuafopa/order-core/internal/app"
	"github.com/okuafopa/order-core/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
