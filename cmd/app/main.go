package main

import (
	"github.com/kappucitti/syncvote/internal/app"
	"github.com/kappucitti/syncvote/internal/config"
)

func main() {
	app.Go(config.Load())
}
