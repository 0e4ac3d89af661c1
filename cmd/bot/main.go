package main

import (
	"ai-school/internal/app"

	"go.uber.org/fx"
)

func main() {
	fx.New(app.Bot).Run()
}
