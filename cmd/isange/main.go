package main

import (
	"github.com/gilberthappi/isange-pro-be/internal/bootstrap"
	pkg "github.com/gilberthappi/isange-pro-be/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()

	app := fx.New(
		pkg.AppModules,
	)

	app.Run()
}
