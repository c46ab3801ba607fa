package main

import (
	appfx "Ecclesia/internal/fx"

	"go.uber.org/fx"
)

// @title Ecclesia API
// @version 1.0
// @description API de gestão financeira para igrejas: lançamentos, caixa diário, contas a pagar e a receber.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
