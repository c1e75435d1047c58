package api

import "go.uber.org/fx"

var Module = fx.Module("api",
	fx.Provide(NewSystemHandlers),
	fx.Provide(NewAuthHandlers),
	fx.Provide(NewUserHandlers),
	fx.Provide(NewApplicationHandlers),
	fx.Provide(NewPropertyHandlers),
	fx.Provide(NewFavoriteHandlers),
	fx.Provide(NewInquiryHandlers),
)
