package biz

import (
	"go.uber.org/fx"

	"github.com/estately/estately/internal/authz"
)

var Module = fx.Module("biz",
	fx.Provide(authz.NewPolicy),
	fx.Provide(NewAuthService),
	fx.Provide(NewUserService),
	fx.Provide(NewApplicationService),
	fx.Provide(NewPropertyService),
	fx.Provide(NewFavoriteService),
	fx.Provide(NewInquiryService),
)
