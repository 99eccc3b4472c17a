package executive

import (
	"github.com/smallbiznis/menara/internal/executive/service"
	"go.uber.org/fx"
)

var Module = fx.Module("executive.service",
	fx.Provide(service.NewService),
)
