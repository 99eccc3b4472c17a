package operations

import (
	"github.com/smallbiznis/menara/internal/operations/service"
	"go.uber.org/fx"
)

var Module = fx.Module("operations.service",
	fx.Provide(service.NewService),
)
