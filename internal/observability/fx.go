package observability

import (
	"github.com/smallbiznis/menara/internal/observability/metrics"
	"go.uber.org/fx"
)

// Module wires the HTTP metrics instruments.
var Module = fx.Module("observability",
	fx.Provide(metrics.NewHTTPMetrics),
)
