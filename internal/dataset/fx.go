package dataset

import (
	"github.com/smallbiznis/menara/internal/dataset/domain"
	"github.com/smallbiznis/menara/internal/dataset/store"
	"go.uber.org/fx"
)

func provideProvider(s *store.Store) domain.Provider {
	return s
}

// Module wires the cached dataset store.
var Module = fx.Module("dataset",
	fx.Provide(
		store.New,
		provideProvider,
	),
	fx.Invoke(store.RegisterHooks),
)
