package quote

import (
	"go.uber.org/fx"

	"github.com/attestra/attestra/internal/quote/repository"
	"github.com/attestra/attestra/internal/quote/service"
)

var Module = fx.Module("quote.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
