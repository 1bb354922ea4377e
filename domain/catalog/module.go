package catalog

import (
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Module provides the list parameter parser shared by every catalog handler.
var Module = fx.Module("catalog",
	fx.Provide(NewPagingParser),
)

// NewPagingParser builds the parser from PAGE_DEFAULT_SIZE and PAGE_MAX_SIZE.
func NewPagingParser(cfg *config.Config) *paging.Parser {
	return paging.NewParser(cfg.Paging.DefaultSize, cfg.Paging.MaxSize)
}
