package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/paket/internal/adapters/config"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
)

// NodeID is the unique identifier for the receipt store Graft node.
const NodeID graft.ID = "adapter.receipt_store"

func init() {
	graft.Register(graft.Node[ports.ReceiptStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ReceiptStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.ReceiptsPath()), nil
		},
	})
}
