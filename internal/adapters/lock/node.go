package lock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/paket/internal/adapters/config"
	"go.trai.ch/paket/internal/adapters/logger"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
)

// NodeID is the unique identifier for the lock manager Graft node.
const NodeID graft.ID = "adapter.lock_manager"

func init() {
	graft.Register(graft.Node[ports.LockManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.LockManager, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(cfg.LocksPath(), cfg.LockWait, log), nil
		},
	})
}
