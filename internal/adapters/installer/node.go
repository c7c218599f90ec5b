package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/paket/internal/adapters/cas"
	"go.trai.ch/paket/internal/adapters/config"
	"go.trai.ch/paket/internal/adapters/logger"
	"go.trai.ch/paket/internal/adapters/shell"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
)

// NodeID is the unique identifier for the receipt-recording installer Graft node.
const NodeID graft.ID = "adapter.installer"

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID, config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Recorder, error) {
			store, err := graft.Dep[ports.ReceiptStore](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			opts := []Option{WithSource(sourceName(cfg))}
			if len(cfg.InstallHook) > 0 {
				opts = append(opts, WithBefore(shell.NewHook(cfg.InstallHook, cfg.HookEnv, "", log)))
			}
			if len(cfg.RemoveHook) > 0 {
				opts = append(opts, WithBeforeRemove(shell.NewHook(cfg.RemoveHook, cfg.HookEnv, "", log)))
			}
			return NewRecorder(store, log, opts...), nil
		},
	})
}

func sourceName(cfg *domain.Config) string {
	if cfg.IndexPath != "" {
		return cfg.IndexPath
	}
	return cfg.DescriptorPath
}
