package conflict

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/paket/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
)

// PolicyNodeID is the unique identifier for the configured conflict policy Graft node.
const PolicyNodeID graft.ID = "engine.conflict_policy"

func init() {
	graft.Register(graft.Node[ports.ConflictPolicy]{
		ID:        PolicyNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ConflictPolicy, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewPolicy(cfg.ConflictPolicy)
		},
	})
}
