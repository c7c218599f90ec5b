package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/paket/internal/adapters/config"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/paket/internal/adapters/fsresource" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/paket/internal/core/domain"
)

// NodeID is the unique identifier for the journal Graft node.
const NodeID graft.ID = "engine.journal"

func init() {
	graft.Register(graft.Node[*Journal]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (*Journal, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(fsresource.NewFile(cfg.JournalPath())), nil
		},
	})
}
