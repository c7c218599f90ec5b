package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/paket/internal/adapters/lock"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/paket/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/paket/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/paket/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/paket/internal/engine/conflict"
	"go.trai.ch/paket/internal/engine/journal"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			journal.NodeID,
			lock.NodeID,
			conflict.PolicyNodeID,
			logger.NodeID,
			progrock.NodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			j, err := graft.Dep[*journal.Journal](ctx)
			if err != nil {
				return nil, err
			}

			locks, err := graft.Dep[ports.LockManager](ctx)
			if err != nil {
				return nil, err
			}

			policy, err := graft.Dep[ports.ConflictPolicy](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return New(j, locks, policy, log, tel, m), nil
		},
	})
}
