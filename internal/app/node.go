package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/paket/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/paket/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/paket/internal/adapters/installer"          //nolint:depguard // Wired in app layer
	"go.trai.ch/paket/internal/adapters/lock"               //nolint:depguard // Wired in app layer
	"go.trai.ch/paket/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/paket/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/paket/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/paket/internal/engine/journal"
	"go.trai.ch/paket/internal/engine/orchestrator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			logger.NodeID,
			orchestrator.NodeID,
			journal.NodeID,
			lock.NodeID,
			cas.NodeID,
			installer.NodeID,
			progrock.NodeID,
			metrics.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one branch per dependency
func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	j, err := graft.Dep[*journal.Journal](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockManager](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ReceiptStore](ctx)
	if err != nil {
		return nil, err
	}

	inst, err := graft.Dep[*installer.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, log, orch, j, locks, store, inst, telemetry, m), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	if cfg.JSONLogs {
		a.SetJSONLogs(true)
	}

	return &Components{
		App:    a,
		Logger: log,
		Config: cfg,
	}, nil
}
