package cmd

import (
	"fmt"
	"time"

	"github.com/keypoint/keypointer/internal/output"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/pointer"
	"github.com/keypoint/keypointer/internal/screens"
)

// backend bundles the platform provider, screen topology, and pointer actor
// shared by the one-shot pointer commands.
type backend struct {
	provider *platform.Provider
	topo     *screens.Topology
	actor    *pointer.Actor
}

func newBackend() (*backend, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	topo, err := screens.NewTopology(provider.Screens)
	if err != nil {
		return nil, fmt.Errorf("reading display topology: %w", err)
	}
	actor := pointer.NewActor(pointer.Options{
		OpenDevice:    func() (platform.PointerDevice, error) { return provider.Pointer, nil },
		Clamp:         topo.Clamp,
		QueueSize:     snapshot.QueueSize,
		GlideDuration: time.Duration(snapshot.Movement.GlideMs) * time.Millisecond,
		GlideStep:     time.Duration(snapshot.Movement.GlideStepMs) * time.Millisecond,
	})
	return &backend{provider: provider, topo: topo, actor: actor}, nil
}

func (b *backend) close() {
	b.actor.Close()
}

func (b *backend) positionResult() output.PositionResult {
	p, known := b.actor.Position()
	if !known {
		return output.PositionResult{}
	}
	return output.PositionResult{X: p.X, Y: p.Y, Screen: b.topo.At(p).Ordinal}
}

// checkControl verifies the pointer-control permission before a command
// touches the device.
func (b *backend) checkControl() error {
	if b.provider.Permissions == nil {
		return nil
	}
	return b.provider.Permissions.CheckInputControl()
}
