package servo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"github.com/sirupsen/logrus"

	"github.com/gwillem/biped/internal/log"
	"github.com/gwillem/biped/pkg/robot"
)

const (
	BaudRate = 1_000_000
	// busTimeout bounds a single bus transaction. It is well below a Tick so
	// a dead servo cannot stall interpolation for long.
	busTimeout = 5 * time.Millisecond
)

// Feetech drives four STS servos on one serial bus. Writes from the motion
// engine are batched and sent as a single sync write on Flush.
type Feetech struct {
	bus    *feetech.Bus
	group  *feetech.ServoGroup
	ids    [robot.NumJoints]int
	joints [robot.NumJoints]*feetechJoint
	batch  batch
	log    *logrus.Entry
}

// OpenFeetech opens the bus on port. ids maps joints to servo IDs.
func OpenFeetech(port string, ids [robot.NumJoints]int) (*Feetech, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  busTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	f := &Feetech{
		bus:   bus,
		group: feetech.NewServoGroupByIDs(bus, ids[:]...),
		ids:   ids,
		log:   log.With(log.Fields{"component": "feetech", "port": port}),
	}
	for j, id := range ids {
		f.joints[j] = &feetechJoint{
			f:     f,
			id:    id,
			group: feetech.NewServoGroupByIDs(bus, id),
		}
	}
	return f, nil
}

// Actuators returns one actuator per joint.
func (f *Feetech) Actuators() [robot.NumJoints]robot.Actuator {
	var a [robot.NumJoints]robot.Actuator
	for j := range f.joints {
		a[j] = f.joints[j]
	}
	return a
}

// Flush sends all positions written since the last flush in one sync write.
func (f *Feetech) Flush() error {
	positions := f.batch.take()
	if len(positions) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), busTimeout)
	defer cancel()

	if err := f.group.SetPositions(ctx, positions); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}
	return nil
}

// ReadPose reads the present position of every joint, in degrees.
func (f *Feetech) ReadPose(ctx context.Context) (robot.Pose, error) {
	raw, err := f.group.Positions(ctx)
	if err != nil {
		return robot.Pose{}, fmt.Errorf("read positions: %w", err)
	}

	var p robot.Pose
	for j, id := range f.ids {
		pos, ok := raw[id]
		if !ok {
			return robot.Pose{}, fmt.Errorf("no position for servo %d", id)
		}
		p[j] = ToDegrees(pos)
	}
	return p, nil
}

// Close releases torque and closes the bus.
func (f *Feetech) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := f.group.DisableAll(ctx); err != nil {
		f.log.WithError(err).Warn("disable torque")
	}
	return f.bus.Close()
}

// feetechJoint is the Actuator for one servo on a shared bus.
type feetechJoint struct {
	f     *Feetech
	id    int
	group *feetech.ServoGroup
}

func (j *feetechJoint) Attach() error {
	ctx, cancel := context.WithTimeout(context.Background(), busTimeout)
	defer cancel()
	return j.group.EnableAll(ctx)
}

func (j *feetechJoint) Detach() error {
	ctx, cancel := context.WithTimeout(context.Background(), busTimeout)
	defer cancel()
	return j.group.DisableAll(ctx)
}

func (j *feetechJoint) Write(angle int) error {
	j.f.batch.put(j.id, ToRaw(angle))
	return nil
}

// batch collects raw positions per servo ID until taken. A later write to
// the same ID replaces the earlier one.
type batch struct {
	mu      sync.Mutex
	pending feetech.PositionMap
}

func (b *batch) put(id, raw int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		b.pending = make(feetech.PositionMap)
	}
	b.pending[id] = raw
}

func (b *batch) take() feetech.PositionMap {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.pending
	b.pending = nil
	return p
}
