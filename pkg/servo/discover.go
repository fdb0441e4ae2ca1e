package servo

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"
)

// Bus is a serial port with the servos found on it.
type Bus struct {
	Port   string
	Servos []feetech.FoundServo
}

// IDs returns the servo IDs on the bus in ascending order.
func (b Bus) IDs() []int {
	ids := make([]int, len(b.Servos))
	for i, s := range b.Servos {
		ids[i] = s.ID
	}
	slices.Sort(ids)
	return ids
}

// Discover scans every serial port for buses with at least minServos servos whose
// IDs fall in [1, maxID].
func Discover(ctx context.Context, minServos, maxID int) ([]Bus, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}

	var found []Bus
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}
		servos, err := scanPort(ctx, port, maxID)
		if err != nil || len(servos) < minServos {
			continue
		}
		found = append(found, Bus{Port: port, Servos: servos})
	}
	return found, nil
}

func scanPort(ctx context.Context, port string, maxID int) ([]feetech.FoundServo, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	defer bus.Close()

	return bus.Scan(ctx, 1, maxID)
}

// Wiggle briefly moves one servo back and forth so the user can tell which
// joint it drives, then releases it.
func Wiggle(ctx context.Context, port string, s feetech.FoundServo) error {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer bus.Close()

	servo := feetech.NewServo(bus, s.ID, s.Model)
	origin, err := servo.Position(ctx)
	if err != nil {
		return err
	}
	if err := servo.Enable(ctx); err != nil {
		return err
	}
	defer servo.Disable(ctx)

	const (
		amount   = 100
		moveTime = 400
	)
	for _, pos := range []int{origin + amount, origin - amount, origin} {
		if err := servo.SetPositionWithTime(ctx, pos, moveTime); err != nil {
			return err
		}
		time.Sleep((moveTime + 100) * time.Millisecond)
	}
	return nil
}
