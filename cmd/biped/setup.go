package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/biped/pkg/robot"
	"github.com/gwillem/biped/pkg/servo"
)

// maxScanID bounds the servo IDs probed on each port.
const maxScanID = 10

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Biped Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━"))
	fmt.Println()

	// Step 1: Find the bus
	bus := scanForBus()

	// Step 2: Assign servos to joints
	fmt.Println()
	fmt.Println(subHeaderStyle.Render("━━━ Assigning Joints ━━━"))
	fmt.Println()
	ids := identifyJoints(bus)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Backend = robot.BackendFeetech
	cfg.Port = bus.Port
	cfg.IDs = ids
	if err := cfg.SaveTo(opts.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", opts.Config)
	fmt.Println()
	fmt.Println("Calibrate the trims with: " + headerStyle.Render("biped trim"))
	return nil
}

func scanForBus() servo.Bus {
	fmt.Println("Scanning serial ports for Feetech servos...")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	buses, err := servo.Discover(ctx, robot.NumJoints, maxScanID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
		os.Exit(1)
	}
	if len(buses) == 0 {
		fmt.Printf("No bus with %d servos found.\n", robot.NumJoints)
		fmt.Println("Make sure the robot is connected and powered on.")
		os.Exit(1)
	}
	for _, b := range buses {
		fmt.Printf("  Found servos %v on %s\n", b.IDs(), b.Port)
	}
	if len(buses) == 1 {
		return buses[0]
	}

	var options []huh.Option[int]
	for i, b := range buses {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%d servos)", b.Port, len(b.Servos)), i))
	}
	var choice int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Which port is the biped on?").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return buses[choice]
}

// identifyJoints wiggles every servo on the bus and asks which joint it
// drives, until all four joints are assigned.
func identifyJoints(bus servo.Bus) [robot.NumJoints]int {
	var ids [robot.NumJoints]int
	assigned := make(map[robot.Joint]bool)

	for _, s := range bus.Servos {
		if len(assigned) == robot.NumJoints {
			break
		}
		joint, ok := identifyServo(bus.Port, s, assigned)
		if !ok {
			continue
		}
		ids[joint] = s.ID
		assigned[joint] = true
	}

	if len(assigned) != robot.NumJoints {
		fmt.Println()
		fmt.Println("Not every joint was assigned a servo.")
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Joints assigned:"))
	for _, j := range robot.AllJoints() {
		fmt.Printf("  %-10s servo %d\n", j, ids[j])
	}
	return ids
}

func identifyServo(port string, s feetech.FoundServo, assigned map[robot.Joint]bool) (robot.Joint, bool) {
	fmt.Printf("\n  Wiggling servo %d...\n", s.ID)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := servo.Wiggle(ctx, port, s); err != nil {
		fmt.Printf("  Error wiggling servo %d: %v\n", s.ID, err)
		return 0, false
	}

	var options []huh.Option[int]
	for _, j := range robot.AllJoints() {
		if !assigned[j] {
			options = append(options, huh.NewOption(j.String(), int(j)))
		}
	}
	options = append(options, huh.NewOption("Skip this servo", -1))

	choice := -1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("Which joint is servo %d?", s.ID)).
				Description("The joint that just wiggled").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	if choice < 0 {
		return 0, false
	}
	return robot.Joint(choice), true
}
