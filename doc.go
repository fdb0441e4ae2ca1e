// Package biped drives a four-servo walking robot with two hips and two
// feet.
//
// # Installation
//
//	go install github.com/gwillem/biped/cmd/biped@latest
//
// # Usage
//
// Find the servo bus and assign the joints:
//
//	biped setup
//
// Then level the feet and walk:
//
//	biped trim
//	biped gait walk --steps 4
//
// Without hardware, every command accepts --sim.
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/biped: CLI with setup, trim, gait, gesture, play and serve commands
//   - firmware: TinyGo build for an RP2040 with PWM servos
//   - pkg/robot: Channels, trims, interpolation and oscillation
//   - pkg/gait: Gait catalog and fixed-pose programs
//   - pkg/gesture: Expressive gestures with mouth and voice
//   - pkg/choreo: Job queue and YAML routines
//   - pkg/servo: Feetech bus and simulator backends
//   - pkg/web: HTTP and WebSocket remote control
package biped
