package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/gwillem/biped/internal/log"
)

type Options struct {
	Config   string `long:"config" short:"c" default:"biped.json" description:"Configuration file"`
	Sim      bool   `long:"sim" description:"Use the simulated backend regardless of the configuration"`
	LogLevel string `long:"log-level" env:"BIPED_LOG_LEVEL" default:"info" description:"Log level (debug, info, warn, error)"`

	Setup   SetupCommand   `command:"setup" description:"Find the servo bus and assign servos to joints"`
	Trim    TrimCommand    `command:"trim" description:"Calibrate the joint trims interactively"`
	Gait    GaitCommand    `command:"gait" alias:"walk" description:"Play a gait from the catalog"`
	Gesture GestureCommand `command:"gesture" description:"Play a gesture"`
	Home    HomeCommand    `command:"home" description:"Move to the neutral pose and release the joints"`
	List    ListCommand    `command:"list" alias:"ls" description:"List gaits and gestures"`
	Play    PlayCommand    `command:"play" description:"Play a YAML routine with a live joint chart"`
	Serve   ServeCommand   `command:"serve" description:"Serve the HTTP and websocket API"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "biped - motion control for four-servo walking robots"
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		log.Init(opts.LogLevel)
		return cmd.Execute(args)
	}

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
