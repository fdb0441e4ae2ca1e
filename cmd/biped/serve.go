package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gwillem/biped/internal/log"
	"github.com/gwillem/biped/pkg/web"
)

type ServeCommand struct {
	Addr string `long:"addr" short:"a" env:"BIPED_ADDR" default:":8080" description:"Listen address"`
}

func (c *ServeCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := startSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(s.ctrl)
	go srv.StreamStates(ctx, s.ctrl.States())

	log.With(log.Fields{"backend": cfg.Backend, "port": cfg.Port}).Info("robot ready")
	return srv.Listen(ctx, c.Addr)
}
