package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goydb/mongoenum/pkg/mongoenum"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := mongoenum.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	err = cfg.ParseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	logger := cfg.NewLogger(os.Stderr)

	err = cfg.PromptPassword(os.Stdin, os.Stderr)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	me, err := cfg.Build(ctx, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer me.Close()

	err = me.Run(ctx, os.Stdout)
	if err != nil {
		me.Close()
		logger.Fatal(err)
	}
}
