package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-splitter/internal/codec"
	"github.com/thywilljoshua/pdf-splitter/internal/config"
	"github.com/thywilljoshua/pdf-splitter/internal/logx"
)

type globalFlags struct {
	configPath string
	engine     string
	logLevel   string
}

// app is what every command needs once flags and config are resolved.
type app struct {
	cfg   config.Effective
	log   *logrus.Logger
	codec codec.Codec
}

func loadApp(cmd *cobra.Command, g *globalFlags, pages int) (*app, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	cfg, err := config.LoadEffective(cwd, config.CLIArgs{
		ConfigPath:   g.configPath,
		PagesPerFile: pages,
		PagesSet:     flags.Changed("pages"),
		Engine:       g.engine,
		EngineSet:    flags.Changed("engine"),
		LogLevel:     g.logLevel,
		LogLevelSet:  flags.Changed("log-level"),
	})
	if err != nil {
		return nil, err
	}

	c, err := codec.New(cfg.Engine, cfg.Strict)
	if err != nil {
		return nil, err
	}

	log := logx.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.Source != "" {
		log.WithField("config", cfg.Source).Debug("loaded config file")
	}
	log.WithField("engine", c.Name()).Debug("using PDF engine")
	return &app{cfg: cfg, log: log, codec: c}, nil
}
