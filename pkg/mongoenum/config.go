package mongoenum

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/goydb/mongoenum/internal/adapter/mongo"
	"github.com/goydb/mongoenum/internal/adapter/textreport"
	"github.com/goydb/mongoenum/internal/controller"
	"github.com/goydb/mongoenum/pkg/magnitude"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

type Config struct {
	Hosts      []string      `env:"MONGOENUM_HOSTS" envSeparator:"," envDefault:"localhost"`
	Username   string        `env:"MONGOENUM_USERNAME"`
	Password   string        `env:"MONGOENUM_PASSWORD"`
	AuthSource string        `env:"MONGOENUM_AUTH_SOURCE" envDefault:"admin"`
	Timeout    time.Duration `env:"MONGOENUM_TIMEOUT" envDefault:"1s"`
	SkipFailed bool          `env:"MONGOENUM_SKIP_FAILED"`

	Precision  magnitude.Precision       `env:"MONGOENUM_PRECISION" envDefault:"tenths"`
	AvgObjSize textreport.AvgObjSizeMode `env:"MONGOENUM_AVG_OBJ_SIZE" envDefault:"size"`
	Breakdown  bool                      `env:"MONGOENUM_BREAKDOWN" envDefault:"true"`

	LogLevel  string `env:"MONGOENUM_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"MONGOENUM_LOG_FORMAT" envDefault:"text"`
}

// NewConfig reads the configuration from the environment.
func NewConfig() (*Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseFlags overrides the configuration with command line flags.
func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("mongoenum", pflag.ContinueOnError)
	fs.StringSliceVarP(&c.Hosts, "host", "H", c.Hosts, "server address, may be repeated")
	fs.StringVarP(&c.Username, "username", "u", c.Username, "user to authenticate as")
	fs.StringVarP(&c.Password, "password", "p", c.Password, "password of the user")
	fs.StringVar(&c.AuthSource, "auth-source", c.AuthSource, "database holding the user credentials")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "connect timeout")
	fs.BoolVar(&c.SkipFailed, "skip-failed", c.SkipFailed, "list unreadable collections instead of aborting")

	precision := fs.String("precision", string(c.Precision), "size rounding: tenths or tiered")
	avgObjSize := fs.String("avg-obj-size", string(c.AvgObjSize), "format average object size as size or count")
	fs.BoolVar(&c.Breakdown, "breakdown", c.Breakdown, "show storage and index totals per database")

	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")

	err := fs.Parse(args)
	if err != nil {
		return err
	}
	c.Precision = magnitude.Precision(*precision)
	c.AvgObjSize = textreport.AvgObjSizeMode(*avgObjSize)

	return c.Validate()
}

func (c *Config) Validate() error {
	if !c.Precision.Valid() {
		return fmt.Errorf("unknown precision %q", c.Precision)
	}
	if !c.AvgObjSize.Valid() {
		return fmt.Errorf("unknown average object size mode %q", c.AvgObjSize)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	_, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	if len(c.Hosts) == 0 {
		return fmt.Errorf("no host given")
	}
	return nil
}

// PromptPassword asks for the password on the terminal if a user is
// given without one. Nothing happens if in is not a terminal.
func (c *Config) PromptPassword(in *os.File, out io.Writer) error {
	if c.Username == "" || c.Password != "" || !term.IsTerminal(int(in.Fd())) {
		return nil
	}

	fmt.Fprintf(out, "Password for %s: ", c.Username)
	pw, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	c.Password = string(pw)
	return nil
}

// NewLogger returns a logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// Renderer returns the text renderer for the configured options.
func (c *Config) Renderer() textreport.Renderer {
	opts := textreport.DefaultOptions()
	opts.Breakdown = c.Breakdown
	opts.AvgObjSize = c.AvgObjSize
	return textreport.Renderer{
		Formatter: magnitude.Formatter{Precision: c.Precision},
		Options:   opts,
	}
}

// Build connects to the server and wires the inventory.
func (c *Config) Build(ctx context.Context, logger *logrus.Logger) (*Mongoenum, error) {
	src, err := mongo.Dial(ctx, mongo.Options{
		Addrs:      c.Hosts,
		Username:   c.Username,
		Password:   c.Password,
		AuthSource: c.AuthSource,
		Timeout:    c.Timeout,
		SkipFailed: c.SkipFailed,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf("Connected %s", src)

	return &Mongoenum{
		Inventory: controller.Inventory{Source: src, Logger: logger},
		Renderer:  c.Renderer(),
	}, nil
}
