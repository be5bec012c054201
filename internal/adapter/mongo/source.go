// Package mongo gathers database and collection statistics from a
// MongoDB server.
package mongo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goydb/mongoenum/pkg/model"
	"github.com/goydb/mongoenum/pkg/port"
	"github.com/sirupsen/logrus"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/mgo.v2/bson"
)

// DefaultTimeout bounds connecting and server selection.
const DefaultTimeout = time.Second

var _ port.StatsSource = (*Source)(nil)

// Options configure Dial.
type Options struct {
	Addrs      []string
	Username   string
	Password   string
	AuthSource string
	Timeout    time.Duration
	// SkipFailed records collections whose statistics can not be read
	// as report failures instead of aborting.
	SkipFailed bool
	Logger     logrus.FieldLogger
}

// Source reads the statistics of all databases of one deployment.
type Source struct {
	session    session
	addrs      []string
	skipFailed bool
	logger     logrus.FieldLogger
}

// Dial connects to the server and verifies the connection with a ping.
func Dial(ctx context.Context, opts Options) (*Source, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	if len(opts.Addrs) == 0 {
		opts.Addrs = []string{"localhost"}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	clientOpts := options.Client().
		SetHosts(opts.Addrs).
		SetConnectTimeout(opts.Timeout).
		SetServerSelectionTimeout(opts.Timeout)
	if opts.Username != "" {
		clientOpts.SetAuth(options.Credential{
			AuthSource: opts.AuthSource,
			Username:   opts.Username,
			Password:   opts.Password,
		})
	}

	client, err := driver.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", strings.Join(opts.Addrs, ","), err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		client.Disconnect(context.Background()) // nolint: errcheck
		return nil, fmt.Errorf("could not connect to mongodb server: %w", err)
	}

	return newSource(driverSession{client: client}, opts), nil
}

func newSource(sess session, opts Options) *Source {
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Source{
		session:    sess,
		addrs:      opts.Addrs,
		skipFailed: opts.SkipFailed,
		logger:     logger,
	}
}

func (s *Source) String() string {
	return "<Source addrs=" + strings.Join(s.addrs, ",") + ">"
}

// Report walks all databases and their collections.
func (s *Source) Report(ctx context.Context) (*model.Report, error) {
	var raw bson.M
	err := s.session.Run(ctx, "admin", bson.D{{Name: "listDatabases", Value: 1}}, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	entries, err := decodeDatabases(raw)
	if err != nil {
		return nil, err
	}

	report := new(model.Report)
	for _, entry := range entries {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		db, failures, err := s.database(ctx, entry)
		if err != nil {
			return nil, err
		}
		report.Databases = append(report.Databases, db)
		report.Failures = append(report.Failures, failures...)
	}

	return report, nil
}

func (s *Source) database(ctx context.Context, entry databaseEntry) (model.DatabaseStats, []model.CollectionFailure, error) {
	log := s.logger.WithField("database", entry.Name)
	db := model.DatabaseStats{
		Name:       entry.Name,
		SizeOnDisk: entry.SizeOnDisk,
	}

	names, err := s.session.CollectionNames(ctx, entry.Name)
	if err != nil {
		return db, nil, fmt.Errorf("failed to list collections of %q: %w", entry.Name, err)
	}
	log.WithField("collections", len(names)).Debug("Listed collections")

	var failures []model.CollectionFailure
	for _, name := range names {
		err := ctx.Err()
		if err != nil {
			return db, nil, err
		}

		col, err := s.collection(ctx, entry.Name, name)
		if err != nil {
			if !s.skipFailed {
				return db, nil, err
			}
			log.WithField("collection", name).Warnf("Skipping collection: %v", err)
			failures = append(failures, model.CollectionFailure{
				Database:   entry.Name,
				Collection: name,
				Reason:     err.Error(),
			})
			continue
		}
		log.WithFields(logrus.Fields{
			"collection": name,
			"total":      col.TotalSize(),
		}).Debugf("Fetched %s", col)
		db.Collections = append(db.Collections, col)
	}

	return db, failures, nil
}

func (s *Source) collection(ctx context.Context, dbName, name string) (model.CollectionStats, error) {
	ns := dbName + "." + name

	var raw bson.M
	err := s.session.Run(ctx, dbName, bson.D{{Name: "collstats", Value: name}}, &raw)
	if err != nil {
		return model.CollectionStats{}, fmt.Errorf("collstats %s: %w", ns, err)
	}
	return decodeCollStats(ns, name, raw)
}

// Close disconnects from the server.
func (s *Source) Close() error {
	return s.session.Close(context.Background())
}
