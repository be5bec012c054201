package mongo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

// fakeSession serves canned command replies keyed by database and
// command value.
type fakeSession struct {
	databases   bson.M
	collections map[string][]string
	stats       map[string]bson.M
	errs        map[string]error
	closed      bool
}

func (f *fakeSession) Run(ctx context.Context, db string, doc bson.D, out *bson.M) error {
	switch doc[0].Name {
	case "listDatabases":
		if err := f.errs["listDatabases"]; err != nil {
			return err
		}
		*out = f.databases
		return nil
	case "collstats":
		ns := db + "." + doc[0].Value.(string)
		if err := f.errs[ns]; err != nil {
			return err
		}
		reply, ok := f.stats[ns]
		if !ok {
			return errors.New("ns not found")
		}
		*out = reply
		return nil
	}
	return errors.New("no such command")
}

func (f *fakeSession) CollectionNames(ctx context.Context, db string) ([]string, error) {
	return f.collections[db], nil
}

func (f *fakeSession) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		databases: bson.M{
			"databases": []interface{}{
				bson.M{"name": "app", "sizeOnDisk": float64(5_000_000), "empty": false},
				bson.M{"name": "logs", "sizeOnDisk": int64(1_000_000), "empty": true},
			},
			"totalSize": float64(6_000_000),
			"ok":        float64(1),
		},
		collections: map[string][]string{
			"app":  {"users"},
			"logs": {},
		},
		stats: map[string]bson.M{
			"app.users": {
				"ns":             "app.users",
				"count":          1500,
				"size":           int64(2_000_000),
				"avgObjSize":     1333,
				"storageSize":    float64(2_500_000),
				"nindexes":       1,
				"indexSizes":     bson.M{"_id_": 300_000},
				"totalIndexSize": 300_000,
				"ok":             float64(1),
			},
		},
	}
}

func WithTestSource(t *testing.T, sess *fakeSession, opts Options, fn func(ctx context.Context, s *Source)) {
	s := newSource(sess, opts)
	fn(context.Background(), s)
	require.NoError(t, s.Close())
	require.True(t, sess.closed)
}
