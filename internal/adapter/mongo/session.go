package mongo

import (
	"context"

	driverbson "go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/mgo.v2/bson"
)

// session is the part of a server connection the source needs.
type session interface {
	// Run executes cmd against the named database and unmarshals the
	// reply into result.
	Run(ctx context.Context, db string, cmd bson.D, result *bson.M) error
	CollectionNames(ctx context.Context, db string) ([]string, error)
	Close(ctx context.Context) error
}

// driverSession speaks OP_MSG through the official driver. Replies are
// read as raw BSON and unmarshalled into plain bson.M maps.
type driverSession struct {
	client *driver.Client
}

func (d driverSession) Run(ctx context.Context, db string, cmd bson.D, result *bson.M) error {
	doc := make(driverbson.D, 0, len(cmd))
	for _, e := range cmd {
		doc = append(doc, driverbson.E{Key: e.Name, Value: e.Value})
	}

	raw, err := d.client.Database(db).RunCommand(ctx, doc).Raw()
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, result)
}

func (d driverSession) CollectionNames(ctx context.Context, db string) ([]string, error) {
	return d.client.Database(db).ListCollectionNames(ctx, driverbson.D{})
}

func (d driverSession) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
