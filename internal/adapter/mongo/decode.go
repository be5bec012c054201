package mongo

import (
	"fmt"

	"github.com/goydb/mongoenum/pkg/model"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/mgo.v2/bson"
)

// fields of the collstats reply that must be present
var requiredCollStats = []string{"count", "size", "storageSize", "indexSizes", "totalIndexSize"}

type databaseEntry struct {
	Name       string `mapstructure:"name"`
	SizeOnDisk int64  `mapstructure:"sizeOnDisk"`
}

type listDatabasesReply struct {
	Databases []databaseEntry `mapstructure:"databases"`
}

type collStatsReply struct {
	Count          int64            `mapstructure:"count"`
	AvgObjSize     float64          `mapstructure:"avgObjSize"`
	Size           int64            `mapstructure:"size"`
	StorageSize    int64            `mapstructure:"storageSize"`
	IndexSizes     map[string]int64 `mapstructure:"indexSizes"`
	TotalIndexSize int64            `mapstructure:"totalIndexSize"`
}

// decodeDatabases reads the databases of a listDatabases reply.
func decodeDatabases(raw bson.M) ([]databaseEntry, error) {
	if _, ok := raw["databases"]; !ok {
		return nil, model.MissingField("listDatabases", "databases")
	}
	for i, v := range asSlice(raw["databases"]) {
		m, ok := asMap(v)
		if !ok {
			continue
		}
		err := requireFields(m, fmt.Sprintf("listDatabases.databases[%d]", i), "name", "sizeOnDisk")
		if err != nil {
			return nil, err
		}
	}

	var reply listDatabasesReply
	err := decode(raw, &reply)
	if err != nil {
		return nil, &model.IntegrityError{Path: "listDatabases", Reason: err.Error()}
	}
	return reply.Databases, nil
}

// decodeCollStats converts a collstats reply. avgObjSize is the only
// field that may be missing, it is reported as 0 for empty collections.
func decodeCollStats(ns, name string, raw bson.M) (model.CollectionStats, error) {
	err := requireFields(raw, ns, requiredCollStats...)
	if err != nil {
		return model.CollectionStats{}, err
	}
	if sizes, ok := asMap(raw["indexSizes"]); ok {
		for idx, v := range sizes {
			if v == nil {
				return model.CollectionStats{}, &model.IntegrityError{Path: ns, Field: "indexSizes." + idx, Reason: "field is null"}
			}
		}
	}

	var reply collStatsReply
	err = decode(raw, &reply)
	if err != nil {
		return model.CollectionStats{}, &model.IntegrityError{Path: ns, Reason: err.Error()}
	}

	return model.CollectionStats{
		Name:           name,
		Count:          reply.Count,
		AvgObjSize:     reply.AvgObjSize,
		Size:           reply.Size,
		StorageSize:    reply.StorageSize,
		IndexSizes:     reply.IndexSizes,
		TotalIndexSize: reply.TotalIndexSize,
	}, nil
}

// requireFields fails for fields that are absent or null, mapstructure
// would leave those at their zero value.
func requireFields(m map[string]interface{}, path string, fields ...string) error {
	for _, field := range fields {
		v, ok := m[field]
		if !ok {
			return model.MissingField(path, field)
		}
		if v == nil {
			return &model.IntegrityError{Path: path, Field: field, Reason: "field is null"}
		}
	}
	return nil
}

// decode maps a bson reply onto result. Floating point numbers are
// truncated when the target is an integer.
func decode(raw bson.M, result interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: result,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]interface{}(raw))
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]interface{}:
		return m, true
	}
	return nil, false
}
