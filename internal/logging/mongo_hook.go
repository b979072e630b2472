package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Inserter is the part of *mongo.Collection the hook needs.
type Inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// MongoHook copies log entries at or above MinLevel into a collection.
// Write failures are reported on stderr by logrus and never block the
// caller for more than Timeout.
type MongoHook struct {
	Coll     Inserter
	MinLevel logrus.Level
	Timeout  time.Duration
}

// NewMongoHook stores info and more severe entries.
func NewMongoHook(coll Inserter) *MongoHook {
	return &MongoHook{Coll: coll, MinLevel: logrus.InfoLevel, Timeout: 2 * time.Second}
}

// Levels implements logrus.Hook.
func (h *MongoHook) Levels() []logrus.Level {
	var out []logrus.Level
	for _, l := range logrus.AllLevels {
		if l <= h.MinLevel {
			out = append(out, l)
		}
	}
	return out
}

// Fire implements logrus.Hook.
func (h *MongoHook) Fire(e *logrus.Entry) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.Timeout)
	defer cancel()
	_, err := h.Coll.InsertOne(ctx, entryDocument(e))
	return err
}

func entryDocument(e *logrus.Entry) bson.M {
	meta := bson.M{}
	for k, v := range e.Data {
		if err, ok := v.(error); ok {
			meta[k] = err.Error()
			continue
		}
		meta[k] = fmt.Sprint(v)
	}
	return bson.M{
		"timestamp": e.Time.UTC(),
		"level":     e.Level.String(),
		"message":   e.Message,
		"meta":      meta,
	}
}
