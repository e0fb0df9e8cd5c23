/*
Package mongostore provides an implementation of store.Store that
uses a MongoDB database as backend.
*/
package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/pbanos/symptree/store"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	modelsCollectionName = "models"
	dialTimeout          = 10 * time.Second
)

type model struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	CreatedAt time.Time `bson:"createdAt"`
}

type mongoStore struct {
	session *mgo.Session
}

/*
New takes a MongoDB database session and returns a store.Store that works
on the models collection of the default database for that session.
*/
func New(session *mgo.Session) store.Store {
	return &mongoStore{session}
}

/*
Open takes a context and a MongoDB URL and returns a store.Store on the
database it points to, or an error if it fails to connect to it.
*/
func Open(ctx context.Context, url string) (store.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	session, err := mgo.DialWithTimeout(url, timeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %v", err)
	}
	return New(session), nil
}

func (ms *mongoStore) Put(ctx context.Context, key string, blob []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := ms.modelsCollection().UpsertId(key, &model{key, blob, time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("storing model %q in mongodb: %v", key, err)
	}
	return nil
}

func (ms *mongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := &model{}
	err := ms.modelsCollection().FindId(key).One(m)
	if err == mgo.ErrNotFound {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: %v", key, err)
	}
	return m.Data, nil
}

func (ms *mongoStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := ms.modelsCollection().RemoveId(key)
	if err == mgo.ErrNotFound {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting model %q from mongodb: %v", key, err)
	}
	return nil
}

func (ms *mongoStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iter := ms.modelsCollection().Find(nil).Select(bson.M{"_id": 1}).Sort("_id").Iter()
	defer iter.Close()
	keys := []string{}
	var doc struct {
		ID string `bson:"_id"`
	}
	for iter.Next(&doc) {
		keys = append(keys, doc.ID)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("listing models in mongodb: %v", err)
	}
	return keys, nil
}

func (ms *mongoStore) Close(ctx context.Context) error {
	ms.session.Close()
	return nil
}

func (ms *mongoStore) modelsCollection() *mgo.Collection {
	return ms.session.DB("").C(modelsCollectionName)
}
