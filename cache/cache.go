package cache

import (
	U "chartable/util"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ProjectionStore memoizes computed projections keyed by a structural
// hash of the inputs. Correctness never depends on it; identical inputs
// simply skip recomputation. The underlying LRU is safe for concurrent
// use.
type ProjectionStore struct {
	projections *lru.Cache
}

func New(size int) (*ProjectionStore, error) {
	projections, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init projection cache")
	}
	return &ProjectionStore{projections: projections}, nil
}

// Key Derives the cache key from everything the projection depends on:
// the result payload, the query parameters, sorter, search text and
// visibility selection all take part in the hash.
func Key(parts ...interface{}) (string, error) {
	hash, err := U.GenerateHashStringForStruct(parts)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash projection inputs")
	}
	return hash, nil
}

func (store *ProjectionStore) Get(key string) (interface{}, bool) {
	if store == nil {
		return nil, false
	}
	return store.projections.Get(key)
}

func (store *ProjectionStore) Put(key string, projection interface{}) {
	if store == nil {
		return
	}
	evicted := store.projections.Add(key, projection)
	if evicted {
		log.WithField("key", key).Debug("Projection cache eviction")
	}
}

func (store *ProjectionStore) Len() int {
	if store == nil {
		return 0
	}
	return store.projections.Len()
}
