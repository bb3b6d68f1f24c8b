package kv

import (
	"bytes"
	"fmt"

	"go.etcd.io/bbolt"
)

type boltDB struct {
	bolt *bbolt.DB
}

// NewBoltDB opens the bbolt database at path, creating the file if it
// does not exist.
func NewBoltDB(path string) (DB, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return boltDB{bolt: db}, nil
}

func (db boltDB) View(fn func(ReadableTx) error) error {
	return db.bolt.View(func(tx *bbolt.Tx) error {
		return fn(boltTx{tx: tx})
	})
}

func (db boltDB) Update(fn func(WritableTx) error) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return fn(boltTx{tx: tx})
	})
}

func (db boltDB) Close() error {
	return db.bolt.Close()
}

type boltTx struct {
	tx *bbolt.Tx
}

func (t boltTx) GetBucket(name []byte) Bucket {
	b := t.tx.Bucket(name)
	if b == nil {
		return nil
	}
	return boltBucket{bucket: b}
}

func (t boltTx) GetBucketOrCreate(name []byte) (Bucket, error) {
	b, err := t.tx.CreateBucketIfNotExists(name)
	if err != nil {
		return nil, fmt.Errorf("creating bucket %q: %w", name, err)
	}
	return boltBucket{bucket: b}, nil
}

type boltBucket struct {
	bucket *bbolt.Bucket
}

func (b boltBucket) Get(key []byte) []byte {
	return b.bucket.Get(key)
}

func (b boltBucket) Set(key, value []byte) error {
	return b.bucket.Put(key, value)
}

func (b boltBucket) Delete(key []byte) error {
	return b.bucket.Delete(key)
}

func (b boltBucket) ForEach(fn func(k, v []byte) error) error {
	return b.bucket.ForEach(fn)
}

func (b boltBucket) Scan(prefix []byte, fn func(k, v []byte) error) error {
	cursor := b.bucket.Cursor()
	for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}
