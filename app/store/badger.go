package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"
	log "github.com/go-pkgz/lgr"
)

// Badger implements Engine with BadgerDB. Writes are synced to disk before return.
type Badger struct {
	db *badger.DB
}

// NewBadger opens or creates badger database in location directory
func NewBadger(location string) (*Badger, error) {
	opts := badger.DefaultOptions(location).
		WithSyncWrites(true).
		WithLogger(badgerLogger{l: log.Default()}).
		WithCompactL0OnClose(true).
		WithValueLogFileSize(16 << 20).
		WithMemTableSize(4 << 20).
		WithNumMemtables(2).
		WithNumLevelZeroTables(2).
		WithNumLevelZeroTablesStall(3).
		WithValueThreshold(64 << 10) // must stay below max batch size, 15% of memtable

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

// Set writes value under key
func (b *Badger) Set(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Last returns the greatest key with its value
func (b *Badger) Last() (key, value []byte, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Rewind()
		if !it.Valid() {
			return nil
		}
		item := it.Item()
		val, e := item.ValueCopy(nil)
		if e != nil {
			return e
		}
		key, value = item.KeyCopy(nil), val
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return key, value, nil
}

// Delete removes key, missing key is not an error
func (b *Badger) Delete(key []byte) (existed bool, err error) {
	err = b.db.Update(func(txn *badger.Txn) error {
		_, e := txn.Get(key)
		if errors.Is(e, badger.ErrKeyNotFound) {
			return nil
		}
		if e != nil {
			return e
		}
		existed = true
		return txn.Delete(key)
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}

// Len counts keys
func (b *Badger) Len() (int, error) {
	count := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Compact runs value log GC. Nothing to rewrite is not an error.
func (b *Badger) Compact() error {
	err := b.db.RunValueLogGC(0.7)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) {
		return err
	}
	return nil
}

// Close closes badger database
func (b *Badger) Close() error {
	return b.db.Close()
}

// badgerLogger sends badger messages to lgr, info goes to debug level as badger is chatty
type badgerLogger struct {
	l log.L
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Logf("[ERROR] badger, %s", b.msg(format, args...))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Logf("[WARN] badger, %s", b.msg(format, args...))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Logf("[DEBUG] badger, %s", b.msg(format, args...))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Logf("[TRACE] badger, %s", b.msg(format, args...))
}

func (b badgerLogger) msg(format string, args ...interface{}) string {
	return strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
}
