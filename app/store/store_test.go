package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/taskcache/app/store/mocks"
)

var engines = []EngineKind{EngineBadger, EngineSQLite}

func openStore(t *testing.T, kind EngineKind) *TaskStore {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "tasks"), kind)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func rec(id, payload string) Record {
	return Record{Task: Task{ID: id, TaskData: payload}}
}

func TestTaskStore_PutGetLastDelete(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st := openStore(t, kind)

			last, err := st.GetLast()
			require.NoError(t, err, "empty store is not an error")
			assert.Nil(t, last)

			require.NoError(t, st.Put(rec("0001", "A")))
			require.NoError(t, st.Put(rec("0002", "B")))

			last, err = st.GetLast()
			require.NoError(t, err)
			require.NotNil(t, last)
			assert.Equal(t, rec("0002", "B"), *last)

			existed, err := st.Delete("0002")
			require.NoError(t, err)
			assert.True(t, existed)

			last, err = st.GetLast()
			require.NoError(t, err)
			require.NotNil(t, last)
			assert.Equal(t, rec("0001", "A"), *last)

			existed, err = st.Delete("0001")
			require.NoError(t, err)
			assert.True(t, existed)

			last, err = st.GetLast()
			require.NoError(t, err)
			assert.Nil(t, last)
		})
	}
}

func TestTaskStore_PutReplaces(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st := openStore(t, kind)
			require.NoError(t, st.Put(rec("0001", "A")))
			require.NoError(t, st.Put(rec("0005", "old")))
			require.NoError(t, st.Put(rec("0005", "new")))
			require.NoError(t, st.Put(rec("0005", "new")), "replay is a no-op")

			last, err := st.GetLast()
			require.NoError(t, err)
			assert.Equal(t, rec("0005", "new"), *last)

			n, err := st.Len()
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestTaskStore_RoundTrip(t *testing.T) {
	r := Record{
		Task: Task{
			UUID:         "5a3c3b2e-0e4f-4f7b-9a0a-2f1f0f8c1d11",
			ID:           "20240101120000-0001",
			TaskType:     2,
			TaskData:     `{"chunk_hashes":["0x01","0x02"]}`,
			HardForkName: "darwin",
		},
		GetTaskTime: 1704110400,
	}
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st := openStore(t, kind)
			require.NoError(t, st.Put(rec("20231231235959-0009", "older")))
			require.NoError(t, st.Put(r))
			last, err := st.GetLast()
			require.NoError(t, err)
			assert.Equal(t, r, *last)
		})
	}
}

func TestTaskStore_LastByteOrder(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st := openStore(t, kind)
			// inserted out of order, "9" > "10" in byte order
			for _, id := range []string{"10", "9", "0100", "a", "Z"} {
				require.NoError(t, st.Put(rec(id, "p-"+id)))
			}
			last, err := st.GetLast()
			require.NoError(t, err)
			assert.Equal(t, "a", last.Task.ID)

			_, err = st.Delete("a")
			require.NoError(t, err)
			last, err = st.GetLast()
			require.NoError(t, err)
			assert.Equal(t, "Z", last.Task.ID)

			_, err = st.Delete("Z")
			require.NoError(t, err)
			last, err = st.GetLast()
			require.NoError(t, err)
			assert.Equal(t, "9", last.Task.ID)
		})
	}
}

func TestTaskStore_DeleteMissing(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st := openStore(t, kind)
			require.NoError(t, st.Put(rec("0001", "A")))

			existed, err := st.Delete("0002")
			require.NoError(t, err)
			assert.False(t, existed)

			existed, err = st.Delete("0002")
			require.NoError(t, err)
			assert.False(t, existed)

			last, err := st.GetLast()
			require.NoError(t, err)
			assert.Equal(t, rec("0001", "A"), *last, "store unchanged")
		})
	}
}

func TestTaskStore_InvalidID(t *testing.T) {
	st := openStore(t, EngineBadger)

	err := st.Put(rec("", "A"))
	require.ErrorIs(t, err, ErrInvalidID)

	err = st.Put(rec(string([]byte{0xff, 0xfe}), "A"))
	require.ErrorIs(t, err, ErrInvalidID)

	n, err := st.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTaskStore_CorruptedRecord(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st := openStore(t, kind)
			require.NoError(t, st.engine.Set([]byte("0001"), []byte("not a json")))

			last, err := st.GetLast()
			require.ErrorIs(t, err, ErrDeserialization)
			assert.Nil(t, last)
		})
	}
}

func TestTaskStore_Reopen(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			location := filepath.Join(t.TempDir(), "tasks")
			st, err := Open(location, kind)
			require.NoError(t, err)
			require.NoError(t, st.Put(rec("0001", "A")))
			require.NoError(t, st.Put(rec("0002", "B")))
			_, err = st.Delete("0001")
			require.NoError(t, err)
			require.NoError(t, st.Close())

			st, err = Open(location, kind)
			require.NoError(t, err)
			defer st.Close()

			n, err := st.Len()
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			last, err := st.GetLast()
			require.NoError(t, err)
			assert.Equal(t, rec("0002", "B"), *last)
		})
	}
}

func TestTaskStore_Concurrent(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st := openStore(t, kind)
			var wg sync.WaitGroup
			for i := 1; i <= 50; i++ {
				wg.Add(1)
				go func(seq uint64) {
					defer wg.Done()
					assert.NoError(t, st.Put(rec(SequenceID(seq), fmt.Sprintf("p%d", seq))))
				}(uint64(i))
			}
			wg.Wait()

			last, err := st.GetLast()
			require.NoError(t, err)
			assert.Equal(t, rec(SequenceID(50), "p50"), *last)

			for i := 1; i <= 50; i += 2 {
				wg.Add(1)
				go func(seq uint64) {
					defer wg.Done()
					_, e := st.Delete(SequenceID(seq))
					assert.NoError(t, e)
				}(uint64(i))
			}
			wg.Wait()

			n, err := st.Len()
			require.NoError(t, err)
			assert.Equal(t, 25, n)
		})
	}
}

func TestTaskStore_Compact(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st := openStore(t, kind)
			require.NoError(t, st.Put(rec("0001", "A")))
			_, err := st.Delete("0001")
			require.NoError(t, err)
			assert.NoError(t, st.Compact())
		})
	}
}

func TestTaskStore_Closed(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "tasks"), EngineSQLite)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, st.Close(), "second close is no-op")

	assert.ErrorIs(t, st.Put(rec("0001", "A")), ErrClosed)
	_, err = st.GetLast()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = st.Delete("0001")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = st.Len()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, st.Compact(), ErrClosed)
}

func TestOpen(t *testing.T) {
	t.Run("unknown engine", func(t *testing.T) {
		st, err := Open(t.TempDir(), "leveldb")
		require.ErrorIs(t, err, ErrStorageUnavailable)
		assert.Nil(t, st)
	})

	t.Run("default engine", func(t *testing.T) {
		st, err := Open(filepath.Join(t.TempDir(), "tasks"), "")
		require.NoError(t, err)
		defer st.Close()
		_, ok := st.engine.(*Badger)
		assert.True(t, ok)
	})

	t.Run("badger directory locked", func(t *testing.T) {
		location := filepath.Join(t.TempDir(), "tasks")
		st, err := Open(location, EngineBadger)
		require.NoError(t, err)
		defer st.Close()

		st2, err := Open(location, EngineBadger)
		require.ErrorIs(t, err, ErrStorageUnavailable)
		assert.Nil(t, st2)
	})

	t.Run("sqlite location is a file", func(t *testing.T) {
		location := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(location, []byte("x"), 0o600))
		st, err := Open(location, EngineSQLite)
		require.ErrorIs(t, err, ErrStorageUnavailable)
		assert.Nil(t, st)
	})
}

func TestTaskStore_EngineErrors(t *testing.T) {
	ioErr := errors.New("disk full")
	eng := &mocks.EngineMock{
		SetFunc:     func(key, value []byte) error { return ioErr },
		LastFunc:    func() ([]byte, []byte, error) { return nil, nil, ioErr },
		DeleteFunc:  func(key []byte) (bool, error) { return false, ioErr },
		LenFunc:     func() (int, error) { return 0, ioErr },
		CompactFunc: func() error { return ioErr },
		CloseFunc:   func() error { return nil },
	}
	st := New(eng, "mock")

	err := st.Put(rec("0001", "A"))
	require.ErrorIs(t, err, ErrStorageWrite)
	require.ErrorIs(t, err, ioErr)
	require.Len(t, eng.SetCalls(), 1)
	assert.Equal(t, []byte("0001"), eng.SetCalls()[0].Key)
	assert.JSONEq(t, `{"task":{"uuid":"","id":"0001","task_type":0,"task_data":"A","hard_fork_name":""},"get_task_time":0}`,
		string(eng.SetCalls()[0].Value))

	_, err = st.GetLast()
	require.ErrorIs(t, err, ErrStorageRead)
	require.ErrorIs(t, err, ioErr)

	existed, err := st.Delete("0001")
	require.ErrorIs(t, err, ErrStorageWrite)
	require.ErrorIs(t, err, ioErr)
	assert.False(t, existed)

	_, err = st.Len()
	require.ErrorIs(t, err, ErrStorageRead)
	require.ErrorIs(t, st.Compact(), ErrStorageWrite)

	require.NoError(t, st.Close())
	assert.Len(t, eng.CloseCalls(), 1)
}

func TestTaskStore_NonUTF8Key(t *testing.T) {
	eng := &mocks.EngineMock{
		LastFunc: func() ([]byte, []byte, error) { return []byte{0xff}, []byte(`{}`), nil },
	}
	st := New(eng, "mock")
	_, err := st.GetLast()
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestSequenceID(t *testing.T) {
	assert.Equal(t, "00000000000000000042", SequenceID(42))
	assert.Less(t, SequenceID(9), SequenceID(10))
	assert.Less(t, SequenceID(99999), SequenceID(100000))
	assert.Len(t, SequenceID(^uint64(0)), 20)
}

func TestNewBadger(t *testing.T) {
	b, err := NewBadger(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err, "default tuning must be accepted by badger")
	defer b.Close()

	large := bytes.Repeat([]byte("x"), 256<<10) // above value threshold, goes to value log
	require.NoError(t, b.Set([]byte("0001"), []byte("small")))
	require.NoError(t, b.Set([]byte("0002"), large))

	key, value, err := b.Last()
	require.NoError(t, err)
	assert.Equal(t, []byte("0002"), key)
	assert.Equal(t, large, value)

	var wg sync.WaitGroup
	var failed atomic.Int32
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// missing ids are deleted many times, existing ones once each
			id := fmt.Sprintf("missing-%d", i%10)
			if i < 2 {
				id = fmt.Sprintf("%04d", i+1)
			}
			if _, e := b.Delete([]byte(id)); e != nil {
				failed.Add(1)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(0), failed.Load())

	n, err := b.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTaskStore_SerializationError(t *testing.T) {
	orig := marshal
	defer func() { marshal = orig }()
	marshal = func(any) ([]byte, error) { return nil, errors.New("unsupported value") }

	eng := &mocks.EngineMock{SetFunc: func(key, value []byte) error { return nil }}
	st := New(eng, "mock")
	err := st.Put(rec("0001", "A"))
	require.ErrorIs(t, err, ErrSerialization)
	assert.ErrorContains(t, err, "unsupported value")
	assert.Empty(t, eng.SetCalls(), "nothing written on encoding failure")
}

func TestTaskStore_CloseRace(t *testing.T) {
	for _, kind := range engines {
		t.Run(string(kind), func(t *testing.T) {
			st, err := Open(filepath.Join(t.TempDir(), "tasks"), kind)
			require.NoError(t, err)

			var wg sync.WaitGroup
			for i := 1; i <= 20; i++ {
				wg.Add(1)
				go func(seq uint64) {
					defer wg.Done()
					e := st.Put(rec(SequenceID(seq), "p"))
					if e != nil {
						assert.True(t, errors.Is(e, ErrClosed) || errors.Is(e, ErrStorageWrite), "unexpected error %v", e)
					}
					if _, e = st.GetLast(); e != nil {
						assert.True(t, errors.Is(e, ErrClosed) || errors.Is(e, ErrStorageRead), "unexpected error %v", e)
					}
				}(uint64(i))
			}
			assert.NoError(t, st.Close())
			wg.Wait()

			assert.ErrorIs(t, st.Put(rec("0001", "A")), ErrClosed)
		})
	}
}
