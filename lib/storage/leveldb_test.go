package storage

import (
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/voteweigher/lib/errors"
)

func TestLevelDBBackendFile(t *testing.T) {
	path, err := ioutil.TempDir("", "voteweigher-storage")
	require.NoError(t, err)
	defer CleanDB(path)

	config, err := NewConfigFromString(fmt.Sprintf("file://%s", path))
	require.NoError(t, err)

	st, err := NewStorage(config)
	require.NoError(t, err)
	require.NoError(t, st.New("showme", uint64(1)))
	require.NoError(t, st.Close())

	// reopening the same path sees the committed record
	st, err = NewStorage(config)
	require.NoError(t, err)
	defer st.Close()

	var v uint64
	require.NoError(t, st.Get("showme", &v))
	require.Equal(t, uint64(1), v)
}

func TestLevelDBBackendNewGetSet(t *testing.T) {
	st, err := NewTestMemoryLevelDBBackend()
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.New("showme", uint64(1)))
	require.Equal(t, errors.ErrorStorageRecordAlreadyExists, st.New("showme", uint64(2)))

	var v uint64
	require.NoError(t, st.Get("showme", &v))
	require.Equal(t, uint64(1), v)

	require.NoError(t, st.Set("showme", uint64(3)))
	require.NoError(t, st.Get("showme", &v))
	require.Equal(t, uint64(3), v)

	require.Equal(t, errors.ErrorStorageRecordDoesNotExist, st.Set("findme", uint64(0)))
	require.Equal(t, errors.ErrorStorageRecordDoesNotExist, st.Get("findme", &v))
}

func TestLevelDBBackendRemove(t *testing.T) {
	st, err := NewTestMemoryLevelDBBackend()
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.New("showme", uint64(1)))
	require.NoError(t, st.Remove("showme"))

	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.False(t, exists)

	require.Equal(t, errors.ErrorStorageRecordDoesNotExist, st.Remove("showme"))
}

func TestLevelDBBackendIterator(t *testing.T) {
	st, err := NewTestMemoryLevelDBBackend()
	require.NoError(t, err)
	defer st.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.New(fmt.Sprintf("it-%03d", i), uint64(i)))
	}
	require.NoError(t, st.New("other-000", uint64(99)))

	var keys []string
	iterFunc, closeFunc := st.GetIterator("it-", nil)
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		keys = append(keys, string(item.Key))
	}
	closeFunc()

	require.Equal(t, 5, len(keys))
	require.Equal(t, "it-000", keys[0])
	require.Equal(t, "it-004", keys[4])
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st, err := NewTestMemoryLevelDBBackend()
	require.NoError(t, err)
	defer st.Close()

	{ // committed writes are visible
		ts, err := st.OpenTransaction()
		require.NoError(t, err)

		require.NoError(t, ts.New("showme", uint64(1)))
		require.NoError(t, ts.Commit())

		var v uint64
		require.NoError(t, st.Get("showme", &v))
		require.Equal(t, uint64(1), v)
	}

	{ // discarded writes are not
		ts, err := st.OpenTransaction()
		require.NoError(t, err)

		require.NoError(t, ts.New("findme", uint64(1)))
		require.NoError(t, ts.Discard())

		exists, err := st.Has("findme")
		require.NoError(t, err)
		require.False(t, exists)
	}
}
