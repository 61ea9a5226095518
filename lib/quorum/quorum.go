package quorum

import (
	"fmt"

	"boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/errors"
	"boscoin.io/voteweigher/lib/storage"
)

// Quorum is the persisted configuration of one voting group. the storage
// should support,
//  * find by `Number`:
// 	- key: `Number`: value: `Quorum`
//  * the global counter:
// 	- 'qr-count': the number of created quorums
//
// models
//  * 'number'
// 	- 'qr-number-<Quorum.Number>': `Quorum`
//
// Quorum numbers are assigned sequentially and a quorum is never deleted,
// so `Number < count` holds for every stored record.

const QuorumPrefixNumber string = "qr-number-"
const QuorumCountKey string = "qr-count"

type Quorum struct {
	Number  uint64          `json:"number"`
	Entries []StrategyEntry `json:"entries"`
}

func NewQuorum(number uint64, entries []StrategyEntry) *Quorum {
	return &Quorum{
		Number:  number,
		Entries: append([]StrategyEntry{}, entries...),
	}
}

func (q *Quorum) String() string {
	return string(common.MustMarshalJSON(q))
}

func (q *Quorum) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(q)
	return
}

func (q *Quorum) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, q)
}

func (q *Quorum) Save(st *storage.LevelDBBackend) (err error) {
	key := GetQuorumKey(q.Number)

	var exists bool
	exists, err = st.Has(key)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(key, q)
	} else {
		err = st.New(key, q)
	}

	return
}

// GetQuorumKey zero-pads the number so iteration over `QuorumPrefixNumber`
// yields quorums in creation order.
func GetQuorumKey(number uint64) string {
	return fmt.Sprintf("%s%020d", QuorumPrefixNumber, number)
}

func ExistQuorum(st *storage.LevelDBBackend, number uint64) (bool, error) {
	return st.Has(GetQuorumKey(number))
}

func GetQuorum(st *storage.LevelDBBackend, number uint64) (q *Quorum, err error) {
	if err = st.Get(GetQuorumKey(number), &q); err != nil {
		if err == errors.ErrorStorageRecordDoesNotExist {
			err = errors.ErrorQuorumNotFound
		}
		return
	}

	return
}

// GetQuorumCount reads the global counter; a fresh database has count 0.
func GetQuorumCount(st *storage.LevelDBBackend) (count uint64, err error) {
	var exists bool
	if exists, err = st.Has(QuorumCountKey); err != nil || !exists {
		return
	}

	err = st.Get(QuorumCountKey, &count)
	return
}

func setQuorumCount(st *storage.LevelDBBackend, count uint64) (err error) {
	var exists bool
	if exists, err = st.Has(QuorumCountKey); err != nil {
		return
	}

	if exists {
		return st.Set(QuorumCountKey, count)
	}
	return st.New(QuorumCountKey, count)
}

func GetQuorumsByCreated(st *storage.LevelDBBackend, options *storage.IteratorOptions) (func() (*Quorum, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(QuorumPrefixNumber, options)

	return (func() (*Quorum, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false
			}

			var q Quorum
			if err := common.DecodeJSONValue(item.Value, &q); err != nil {
				return nil, false
			}
			return &q, hasNext
		}), (func() {
			closeFunc()
		})
}
