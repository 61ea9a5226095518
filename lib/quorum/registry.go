package quorum

import (
	"sync"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"boscoin.io/voteweigher/lib/bindings"
	"boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/common/observer"
	"boscoin.io/voteweigher/lib/errors"
	"boscoin.io/voteweigher/lib/metrics"
	"boscoin.io/voteweigher/lib/storage"
)

// Registry owns the quorum records and the global counter. Every mutating
// operation is gated by the `bindings.Authorizer`, serialized on the
// registry mutex and applied inside one storage transaction, so either all
// of its effects commit or none do. Notifications fire only after a
// successful commit.
type Registry struct {
	sync.Mutex

	st   *storage.LevelDBBackend
	auth bindings.Authorizer
}

func NewRegistry(st *storage.LevelDBBackend, auth bindings.Authorizer) *Registry {
	return &Registry{
		st:   st,
		auth: auth,
	}
}

func (r *Registry) Count() (uint64, error) {
	return GetQuorumCount(r.st)
}

// Quorum returns the stored record of an addressable quorum.
func (r *Registry) Quorum(number uint64) (q *Quorum, err error) {
	var count uint64
	if count, err = GetQuorumCount(r.st); err != nil {
		return
	}
	if number >= count {
		err = errors.ErrorQuorumNotFound
		return
	}

	return GetQuorum(r.st, number)
}

func (r *Registry) EntriesLength(number uint64) (length uint64, err error) {
	var q *Quorum
	if q, err = r.Quorum(number); err != nil {
		return
	}

	return uint64(len(q.Entries)), nil
}

func (r *Registry) EntryAt(number uint64, index uint64) (entry StrategyEntry, err error) {
	var q *Quorum
	if q, err = r.Quorum(number); err != nil {
		return
	}

	if index >= uint64(len(q.Entries)) {
		err = errors.ErrorIndexOutOfRange
		return
	}

	return q.Entries[index], nil
}

// CreateQuorum assigns the next sequential quorum number to a new quorum
// configured with `entries` (possibly empty) and bumps the counter.
func (r *Registry) CreateQuorum(caller ethcommon.Address, entries []StrategyEntry) (number uint64, err error) {
	defer r.countErr(&err)

	if !r.auth.IsAuthorized(caller, bindings.ActionCreateQuorum) {
		err = errors.ErrorUnauthorized
		return
	}

	r.Lock()
	defer r.Unlock()

	if number, err = GetQuorumCount(r.st); err != nil {
		return
	}

	var ts *storage.LevelDBBackend
	if ts, err = r.st.OpenTransaction(); err != nil {
		return
	}

	q := NewQuorum(number, entries)
	if err = ts.New(GetQuorumKey(number), q); err != nil {
		ts.Discard()
		return
	}
	if err = setQuorumCount(ts, number+1); err != nil {
		ts.Discard()
		return
	}
	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	r.notify(observer.EventQuorumCreated, number, 0, nil)
	for i, entry := range q.Entries {
		r.notify(observer.EventStrategyAdded, number, uint64(i), &entry)
	}

	metrics.Registry.CreatedTotal.Add(1)
	metrics.Registry.StrategiesAddedTotal.Add(float64(len(q.Entries)))
	metrics.Registry.SetQuorums(number + 1)

	log.Info("quorum created", "quorum", number, "entries", len(q.Entries))

	return
}

// AddStrategies appends `entries` to the end of the quorum's list,
// preserving their relative order.
func (r *Registry) AddStrategies(caller ethcommon.Address, number uint64, entries []StrategyEntry) (err error) {
	defer r.countErr(&err)

	if !r.auth.IsAuthorized(caller, bindings.ActionAddStrategies) {
		return errors.ErrorUnauthorized
	}

	r.Lock()
	defer r.Unlock()

	var q *Quorum
	if q, err = r.Quorum(number); err != nil {
		return
	}

	base := uint64(len(q.Entries))
	q.Entries = append(q.Entries, entries...)

	if err = r.save(q); err != nil {
		return
	}

	for i, entry := range entries {
		r.notify(observer.EventStrategyAdded, number, base+uint64(i), &entry)
	}

	metrics.Registry.StrategiesAddedTotal.Add(float64(len(entries)))

	log.Info("strategies added", "quorum", number, "entries", len(entries))

	return
}

// RemoveStrategies removes the entries at `indices`, which must be strictly
// descending, duplicate-free and in range; otherwise nothing is removed.
// Removal shifts the following entries down, preserving the relative order
// of the survivors.
func (r *Registry) RemoveStrategies(caller ethcommon.Address, number uint64, indices []uint64) (err error) {
	defer r.countErr(&err)

	if !r.auth.IsAuthorized(caller, bindings.ActionRemoveStrategies) {
		return errors.ErrorUnauthorized
	}

	r.Lock()
	defer r.Unlock()

	var q *Quorum
	if q, err = r.Quorum(number); err != nil {
		return
	}

	for i, index := range indices {
		if index >= uint64(len(q.Entries)) {
			return errors.ErrorIndexOutOfRange
		}
		if i > 0 && index >= indices[i-1] {
			return errors.ErrorInvalidIndexOrder
		}
	}

	removed := make([]StrategyEntry, 0, len(indices))
	for _, index := range indices {
		removed = append(removed, q.Entries[index])
		q.Entries = append(q.Entries[:index], q.Entries[index+1:]...)
	}

	if err = r.save(q); err != nil {
		return
	}

	for i, entry := range removed {
		r.notify(observer.EventStrategyRemoved, number, indices[i], &entry)
	}

	metrics.Registry.StrategiesRemovedTotal.Add(float64(len(removed)))

	log.Info("strategies removed", "quorum", number, "entries", len(removed))

	return
}

// ModifyMultipliers updates the multipliers at `indices` in place, paired
// positionally with `multipliers`. If any pair is invalid no mutation
// occurs.
func (r *Registry) ModifyMultipliers(caller ethcommon.Address, number uint64, indices []uint64, multipliers []common.Multiplier) (err error) {
	defer r.countErr(&err)

	if !r.auth.IsAuthorized(caller, bindings.ActionModifyMultipliers) {
		return errors.ErrorUnauthorized
	}

	if len(indices) != len(multipliers) {
		return errors.ErrorLengthMismatch
	}

	r.Lock()
	defer r.Unlock()

	var q *Quorum
	if q, err = r.Quorum(number); err != nil {
		return
	}

	for _, index := range indices {
		if index >= uint64(len(q.Entries)) {
			return errors.ErrorIndexOutOfRange
		}
	}

	for i, index := range indices {
		q.Entries[index].Multiplier = multipliers[i]
	}

	if err = r.save(q); err != nil {
		return
	}

	for _, index := range indices {
		entry := q.Entries[index]
		r.notify(observer.EventMultiplierUpdated, number, index, &entry)
	}

	metrics.Registry.MultipliersUpdatedTotal.Add(float64(len(indices)))

	log.Info("multipliers updated", "quorum", number, "entries", len(indices))

	return
}

// save writes the mutated record inside its own transaction.
func (r *Registry) save(q *Quorum) (err error) {
	var ts *storage.LevelDBBackend
	if ts, err = r.st.OpenTransaction(); err != nil {
		return
	}

	if err = q.Save(ts); err != nil {
		ts.Discard()
		return
	}

	return ts.Commit()
}

func (r *Registry) notify(kind string, number uint64, index uint64, entry *StrategyEntry) {
	n := observer.Notification{
		ID:     common.GetUniqueIDFromUUID(),
		Kind:   kind,
		Quorum: number,
		Index:  index,
	}
	if entry != nil {
		n.Strategy = entry.Strategy.Hex()
		n.Multiplier = entry.Multiplier.String()
	}

	observer.QuorumObserver.Trigger(kind+" "+observer.QuorumEvent(number), n)
}

func (r *Registry) countErr(err *error) {
	if *err != nil {
		metrics.Registry.ErrorsTotal.Add(1)
	}
}
