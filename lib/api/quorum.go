package api

import (
	"encoding/json"
	"net/http"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"boscoin.io/voteweigher/lib/api/resource"
	"boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/common/observer"
	"boscoin.io/voteweigher/lib/errors"
	"boscoin.io/voteweigher/lib/httputils"
	"boscoin.io/voteweigher/lib/quorum"
	"boscoin.io/voteweigher/lib/storage"
)

type QuorumBody struct {
	Entries []quorum.StrategyEntry `json:"entries"`
}

type RemoveStrategiesBody struct {
	Indices []uint64 `json:"indices"`
}

type ModifyMultipliersBody struct {
	Indices     []uint64            `json:"indices"`
	Multipliers []common.Multiplier `json:"multipliers"`
}

func (api NetworkHandlerAPI) GetQuorumsHandler(w http.ResponseWriter, r *http.Request) {
	readFunc := func(cnt int) []*quorum.Quorum {
		var qs []*quorum.Quorum
		iterFunc, closeFunc := quorum.GetQuorumsByCreated(api.storage, &storage.IteratorOptions{Reverse: false})
		for {
			q, hasNext := iterFunc()
			if !hasNext || cnt == 0 {
				break
			}
			qs = append(qs, q)
			cnt--
		}
		closeFunc()
		return qs
	}

	if httputils.IsEventStream(r) {
		es := NewDefaultEventStream(w, r)
		for _, q := range readFunc(maxNumberOfExistingData) {
			es.Render(q)
		}
		es.Run(observer.QuorumObserver, observer.EventQuorumCreated)
		return
	}

	qs := readFunc(-1) // TODO: paging support
	rl := resource.ResourceList{SelfLink: resource.URLQuorums}
	for _, q := range qs {
		rl.Resources = append(rl.Resources, resource.NewQuorum(q))
	}

	if err := httputils.WriteJSON(w, 200, rl); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) PostQuorumHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var body QuorumBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputils.WriteError(w, errors.ErrorInvalidOperation)
		return
	}

	number, err := api.registry.CreateQuorum(caller, body.Entries)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	q, err := api.registry.Quorum(number)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 201, resource.NewQuorum(q)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) GetQuorumHandler(w http.ResponseWriter, r *http.Request) {
	number, err := quorumNumber(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	q, err := api.registry.Quorum(number)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if httputils.IsEventStream(r) {
		es := NewEventStream(w, r, renderEventStream, DefaultContentType)
		es.Render(q)
		es.Run(observer.QuorumObserver, observer.QuorumEvent(number))
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewQuorum(q)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) GetStrategyHandler(w http.ResponseWriter, r *http.Request) {
	number, err := quorumNumber(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}
	index, err := entryIndex(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	entry, err := api.registry.EntryAt(number, index)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewStrategy(number, index, entry)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) PostStrategiesHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}
	number, err := quorumNumber(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var body QuorumBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputils.WriteError(w, errors.ErrorInvalidOperation)
		return
	}

	if err := api.registry.AddStrategies(caller, number, body.Entries); err != nil {
		httputils.WriteError(w, err)
		return
	}

	api.writeQuorum(w, number)
}

func (api NetworkHandlerAPI) RemoveStrategiesHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}
	number, err := quorumNumber(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var body RemoveStrategiesBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputils.WriteError(w, errors.ErrorInvalidOperation)
		return
	}

	if err := api.registry.RemoveStrategies(caller, number, body.Indices); err != nil {
		httputils.WriteError(w, err)
		return
	}

	api.writeQuorum(w, number)
}

func (api NetworkHandlerAPI) PostMultipliersHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerAddress(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}
	number, err := quorumNumber(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var body ModifyMultipliersBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputils.WriteError(w, errors.ErrorInvalidOperation)
		return
	}

	if err := api.registry.ModifyMultipliers(caller, number, body.Indices, body.Multipliers); err != nil {
		httputils.WriteError(w, err)
		return
	}

	api.writeQuorum(w, number)
}

func (api NetworkHandlerAPI) GetWeightHandler(w http.ResponseWriter, r *http.Request) {
	number, err := quorumNumber(r)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var operator ethcommon.Address
	if operator, err = operatorAddress(r); err != nil {
		httputils.WriteError(w, err)
		return
	}

	weight, err := api.weigher.WeightOf(number, operator)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewWeight(number, operator, weight)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) writeQuorum(w http.ResponseWriter, number uint64) {
	q, err := api.registry.Quorum(number)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewQuorum(q)); err != nil {
		httputils.WriteError(w, err)
	}
}
