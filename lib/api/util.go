package api

import (
	"net/http"
	"strconv"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"boscoin.io/voteweigher/lib/errors"
)

// callerAddress reads the address the mutating endpoints act as. The header
// must hold a well-formed hex address.
func callerAddress(r *http.Request) (ethcommon.Address, error) {
	h := r.Header.Get(CallerHeader)
	if !ethcommon.IsHexAddress(h) {
		return ethcommon.Address{}, errors.ErrorInvalidOperation
	}
	return ethcommon.HexToAddress(h), nil
}

func quorumNumber(r *http.Request) (uint64, error) {
	number, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, errors.ErrorInvalidOperation
	}
	return number, nil
}

func entryIndex(r *http.Request) (uint64, error) {
	index, err := strconv.ParseUint(mux.Vars(r)["index"], 10, 64)
	if err != nil {
		return 0, errors.ErrorInvalidOperation
	}
	return index, nil
}

func operatorAddress(r *http.Request) (ethcommon.Address, error) {
	h := mux.Vars(r)["operator"]
	if !ethcommon.IsHexAddress(h) {
		return ethcommon.Address{}, errors.ErrorInvalidOperation
	}
	return ethcommon.HexToAddress(h), nil
}
