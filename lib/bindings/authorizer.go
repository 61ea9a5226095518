package bindings

import (
	"github.com/ethereum/go-ethereum/common"
)

// AdminSet authorizes a fixed set of admin addresses for every action.
type AdminSet struct {
	admins map[common.Address]bool
}

func NewAdminSet(admins ...common.Address) *AdminSet {
	s := &AdminSet{admins: map[common.Address]bool{}}
	for _, a := range admins {
		s.admins[a] = true
	}

	return s
}

func (s *AdminSet) IsAuthorized(caller common.Address, action string) bool {
	return s.admins[caller]
}
