package storage

import (
	"net/url"

	"boscoin.io/voteweigher/lib/errors"
)

type Config struct {
	Scheme string
	Path   string
}

// NewConfigFromString parses a storage URI; `file:///tmp/db` opens an
// on-disk database and `memory://` an ephemeral one.
func NewConfigFromString(s string) (config *Config, err error) {
	var u *url.URL
	if u, err = url.Parse(s); err != nil {
		return
	}

	switch u.Scheme {
	case "file":
		return &Config{Scheme: u.Scheme, Path: u.Host + u.Path}, nil
	case "memory":
		return &Config{Scheme: u.Scheme}, nil
	}

	err = errors.ErrorStorageCoreError.Clone().SetData("scheme", u.Scheme)
	return
}
