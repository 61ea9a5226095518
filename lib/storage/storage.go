package storage

type IterItem struct {
	N     int64
	Key   []byte
	Value []byte
}

type IteratorOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}
