package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types the ledger persists.
// Timestamps are stored as Unix microseconds.

// IDMUS serializes record identifiers.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// RecordMUS serializes processing records.
var RecordMUS = recordMUS{}

type recordMUS struct{}

func (recordMUS) Marshal(r ProcessingRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.OwnerId, bs[n:])
	n += ord.String.Marshal(string(r.Source), bs[n:])
	n += ord.String.Marshal(r.ItemPath, bs[n:])
	n += ord.String.Marshal(r.ContentHash, bs[n:])
	n += ord.String.Marshal(string(r.Status), bs[n:])
	n += ord.String.Marshal(r.Summary, bs[n:])
	n += varint.PositiveInt.Marshal(len(r.Topics), bs[n:])
	for _, topic := range r.Topics {
		n += ord.String.Marshal(topic, bs[n:])
	}
	n += varint.Int64.Marshal(r.CreatedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(r.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (recordMUS) Unmarshal(bs []byte) (r ProcessingRecord, n int, err error) {
	var m int
	if r.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if r.OwnerId, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	var source string
	if source, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	r.Source = SourceType(source)
	if r.ItemPath, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.ContentHash, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	var status string
	if status, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	r.Status = Status(status)
	if r.Summary, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	var count int
	if count, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if count > 0 {
		r.Topics = make([]string, count)
		for i := 0; i < count; i++ {
			if r.Topics[i], m, err = ord.String.Unmarshal(bs[n:]); err != nil {
				return
			}
			n += m
		}
	}
	var micros int64
	if micros, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	r.CreatedAt = time.UnixMicro(micros).UTC()
	if micros, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	r.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (recordMUS) Size(r ProcessingRecord) (size int) {
	size = IDMUS.Size(r.Id)
	size += ord.String.Size(r.OwnerId)
	size += ord.String.Size(string(r.Source))
	size += ord.String.Size(r.ItemPath)
	size += ord.String.Size(r.ContentHash)
	size += ord.String.Size(string(r.Status))
	size += ord.String.Size(r.Summary)
	size += varint.PositiveInt.Size(len(r.Topics))
	for _, topic := range r.Topics {
		size += ord.String.Size(topic)
	}
	size += varint.Int64.Size(r.CreatedAt.UnixMicro())
	size += varint.Int64.Size(r.UpdatedAt.UnixMicro())
	return size
}
