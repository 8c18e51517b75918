package badger

import (
	"fmt"

	"github.com/poiesic/distill/core"
)

// Key prefixes for ledger data
const (
	recordPrefix      = "ledrec"
	recordIndexPrefix = "ledidx"
	recordIDSeq       = "ledrecseq"
)

// makeRecordKey generates the primary key for a record by ID.
func makeRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", recordPrefix, id))
}

// makeRecordIndexKey generates the uniqueness-index key for
// (owner, source, content hash). The value under this key is the record
// ID; its mere existence enforces the dedup constraint.
func makeRecordIndexKey(owner string, source core.SourceType, hash string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:%s", recordIndexPrefix, owner, source, hash))
}

// makeOwnerSourcePrefix generates the index prefix covering all records
// for an owner and source.
func makeOwnerSourcePrefix(owner string, source core.SourceType) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:", recordIndexPrefix, owner, source))
}
