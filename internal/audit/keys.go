package audit

import "github.com/epochline/epochline/pkg/id"

// Key layout: "al/" + 16-byte sortable id. The id's timestamp prefix keeps
// records in write order under byte-wise iteration.
var keyPrefix = []byte("al/")

func recordKey(recID id.ID) []byte {
	key := make([]byte, 0, len(keyPrefix)+16)
	key = append(key, keyPrefix...)
	key = append(key, recID.Bytes()...)
	return key
}

// keyUpperBound is the exclusive end of the record key range.
func keyUpperBound() []byte {
	end := append([]byte(nil), keyPrefix...)
	end[len(end)-1]++
	return end
}
