package releasecatalog

import (
	"encoding/json"

	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// MarshalDocument returns the persisted form of a record: JSON indented
// with 4 spaces.
func MarshalDocument(record types.ReleaseRecord) ([]byte, error) {
	return json.MarshalIndent(record, "", "    ")
}

func unmarshalDocument(b []byte) (*types.ReleaseRecord, error) {
	var record types.ReleaseRecord
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
