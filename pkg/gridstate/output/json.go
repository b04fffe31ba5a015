// Package output serializes grid state to JSON and xlsx.
package output

import (
	"encoding/json"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
)

// ToJSON serializes a grid view.
func ToJSON(v models.GridView, pretty bool) ([]byte, error) {
	return marshal(v, pretty)
}

// DatasetToJSON serializes a dataset in the form LoadJSON reads.
func DatasetToJSON(ds models.Dataset, pretty bool) ([]byte, error) {
	return marshal(ds, pretty)
}

// SnapshotToJSON serializes a full snapshot including selection state.
func SnapshotToJSON(s models.Snapshot, pretty bool) ([]byte, error) {
	return marshal(s, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
