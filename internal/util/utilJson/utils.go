package utiljson

import (
	"encoding/json"
)

// ToJson renders v as indented JSON terminated by a newline.
func ToJson(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
