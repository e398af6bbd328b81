package util

import "encoding/json"

// ConvertStructToJson marshals v to a JSON string, returning "{}" when
// marshaling fails. Used for queue payloads and audit messages where a
// marshal failure must not abort the surrounding operation.
func ConvertStructToJson(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
