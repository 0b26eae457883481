package provider

import "encoding/json"

// FlexID decodes a JSON string or number into a string. Provider mutation
// identifiers arrive as either type depending on provider and endpoint
// version; null and absent both decode to the empty string.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}
