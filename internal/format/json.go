package format

import "encoding/json"

// JSON is the textual structured format.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (j JSON) Marshal(v any) ([]byte, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, formatErr(j.Name(), err)
	}
	return out, nil
}

func (j JSON) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return formatErr(j.Name(), err)
	}
	return nil
}
