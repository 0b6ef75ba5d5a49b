package optimize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
)

// MarshalJSON creates a JSON object with the parameter values. The
// parameter order is preserved.
func (p FloatParameters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, par := range p {
		if i != 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(par.Name())
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(par.Get())
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON sets the parameter values from a JSON object.
func (p *FloatParameters) UnmarshalJSON(data []byte) error {
	var values map[string]float64
	err := json.Unmarshal(data, &values)
	if err != nil {
		return err
	}
	return p.SetFromMap(values)
}

// SetFromMap sets the parameter values from a name to value map.
// Extra map entries are ignored, a missing parameter is an error.
func (p *FloatParameters) SetFromMap(values map[string]float64) error {
	for _, par := range *p {
		v, ok := values[par.Name()]
		if !ok {
			return fmt.Errorf("no value for parameter %s", par.Name())
		}
		par.Set(v)
	}
	return nil
}

// ReadFromJSON reads the parameter values from a JSON file.
func (p *FloatParameters) ReadFromJSON(filename string) error {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, p)
}
