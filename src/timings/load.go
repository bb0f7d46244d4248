package timings

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON encodes the sample as a [t, usage] pair.
func (c CPUSample) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.T, c.Usage})
}

// UnmarshalJSON decodes a [t, usage] pair.
func (c *CPUSample) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("cpu sample: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("cpu sample: want [t, usage], got %d values", len(pair))
	}
	c.T, c.Usage = pair[0], pair[1]
	return nil
}

// Decode reads a JSON trace and validates it.
func Decode(r io.Reader) (*Trace, error) {
	var t Trace
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trace: %w", err)
	}
	return &t, nil
}

// Load opens and decodes a trace file.
func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Encode writes the trace in the format Decode reads.
func Encode(w io.Writer, t *Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
