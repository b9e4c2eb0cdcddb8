package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// Elevations are biased by +3 into non-negative varints ([-3,5] -> [0,8]).
const elevationBias = 3

// EncodeElevations encodes a row-major elevation grid into
// base64(varint pairs). The pairs are (biased_elevation, run_len) repeated.
func EncodeElevations(elevations []int8) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(elevations) {
		e := elevations[i]
		run := 1
		for j := i + 1; j < len(elevations) && elevations[j] == e && run < 1<<31; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(int(e)+elevationBias))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func DecodeElevations(b64 string) ([]int8, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []int8
	for i := 0; i < len(raw); {
		e, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if e > 8 {
			return nil, fmt.Errorf("elevation out of range: %d", e)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, int8(int(e)-elevationBias))
		}
	}
	return out, nil
}
