package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hupe1980/vecbin/persistence"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

var edgeValues = []int64{0, 1, -1, math.MaxInt64, math.MinInt64, math.MaxInt32, math.MinInt32}

// IntVectors returns num vectors of the given dimension with values drawn
// from the whole int64 range, with edge values mixed in.
func (r *RNG) IntVectors(num, dimensions int) [][]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]int64, num)
	for i := range out {
		vec := make([]int64, dimensions)
		for j := range vec {
			if r.rand.Intn(8) == 0 {
				vec[j] = edgeValues[r.rand.Intn(len(edgeValues))]
			} else {
				vec[j] = int64(r.rand.Uint64())
			}
		}
		out[i] = vec
	}
	return out
}

// GaussianIntVectors returns num points drawn around randomly chosen
// centers, truncated to integers like typical k-means test inputs.
func (r *RNG) GaussianIntVectors(num int, centers [][]int64, stdDev float64) [][]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]int64, num)
	for i := range out {
		c := centers[r.rand.Intn(len(centers))]
		vec := make([]int64, len(c))
		for j, mu := range c {
			vec[j] = int64(float64(mu) + r.rand.NormFloat64()*stdDev)
		}
		out[i] = vec
	}
	return out
}

// DatasetJSON renders vectors as a converter input document. Extra
// top-level keys are emitted in sorted order before "vectors".
func DatasetJSON(vectors [][]int64, extra map[string]string) []byte {
	var sb strings.Builder
	sb.WriteByte('{')

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(strconv.Quote(k))
		sb.WriteString(": ")
		sb.WriteString(extra[k])
		sb.WriteString(", ")
	}

	sb.WriteString(`"vectors": [`)
	for i, vec := range vectors {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		for j, v := range vec {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatInt(v, 10))
		}
		sb.WriteByte(']')
	}
	sb.WriteString("]}")
	return []byte(sb.String())
}

// Flatten concatenates vectors in order.
func Flatten(vectors [][]int64) []int64 {
	var out []int64
	for _, v := range vectors {
		out = append(out, v...)
	}
	return out
}

// Decode parses the packed layout back into its header and values.
func Decode(data []byte) (persistence.Header, []int64, error) {
	if len(data) < persistence.HeaderSize {
		return persistence.Header{}, nil, fmt.Errorf("%w: %d bytes, header needs %d", persistence.ErrTruncated, len(data), persistence.HeaderSize)
	}

	order := persistence.ByteOrder
	hdr := persistence.Header{
		Dimension: order.Uint32(data[0:4]),
		Count:     order.Uint64(data[4:12]),
	}
	if hdr.Dimension == 0 {
		return hdr, nil, persistence.ErrInvalidHeader
	}

	want := persistence.EncodedSize(hdr.Dimension, hdr.Count)
	if len(data) != want {
		return hdr, nil, fmt.Errorf("%w: %d bytes, layout needs %d", persistence.ErrTruncated, len(data), want)
	}

	body := data[persistence.HeaderSize:]
	values := make([]int64, len(body)/persistence.ScalarSize)
	for i := range values {
		values[i] = int64(order.Uint64(body[i*persistence.ScalarSize:]))
	}
	return hdr, values, nil
}
