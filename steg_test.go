package steg

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/spacemeshos/steg/bitstream"
	"github.com/spacemeshos/steg/codec"
	"github.com/spacemeshos/steg/pixels"
	"github.com/spacemeshos/steg/shared"
	"github.com/stretchr/testify/require"
)

func newGrid(req *require.Assertions, width, height int, seed int64) *pixels.RGB {
	g, err := pixels.NewRGB(width, height)
	req.NoError(err)
	rand.New(rand.NewSource(seed)).Read(g.Pix)
	return g
}

func TestRoundTrip(t *testing.T) {
	req := require.New(t)

	r := rand.New(rand.NewSource(1))
	for _, size := range []int{0, 1, 2, 17, 255, 1000} {
		g := newGrid(req, 64, 48, int64(size))
		payload := make([]byte, size)
		r.Read(payload)

		req.NoError(Embed(g, payload))

		extracted, err := Extract(g)
		req.NoError(err)
		req.Len(extracted, size)
		if size > 0 {
			req.Equal(payload, extracted)
		}
	}
}

func TestEmptyPayload(t *testing.T) {
	req := require.New(t)

	g := newGrid(req, 4, 4, 2)
	orig := g.Clone()
	req.NoError(Embed(g, nil))

	bits := codec.Decode(g)
	for _, bit := range bits[:32] {
		req.Equal(bitstream.Zero, bit)
	}
	// Only the prefix slots were touched.
	req.Equal(codec.Decode(orig)[32:], bits[32:])

	extracted, err := Extract(g)
	req.NoError(err)
	req.Empty(extracted)
}

func TestTooSmallForPrefix(t *testing.T) {
	req := require.New(t)

	g := newGrid(req, 2, 2, 3)
	orig := g.Clone()

	for _, payload := range [][]byte{nil, []byte("x")} {
		err := Embed(g, payload)
		req.True(errors.Is(err, shared.ErrCapacityExceeded))
		req.Equal(orig.Pix, g.Pix)
	}

	_, err := Extract(g)
	req.True(errors.Is(err, shared.ErrTruncatedStream))
}

func TestExactCapacity(t *testing.T) {
	req := require.New(t)

	g := newGrid(req, 4, 4, 4)
	orig := g.Clone()
	req.Equal(uint64(48), Capacity(g))
	req.Equal(uint64(2), MaxPayload(g))

	req.NoError(New().EmbedString(g, "Hi"))

	// Every slot carries a frame bit.
	expected := append(make([]uint8, 0, 48),
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0,
		0, 1, 0, 0, 1, 0, 0, 0,
		0, 1, 1, 0, 1, 0, 0, 1,
	)
	for i, bit := range codec.Decode(g) {
		req.Equal(expected[i], bit.Uint8(), "slot %d", i)
	}
	for i := range g.Pix {
		req.Equal(orig.Pix[i]&0xFE, g.Pix[i]&0xFE)
	}

	message, err := New().ExtractString(g)
	req.NoError(err)
	req.Equal("Hi", message)

	// One more byte does not fit.
	err = Embed(orig.Clone(), []byte("Hi!"))
	var cerr *shared.CapacityError
	req.True(errors.As(err, &cerr))
	req.Equal(uint64(56), cerr.Required)
	req.Equal(uint64(48), cerr.Available)
}

func TestCapacityBoundary(t *testing.T) {
	req := require.New(t)

	// 8x4 grid: 96 slots, exactly 32 + 8*8.
	g := newGrid(req, 8, 4, 5)
	req.Equal(uint64(8), MaxPayload(g))

	payload := []byte("12345678")
	req.NoError(Embed(g.Clone(), payload))
	req.True(errors.Is(Embed(g.Clone(), append(payload, '9')), shared.ErrCapacityExceeded))
}

func TestMalformedCarrier(t *testing.T) {
	req := require.New(t)

	// All LSBs set: the prefix declares 2^32-1 bytes.
	g, err := pixels.NewRGB(10, 10)
	req.NoError(err)
	for i := range g.Pix {
		g.Pix[i] = 0xFF
	}

	_, err = Extract(g)
	req.True(errors.Is(err, shared.ErrMalformedCarrier))

	var merr *shared.MalformedCarrierError
	req.True(errors.As(err, &merr))
	req.Equal(uint64(1<<32-1), merr.Declared)
	req.Equal(uint64(300), merr.Capacity)
}

func TestMalformedCarrier_JustOver(t *testing.T) {
	req := require.New(t)

	g := newGrid(req, 4, 4, 6)
	req.NoError(Embed(g, []byte("Hi")))

	// Bump the declared length from 2 to 3 by setting the LSB of slot 31 (pixel (2, 2), green).
	r, gr, b := g.RGB(2, 2)
	g.SetRGB(2, 2, r, gr|1, b)

	_, err := Extract(g)
	req.True(errors.Is(err, shared.ErrMalformedCarrier))
}

func TestDeterminism(t *testing.T) {
	req := require.New(t)

	g := newGrid(req, 20, 10, 7)
	a, b := g.Clone(), g.Clone()
	req.NoError(Embed(a, []byte("deterministic")))
	req.NoError(Embed(b, []byte("deterministic")))
	req.Equal(a.Pix, b.Pix)
}

func TestConcurrent(t *testing.T) {
	req := require.New(t)
	s := New()

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g, err := pixels.NewRGB(32, 32)
			if err != nil {
				results[i] = err
				return
			}
			payload := []byte{byte(i), byte(i * 3)}
			if err := s.Embed(g, payload); err != nil {
				results[i] = err
				return
			}
			out, err := s.Extract(g)
			if err != nil {
				results[i] = err
				return
			}
			if string(out) != string(payload) {
				results[i] = errors.New("payload mismatch")
			}
		}(i)
	}
	wg.Wait()

	for _, err := range results {
		req.NoError(err)
	}
}

type recordingLogger struct {
	shared.DisabledLogger
	debug []string
}

func (l *recordingLogger) Debug(format string, args ...any) {
	l.debug = append(l.debug, format)
}

func TestWithLogger(t *testing.T) {
	req := require.New(t)

	logger := &recordingLogger{}
	s := New(WithLogger(logger))
	g := newGrid(req, 8, 8, 8)

	req.NoError(s.Embed(g, []byte("x")))
	_, err := s.Extract(g)
	req.NoError(err)
	req.Len(logger.debug, 2)
}
