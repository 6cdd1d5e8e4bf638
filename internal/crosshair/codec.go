package crosshair

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every DecodeError.
var ErrMalformed = errors.New("malformed crosshair data")

// DecodeError describes why serialized grid data was rejected.
type DecodeError struct {
	Token  int    // 0-based index of the offending comma-separated token
	Reason string // Human-readable cause
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: token %d: %s", ErrMalformed, e.Token, e.Reason)
}

func (e *DecodeError) Unwrap() error { return ErrMalformed }

// Serialize encodes the grid as "<size>,<r0>,<g0>,<b0>,<a0>,...".
//
// The output is a single line with no surrounding whitespace and contains
// exactly 1 + 4*Size()*Size() integers.
func (g *Grid) Serialize() string {
	var b strings.Builder
	// Every channel takes at most 4 bytes including its comma.
	b.Grow(8 + len(g.pix)*16)
	b.WriteString(strconv.Itoa(g.size))
	for _, p := range g.pix {
		for _, v := range [4]uint8{p.R, p.G, p.B, p.A} {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(int(v)))
		}
	}
	return b.String()
}

// Deserialize replaces the grid with the contents of data.
//
// Parameters:
//   - data: Text in the format produced by Serialize. Whitespace around each
//     token is ignored so a trailing newline read from a file is accepted.
//
// Returns:
//   - error: A *DecodeError (matching ErrMalformed) if the size token is
//     missing, not an integer or outside [1, MaxSize], if any channel token is missing,
//     not an integer or outside [0,255], or if fewer than Size()*Size()*4
//     channel tokens are present.
//
// On error the grid is left exactly as it was. On success size and pixels are
// replaced together. Tokens beyond the last pixel are ignored.
func (g *Grid) Deserialize(data string) error {
	size, pix, err := decode(data)
	if err != nil {
		return err
	}
	g.size = size
	g.pix = pix
	return nil
}

// Decode parses serialized data into a new grid.
func Decode(data string) (*Grid, error) {
	size, pix, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &Grid{size: size, pix: pix}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (g *Grid) MarshalText() ([]byte, error) {
	return []byte(g.Serialize()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Grid) UnmarshalText(text []byte) error {
	return g.Deserialize(string(text))
}

func decode(data string) (int, []Pixel, error) {
	tokens := strings.Split(data, ",")

	sizeTok := strings.TrimSpace(tokens[0])
	if sizeTok == "" {
		return 0, nil, &DecodeError{Token: 0, Reason: "missing size"}
	}
	size, err := strconv.Atoi(sizeTok)
	if err != nil {
		return 0, nil, &DecodeError{Token: 0, Reason: fmt.Sprintf("invalid size %q", sizeTok)}
	}
	if size <= 0 {
		return 0, nil, &DecodeError{Token: 0, Reason: fmt.Sprintf("size %d is not positive", size)}
	}
	if size > MaxSize {
		return 0, nil, &DecodeError{Token: 0, Reason: fmt.Sprintf("size %d exceeds %d", size, MaxSize)}
	}

	// Check the token count before allocating so a huge size cannot force a
	// huge buffer. Division keeps the comparison free of overflow.
	channels := len(tokens) - 1
	if channels/4/size < size {
		return 0, nil, &DecodeError{
			Token:  len(tokens),
			Reason: fmt.Sprintf("want %d pixels for size %d, have %d channel values", size*size, size, channels),
		}
	}

	pix := make([]Pixel, size*size)
	for i := range pix {
		var ch [4]uint8
		for c := 0; c < 4; c++ {
			idx := 1 + i*4 + c
			tok := strings.TrimSpace(tokens[idx])
			v, err := strconv.Atoi(tok)
			if err != nil {
				return 0, nil, &DecodeError{Token: idx, Reason: fmt.Sprintf("invalid channel value %q", tok)}
			}
			if v < 0 || v > 255 {
				return 0, nil, &DecodeError{Token: idx, Reason: fmt.Sprintf("channel value %d outside [0,255]", v)}
			}
			ch[c] = uint8(v)
		}
		pix[i] = Pixel{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	}
	return size, pix, nil
}
