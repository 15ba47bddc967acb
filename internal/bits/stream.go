package bits

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidBit = errors.New("bit streams may only contain the characters 0 and 1")
)

// Stream is an ordered sequence of bits, stored one bit per byte so patterns can be searched for without regard to
// byte alignment. Each element is either 0 or 1
type Stream []byte

// FromBytes expands every byte into 8 bits, most significant bit first
func FromBytes(b []byte) Stream {
	s := make(Stream, 0, len(b)*8)
	for _, v := range b {
		s = AppendByte(s, v)
	}
	return s
}

// AppendByte appends the 8 bits of v to s, most significant bit first
func AppendByte(s Stream, v byte) Stream {
	for shift := 7; shift >= 0; shift-- {
		s = append(s, (v>>uint(shift))&1)
	}
	return s
}

// Parse converts a textual representation such as "01000001" into a Stream
func Parse(text string) (Stream, error) {
	s := make(Stream, len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '0':
		case '1':
			s[i] = 1
		default:
			return nil, fmt.Errorf("%w: found %q at position %d", ErrInvalidBit, text[i], i)
		}
	}
	return s, nil
}

// MustParse is like Parse but panics on malformed input. Meant for package level constants
func MustParse(text string) Stream {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Bytes packs the stream back into bytes, 8 bits at a time. A trailing group with fewer than 8 bits is dropped
func (s Stream) Bytes() []byte {
	packed := make([]byte, 0, len(s)/8)
	for i := 0; i+8 <= len(s); i += 8 {
		packed = append(packed, s.byteAt(i))
	}
	return packed
}

func (s Stream) byteAt(offset int) byte {
	var b byte
	for _, bit := range s[offset : offset+8] {
		b = b<<1 | bit&1
	}
	return b
}

// Index returns the position of the first occurrence of pattern in s, or -1 if it is not present. The search is
// done bit by bit, so matches do not need to start on a byte boundary
func (s Stream) Index(pattern Stream) int {
	if len(pattern) == 0 {
		return 0
	}
	for i := 0; i+len(pattern) <= len(s); i++ {
		if s[i] != pattern[0] {
			continue
		}
		if s[i : i+len(pattern)].Equal(pattern) {
			return i
		}
	}
	return -1
}

func (s Stream) Equal(other Stream) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Stream) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, bit := range s {
		sb.WriteByte('0' + bit&1)
	}
	return sb.String()
}
