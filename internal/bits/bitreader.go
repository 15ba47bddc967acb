package bits

// BitReader implements methods to help with consuming a Stream one bit at a time, in order
type BitReader struct {
	bits          Stream
	currentBitIdx int
}

func NewBitReader(s Stream) *BitReader {
	return &BitReader{
		bits: s,
	}
}

func (br *BitReader) BitsLeftToRead() int {
	return len(br.bits) - br.currentBitIdx
}

// ReadBit returns the next bit and whether one was available. Once the stream is exhausted it keeps returning 0, false
func (br *BitReader) ReadBit() (bit byte, ok bool) {
	if br.currentBitIdx >= len(br.bits) {
		return 0, false
	}
	bit = br.bits[br.currentBitIdx]
	br.currentBitIdx++
	return bit, true
}
