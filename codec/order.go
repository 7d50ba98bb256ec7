package codec

import "encoding/binary"

// Order selects the byte order of multi-byte values.
type Order uint8

const (
	// Native is the byte order of the host.
	Native Order = iota
	LittleEndian
	BigEndian
)

func (o Order) String() string {
	switch o {
	case Native:
		return "native"
	case LittleEndian:
		return "le"
	case BigEndian:
		return "be"
	default:
		return "unknown"
	}
}

// ParseOrder parses "native", "le" or "be".
func ParseOrder(s string) (Order, bool) {
	switch s {
	case "native", "ne", "":
		return Native, true
	case "le", "little":
		return LittleEndian, true
	case "be", "big":
		return BigEndian, true
	}
	return Native, false
}

func (o Order) byteOrder() binary.ByteOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case BigEndian:
		return binary.BigEndian
	default:
		return binary.NativeEndian
	}
}
