// utils.go — low-level helpers shared by the renderer, debug sink & exporters.
package utils

import "os"

///////////////////////////////////////////////////////////////////////////////
// Integer Formatters — strconv-Free Decimal Rendering
///////////////////////////////////////////////////////////////////////////////

// Utoa renders an unsigned integer as decimal ASCII. A 20-byte scratch
// buffer covers the full uint64 range; the result is a fresh string.
//
//go:nosplit
//go:inline
func Utoa(u uint64) string {
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	return string(buf[i:])
}

// Itoa renders a signed integer as decimal ASCII. Negative values get a
// leading '-'; math is done in unsigned space to survive MinInt64.
//
//go:nosplit
//go:inline
func Itoa(v int) string {
	if v < 0 {
		return "-" + Utoa(uint64(-int64(v)))
	}
	return Utoa(uint64(v))
}

// I64toa is Itoa for explicit 64-bit operands (tick indices, frontier
// positions, sentinel -1 clearing prices).
//
//go:nosplit
//go:inline
func I64toa(v int64) string {
	if v < 0 {
		return "-" + Utoa(uint64(-v))
	}
	return Utoa(uint64(v))
}

///////////////////////////////////////////////////////////////////////////////
// Hex Formatter — For Storage-Key Display
///////////////////////////////////////////////////////////////////////////////

const hexDigits = "0123456789abcdef"

// Hex32 renders a 32-byte storage key as 0x-prefixed lowercase hex.
//
//go:nosplit
//go:inline
func Hex32(k [32]byte) string {
	var buf [66]byte
	buf[0], buf[1] = '0', 'x'
	for i, b := range k {
		buf[2+i*2] = hexDigits[b>>4]
		buf[3+i*2] = hexDigits[b&0x0f]
	}
	return string(buf[:])
}

///////////////////////////////////////////////////////////////////////////////
// Raw Output — fmt-Free stderr/stdout Sinks
///////////////////////////////////////////////////////////////////////////////

// PrintWarning writes a pre-built message straight to stderr. No fmt, no
// buffering; the caller assembles the line by concatenation.
//
//go:nosplit
//go:inline
func PrintWarning(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Print writes a pre-built message straight to stdout. Used by the menu
// and renderer so display paths never pull in fmt's state machine.
//
//go:nosplit
//go:inline
func Print(msg string) {
	_, _ = os.Stdout.WriteString(msg)
}
