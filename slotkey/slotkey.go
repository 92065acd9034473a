// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: slotkey.go — Physical Storage-Key Derivation
//
// Purpose:
//   - Derives the 32-byte persistent-store key a packed word would occupy
//     under the Solidity mapping layout: keccak256(pad32(wordIndex) ||
//     pad32(baseSlot)).
//   - Reports and database exports attach these keys to itemized gas rows so
//     each charge names the physical word it models.
//
// Notes:
//   - Display/export concern only. The metered store addresses words by
//     index; hashing never participates in the gas accounting itself.
// ─────────────────────────────────────────────────────────────────────────────

package slotkey

import (
	"golang.org/x/crypto/sha3"

	"main/utils"
)

// pad32 writes v big-endian into the low 8 bytes of a zeroed 32-byte word.
//
//go:nosplit
//go:inline
func pad32(v uint64) [32]byte {
	var w [32]byte
	w[24] = byte(v >> 56)
	w[25] = byte(v >> 48)
	w[26] = byte(v >> 40)
	w[27] = byte(v >> 32)
	w[28] = byte(v >> 24)
	w[29] = byte(v >> 16)
	w[30] = byte(v >> 8)
	w[31] = byte(v)
	return w
}

// ForWord derives the storage key of a word index within the mapping
// rooted at baseSlot. Legacy keccak, not NIST SHA3 — the padding byte
// differs and only keccak matches the modeled store.
func ForWord(wordIndex uint64, baseSlot uint64) [32]byte {
	h := sha3.NewLegacyKeccak256()
	idx := pad32(wordIndex)
	base := pad32(baseSlot)
	_, _ = h.Write(idx[:])
	_, _ = h.Write(base[:])

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

// Hex renders a derived key the way reports print it.
//
//go:nosplit
//go:inline
func Hex(key [32]byte) string {
	return utils.Hex32(key)
}
