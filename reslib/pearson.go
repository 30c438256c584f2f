package reslib

// pearsonTable is the fixed 256-byte permutation the string identifier hash
// must use verbatim: it is the compatibility surface of this package (see
// §6 of the design notes this package implements) — changing a single
// entry changes every stored string hash.
var pearsonTable = [256]byte{
	39, 159, 180, 252, 71, 6, 13, 164, 232, 35, 226, 155, 98, 120, 154, 69,
	157, 24, 137, 29, 147, 78, 121, 85, 112, 8, 248, 130, 55, 117, 190, 160,
	176, 131, 228, 64, 211, 106, 38, 27, 140, 30, 88, 210, 227, 104, 84, 77,
	75, 107, 169, 138, 195, 184, 70, 90, 61, 166, 7, 244, 165, 108, 219, 51,
	9, 139, 209, 40, 31, 202, 58, 179, 116, 33, 207, 146, 76, 60, 242, 124,
	254, 197, 80, 167, 153, 145, 129, 233, 132, 48, 246, 86, 156, 177, 36, 187,
	45, 1, 96, 18, 19, 62, 185, 234, 99, 16, 218, 95, 128, 224, 123, 253,
	42, 109, 4, 247, 72, 5, 151, 136, 0, 152, 148, 127, 204, 133, 17, 14,
	182, 217, 54, 199, 119, 174, 82, 57, 215, 41, 114, 208, 206, 110, 239, 23,
	189, 15, 3, 22, 188, 79, 113, 172, 28, 2, 222, 21, 251, 225, 237, 105,
	102, 32, 56, 181, 126, 83, 230, 53, 158, 52, 59, 213, 118, 100, 67, 142,
	220, 170, 144, 115, 205, 26, 125, 168, 249, 66, 175, 97, 255, 92, 229, 91,
	214, 236, 178, 243, 46, 44, 201, 250, 135, 186, 150, 221, 163, 216, 162, 43,
	11, 101, 34, 37, 194, 25, 50, 12, 87, 198, 173, 240, 193, 171, 143, 231,
	111, 141, 191, 103, 74, 245, 223, 20, 161, 235, 122, 63, 89, 149, 73, 238,
	134, 68, 93, 183, 241, 81, 196, 49, 192, 65, 212, 94, 203, 10, 200, 47,
}

// pearsonHash is a four-lane Pearson-style permuted-byte hash over the
// bytes of s, terminating at the first NUL byte (mirroring the
// null-terminated byte-string identifiers this package indexes). Four 8-bit
// accumulators are fed the input in round-robin order and composed into a
// 32-bit value: h = h3<<24 | h2<<16 | h1<<8 | h0.
//
// A nil s (the Go analogue of a null backing pointer) hashes to 0.
func pearsonHash(s *string) uint32 {
	if s == nil {
		return 0
	}
	var h [4]byte
	lane := 0
	for i := 0; i < len(*s); i++ {
		c := (*s)[i]
		if c == 0 {
			break
		}
		h[lane] = pearsonTable[h[lane]^c]
		lane = (lane + 1) & 3
	}
	return uint32(h[3])<<24 | uint32(h[2])<<16 | uint32(h[1])<<8 | uint32(h[0])
}
