package compare

// Similarity computes a normalized similarity ratio in [0,1] between two
// strings. Both inputs are folded through Normalize first, so case and
// whitespace differences score as identical.
//
// The ratio is 2*M / (len(a)+len(b)) where M is the total length of the
// matching blocks found by recursively taking the longest common substring
// and matching the pieces to its left and right (Ratcliff/Obershelp). The
// recursion is deterministic, which keeps merge confidences reproducible
// for audit.
func Similarity(a, b string) float64 {
	na := []rune(Normalize(a))
	nb := []rune(Normalize(b))

	if len(na) == 0 && len(nb) == 0 {
		return 1
	}
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}

	m := matchingTotal(na, nb)
	return float64(2*m) / float64(len(na)+len(nb))
}

// matchingTotal returns the summed length of all matching blocks.
func matchingTotal(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}

	total := size
	total += matchingTotal(a[:ai], b[:bi])
	total += matchingTotal(a[ai+size:], b[bi+size:])
	return total
}

// longestMatch finds the longest common substring of a and b, returning its
// start offsets and length. Ties resolve to the earliest match in a, then b.
func longestMatch(a, b []rune) (bestA, bestB, bestSize int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] holds the length of the common suffix ending at a[i-1], b[j-1]
	// for the previous row i-1.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestSize {
					bestSize = cur[j]
					bestA = i - bestSize
					bestB = j - bestSize
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}

	return bestA, bestB, bestSize
}
