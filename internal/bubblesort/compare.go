// Package bubblesort implements a step-wise Bubble Sort engine with pass
// history and a decision-validated practice mode.
package bubblesort

// Compare inspects values[i] and values[i+1]. When the left value is strictly
// greater it returns true and a new slice with the pair exchanged; otherwise
// it returns false and values itself. Equal values never swap, which keeps the
// sort stable. The caller guarantees i+1 < len(values).
func Compare(values []int, i int) (bool, []int) {
	if values[i] <= values[i+1] {
		return false, values
	}
	out := make([]int, len(values))
	copy(out, values)
	out[i], out[i+1] = out[i+1], out[i]
	return true, out
}
