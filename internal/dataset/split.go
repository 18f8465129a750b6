// Package dataset splits a JSONL hand log into train/val/test subsets
// using a seeded, reproducible permutation.
package dataset

import (
	"bufio"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/lox/axiomind/internal/cards"
)

// ErrSplitsMustSumTo100 is returned when train+val+test don't sum to
// either 1.0 (unit fractions) or 100 (percentages), within epsilon.
var ErrSplitsMustSumTo100 = errors.New("dataset: split fractions must sum to 1.0 or 100")

const epsilon = 0.01

// NormalizeFractions accepts train/val/test either as unit fractions
// summing to 1.0 or as percentages summing to 100, and always returns
// unit fractions.
func NormalizeFractions(train, val, test float64) (float64, float64, float64, error) {
	sum := train + val + test
	switch {
	case math.Abs(sum-1.0) <= epsilon:
		return train, val, test, nil
	case math.Abs(sum-100.0) <= epsilon:
		return train / 100, val / 100, test / 100, nil
	default:
		return 0, 0, 0, ErrSplitsMustSumTo100
	}
}

// Split partitions every line of inputPath into outdir/train.jsonl,
// outdir/val.jsonl, and outdir/test.jsonl.
//
// Assignment is a seeded Fisher-Yates permutation of the line indices,
// cut at the cumulative fraction boundaries; the same seed always
// produces the same assignment. Split always reads every non-empty
// line of the input into memory before partitioning, whatever the
// input's size; there is no streaming path, so peak memory grows with
// the input.
func Split(inputPath, outdir string, trainFrac, valFrac, testFrac float64, seed uint64) error {
	train, val, _, err := NormalizeFractions(trainFrac, valFrac, testFrac)
	if err != nil {
		return err
	}

	lines, err := readLines(inputPath)
	if err != nil {
		return err
	}
	n := len(lines)

	perm := permutation(n, seed)
	trainCount := clamp(int(math.Round(float64(n)*train)), 0, n)
	valCount := clamp(int(math.Round(float64(n)*val)), 0, n-trainCount)

	trainIdx := sortedCopy(perm[:trainCount])
	valIdx := sortedCopy(perm[trainCount : trainCount+valCount])
	testIdx := sortedCopy(perm[trainCount+valCount:])

	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return err
	}
	if err := writeSubset(filepath.Join(outdir, "train.jsonl"), lines, trainIdx); err != nil {
		return err
	}
	if err := writeSubset(filepath.Join(outdir, "val.jsonl"), lines, valIdx); err != nil {
		return err
	}
	return writeSubset(filepath.Join(outdir, "test.jsonl"), lines, testIdx)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortedCopy(idx []int) []int {
	out := append([]int(nil), idx...)
	sort.Ints(out)
	return out
}

// permutation returns a seeded Fisher-Yates shuffle of 0..n-1.
func permutation(n int, seed uint64) []int {
	rng := cards.NewChaCha8(seed)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(rng.Uint64() % uint64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func writeSubset(path string, lines []string, idx []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, i := range idx {
		if _, err := w.WriteString(lines[i]); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
