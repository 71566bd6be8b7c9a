package prompt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return &Prompter{In: strings.NewReader(input), Out: &out}, &out
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		retries int
	}{
		{"valid", "42\n", 42, 0},
		{"surrounding space", "  7  \n", 7, 0},
		{"no trailing newline", "9", 9, 0},
		{"garbage then valid", "abc\n12\n", 12, 1},
		{"zero and negative rejected", "0\n-3\n5\n", 5, 2},
		{"blank lines skipped", "\n\n3\n", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newPrompter(tt.input)
			got, err := p.PositiveInt("Enter number of tasks")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.retries, strings.Count(out.String(), "Invalid input"))
		})
	}
}

func TestIntInRange(t *testing.T) {
	p, out := newPrompter("0\n17\nx\n8\n")
	got, err := p.IntInRange("Enter number of workers", 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, got)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid input"))
	assert.Contains(t, out.String(), "17 is not between 1 and 8")
}

func TestMode(t *testing.T) {
	p, _ := newPrompter("3\n2\n")
	got, err := p.Mode("Select mode")
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestPrompter_EOF(t *testing.T) {
	p, _ := newPrompter("")
	_, err := p.PositiveInt("Enter number of tasks")
	assert.ErrorIs(t, err, ErrNoInput)

	p, _ = newPrompter("nope\n")
	_, err = p.IntInRange("Enter number of workers", 1, 4)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestPrompter_SequentialQuestions(t *testing.T) {
	p, out := newPrompter("1000\n4\n1\n")

	tasks, err := p.PositiveInt("Enter number of tasks")
	require.NoError(t, err)
	workers, err := p.IntInRange("Enter number of workers", 1, 8)
	require.NoError(t, err)
	mode, err := p.Mode("Select mode")
	require.NoError(t, err)

	assert.Equal(t, []int{1000, 4, 1}, []int{tasks, workers, mode})
	assert.Contains(t, out.String(), "Enter number of tasks: ")
	assert.Contains(t, out.String(), "Select mode (1 = plain, 2 = simulated load): ")
}

func TestIsInteractive(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsInteractive(f))
}
