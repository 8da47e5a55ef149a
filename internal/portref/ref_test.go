package portref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expectErr   error
		expectedRef Ref
	}{
		{
			name:        "simple reference",
			raw:         "add.result",
			expectedRef: Ref{Node: "add", Port: "result"},
		},
		{
			name:        "node identifier with dots uses last dot",
			raw:         "group.add.result",
			expectedRef: Ref{Node: "group.add", Port: "result"},
		},
		{
			name:        "function boundary input",
			raw:         "inputs.pos",
			expectedRef: Ref{Node: "inputs", Port: "pos"},
		},
		{
			name:      "error - empty string",
			raw:       "",
			expectErr: ErrMissingNode,
		},
		{
			name:      "error - no separator",
			raw:       "add",
			expectErr: ErrMissingPort,
		},
		{
			name:      "error - leading dot",
			raw:       ".result",
			expectErr: ErrMissingNode,
		},
		{
			name:      "error - trailing dot",
			raw:       "add.",
			expectErr: ErrMissingPort,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := Parse(tc.raw)

			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedRef, ref)
			assert.Equal(t, tc.raw, ref.String())
		})
	}
}

func TestIsZero(t *testing.T) {
	assert.True(t, Ref{}.IsZero())
	assert.False(t, New("a", "b").IsZero())
}
