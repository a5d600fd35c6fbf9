package xsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "sequential", PolicySequential.String())
	assert.Equal(t, "concurrent", PolicyConcurrent.String())
	assert.Equal(t, "pooled", PolicyPooled.String())
	assert.Equal(t, "Policy(7)", Policy(7).String())
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "sequential", want: PolicySequential},
		{in: "Concurrent", want: PolicyConcurrent},
		{in: "unmanaged", want: PolicyConcurrent},
		{in: "  POOLED ", want: PolicyPooled},
		{in: "", wantErr: true},
		{in: "parallel", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicy_Text(t *testing.T) {
	for _, p := range Policies() {
		text, err := p.MarshalText()
		require.NoError(t, err)

		var got Policy
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, p, got)
	}

	_, err := Policy(-1).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	var p Policy
	assert.ErrorIs(t, p.UnmarshalText([]byte("bogus")), ErrUnknownPolicy)
}
