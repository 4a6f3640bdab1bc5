package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"string form", `"3m"`, 3 * time.Minute, false},
		{"seconds", `"10s"`, 10 * time.Second, false},
		{"nanoseconds number", `180000000000`, 3 * time.Minute, false},
		{"bad string", `"soon"`, 0, true},
		{"bool", `true`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration{3 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, `"3m0s"`, string(out))
}
