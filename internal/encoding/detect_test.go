package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthwise/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.Detect(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestDetect(t *testing.T) {
	const note = `[{"note":"Café à crédit"}]`

	tests := []struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}{
		{
			name:        "UTF8Passthrough",
			input:       []byte(note),
			want:        note,
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, note...),
			want:        note,
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, '[', 0, ']', 0},
			want:        "[]",
			wantCharset: encoding.CharsetUTF16LE,
		},
		{
			name:        "UTF16BE",
			input:       []byte{0xFE, 0xFF, 0, '[', 0, ']'},
			want:        "[]",
			wantCharset: encoding.CharsetUTF16BE,
		},
		{
			// "Café" with é as 0xE9; the single-byte charset guess may vary
			name:  "Latin1",
			input: []byte{'"', 'C', 'a', 'f', 0xE9, '"'},
			want:  `"Café"`,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.CharsetUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := readAll(t, tt.input)
			assert.Equal(t, tt.want, got)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestDetect_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte(`{"note":"ok"},`), 1000)

	r, charset, err := encoding.Detect(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.CharsetUTF8, charset)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}
