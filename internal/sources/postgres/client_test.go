package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeImages(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want []string
	}{
		{"array of urls", []byte(`["a.jpg","b.jpg"]`), []string{"a.jpg", "b.jpg"}},
		{"empty array", []byte(`[]`), []string{}},
		{"null column", nil, []string{}},
		{"json null", []byte(`null`), []string{}},
		{"wrong shape", []byte(`{"url":"a.jpg"}`), []string{}},
		{"garbage", []byte(`not json`), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeImages(tt.raw)
			assert.NotNil(t, got, "images must never be nil")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeImages(t *testing.T) {
	assert.Equal(t, `["a.jpg"]`, string(encodeImages([]string{"a.jpg"})))
	assert.Equal(t, `[]`, string(encodeImages(nil)))
	assert.Equal(t, `[]`, string(encodeImages([]string{})))
}
