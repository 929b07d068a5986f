package embedding

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabricksGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req databricksEmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "printer offline", req.Input)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float64{3, 4}},
			},
		})
	}))
	defer srv.Close()

	provider := NewDatabricksProvider(srv.URL, "test-key")

	vec, err := provider.Generate("printer offline")
	require.NoError(t, err)
	require.Len(t, vec, 2)

	// The raw [3, 4] vector comes back unit length.
	assert.InDelta(t, 0.6, float64(vec[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(vec[1]), 1e-6)
}

func TestDatabricksGenerateEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not ready", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	provider := NewDatabricksProvider(srv.URL, "test-key")

	_, err := provider.Generate("anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestDatabricksGenerateEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	provider := NewDatabricksProvider(srv.URL, "test-key")

	_, err := provider.Generate("anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing data")
}

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
	}{
		{name: "simple", in: []float32{3, 4}},
		{name: "already unit", in: []float32{1, 0, 0}},
		{name: "negative components", in: []float32{-2, 2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := normalizeVector(tt.in)

			var magnitude float64
			for _, v := range out {
				magnitude += float64(v) * float64(v)
			}
			assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
		})
	}
}

func TestNormalizeVectorZero(t *testing.T) {
	out := normalizeVector([]float32{0, 0, 0})
	assert.Equal(t, []float32{0, 0, 0}, out)
}
