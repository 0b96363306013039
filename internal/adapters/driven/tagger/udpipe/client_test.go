package udpipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taggedResult = "# sent_id = 1\n# text = Da.\n" +
	"1\tDa\tda\tADV\tRgp\t_\t0\troot\t_\tSpaceAfter=No\n" +
	"2\t.\t.\tPUNCT\tPERIOD\t_\t1\tpunct\t_\t_\n\n"

func TestProcess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/process", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "romanian-rrt", r.Form.Get("model"))
		assert.Equal(t, "Da.", r.Form.Get("data"))
		json.NewEncoder(w).Encode(map[string]string{"result": taggedResult})
	}))
	defer server.Close()

	client := NewClient(server.URL, "romanian-rrt", 0, time.Second)
	sentences, err := client.Process(context.Background(), "Da.")
	require.NoError(t, err)
	require.Len(t, sentences, 1)
	require.Len(t, sentences[0].Tokens, 2)
	assert.Equal(t, "Da", sentences[0].Tokens[0].Form)
	assert.Equal(t, "root", sentences[0].Tokens[0].Deprel)
}

func TestProcess_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "romanian-rrt", 0, time.Second)
	_, err := client.Process(context.Background(), "Da.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestProcess_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Pacing waits on the context, so a cancelled context fails fast.
	client := NewClient("http://127.0.0.1:1", "romanian-rrt", 0.001, 0)
	client.limiter.Allow()
	_, err := client.Process(ctx, "Da.")
	assert.Error(t, err)
}
