package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/promptlab/internal/providers"
)

type stubProvider struct {
	chunks []string
	err    error
	closed bool
}

func (s *stubProvider) Stream(ctx context.Context, req providers.StreamRequest, cb providers.StreamCallbacks) error {
	for _, c := range s.chunks {
		if err := cb.OnChunk(providers.ChatMessage{Role: providers.RoleAssistant, Content: c}); err != nil {
			return err
		}
	}
	if s.err != nil {
		return s.err
	}
	if cb.OnComplete != nil {
		return cb.OnComplete(providers.StreamMetadata{Model: req.Model, Done: true, Chunks: len(s.chunks)})
	}
	return nil
}

func (s *stubProvider) Close() error {
	s.closed = true
	return nil
}

func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestProviderRecordsSuccess(t *testing.T) {
	agg := NewAggregator(prometheus.NewRegistry())
	stub := &stubProvider{chunks: []string{"a", "b", "c"}}
	p := NewProvider(stub, agg)
	p.now = fakeClock(time.Second)

	var got []string
	completed := false
	err := p.Stream(context.Background(), providers.StreamRequest{Model: "m1"}, providers.StreamCallbacks{
		OnChunk: func(msg providers.ChatMessage) error {
			got = append(got, msg.Content)
			return nil
		},
		OnComplete: func(providers.StreamMetadata) error {
			completed = true
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.True(t, completed)

	assert.Equal(t, 1.0, testutil.ToFloat64(agg.requests.WithLabelValues("m1", StatusSuccess)))
	assert.Equal(t, 3.0, testutil.ToFloat64(agg.chunks.WithLabelValues("m1")))
	assert.Equal(t, 1, testutil.CollectAndCount(agg.firstByte))
}

func TestProviderRecordsError(t *testing.T) {
	agg := NewAggregator(prometheus.NewRegistry())
	boom := errors.New("boom")
	p := NewProvider(&stubProvider{err: boom}, agg)

	err := p.Stream(context.Background(), providers.StreamRequest{Model: "m2"}, providers.StreamCallbacks{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1.0, testutil.ToFloat64(agg.requests.WithLabelValues("m2", StatusError)))
	assert.Equal(t, 0, testutil.CollectAndCount(agg.firstByte))
}

func TestProviderClosePassesThrough(t *testing.T) {
	stub := &stubProvider{}
	require.NoError(t, NewProvider(stub, nil).Close())
	assert.True(t, stub.closed)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	agg := NewAggregator(reg)
	agg.Record("", StatusSuccess, time.Second, 0, 2)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `promptlab_llm_requests_total{model="unknown",status="success"} 1`), string(body))

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
