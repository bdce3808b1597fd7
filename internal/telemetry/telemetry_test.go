package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/nhle/daedaly/internal/model"
)

func TestSetupDisabled(t *testing.T) {
	tel, err := Setup(context.Background(), model.TelemetryConfig{}, "test")
	require.NoError(t, err)
	assert.Nil(t, tel)
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupExportsSpans(t *testing.T) {
	var hits atomic.Int32
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/traces" {
			hits.Add(1)
			auth.Store(r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := context.Background()
	tel, err := Setup(ctx, model.TelemetryConfig{
		Endpoint:    srv.URL + "/",
		ServiceName: "daedaly-test",
		Headers:     map[string]string{"Authorization": "Bearer t0ken"},
	}, "v0.0.1")
	require.NoError(t, err)
	require.NotNil(t, tel)

	_, span := otel.Tracer("test").Start(ctx, "unit")
	span.End()

	require.NoError(t, tel.Shutdown(ctx))
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
	assert.Equal(t, "Bearer t0ken", auth.Load())
}

func TestNewResourceKeepsDefaultSchema(t *testing.T) {
	res, err := newResource("", "v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, resource.Default().SchemaURL(), res.SchemaURL())

	name, ok := res.Set().Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "daedaly", name.AsString())
	version, ok := res.Set().Value(attribute.Key("service.version"))
	require.True(t, ok)
	assert.Equal(t, "v1.2.3", version.AsString())
}
