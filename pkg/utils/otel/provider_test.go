package otel

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func TestGetSampler(t *testing.T) {
	tests := []struct {
		sampler     string
		samplerArg  string
		wantSampler sdktrace.Sampler
		wantError   string
	}{
		{"", "", sdktrace.ParentBased(sdktrace.AlwaysSample()), ""},
		{"always_on", "", sdktrace.AlwaysSample(), ""},
		{"always_off", "", sdktrace.NeverSample(), ""},
		{"parentbased_always_off", "", sdktrace.ParentBased(sdktrace.NeverSample()), ""},
		{"traceidratio", "0.5", sdktrace.TraceIDRatioBased(0.5), ""},
		{"traceidratio", "", nil, `invalid sampler arg: strconv.ParseFloat: parsing "": invalid syntax`},
		{"parentbased_traceidratio", "0.01", sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.01)), ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.sampler, tt.samplerArg), func(t *testing.T) {
			t.Setenv(OtelTracesSampler, tt.sampler)
			t.Setenv(OtelTracesSamplerArg, tt.samplerArg)
			got, err := GetSampler()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			if !reflect.DeepEqual(got, tt.wantSampler) {
				t.Errorf("GetSampler() = %#v, want %#v", got, tt.wantSampler)
			}
		})
	}
}

func TestGetTraceExporterDisabled(t *testing.T) {
	t.Setenv(OtelEndpointEnvVar, "")
	exporter, err := getTraceExporter(context.Background(), zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, exporter)
}

func TestInitProviderWithoutCollector(t *testing.T) {
	t.Setenv(OtelEndpointEnvVar, "")
	shutdown, err := InitProvider(context.Background(), zap.NewNop(), "tweetpatch-test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown(context.Background())
}
