package typescript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameToLocation(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Location
		wantOK bool
	}{
		{
			name:   "api group",
			input:  "io.k8s.api.core.v1.Pod",
			want:   Location{Path: "core/v1.ts", Name: "Pod"},
			wantOK: true,
		},
		{
			name:   "apimachinery apis",
			input:  "io.k8s.apimachinery.pkg.apis.meta.v1.ObjectMeta",
			want:   Location{Path: "meta/v1.ts", Name: "ObjectMeta"},
			wantOK: true,
		},
		{
			name:   "apimachinery pkg",
			input:  "io.k8s.apimachinery.pkg.api.resource.Quantity",
			want:   Location{Path: "api/resource.ts", Name: "Quantity"},
			wantOK: true,
		},
		{
			name:   "apiextensions",
			input:  "io.k8s.apiextensions-apiserver.pkg.apis.apiextensions.v1beta1.JSONSchemaProps",
			want:   Location{Path: "apiextensions/v1beta1.ts", Name: "JSONSchemaProps"},
			wantOK: true,
		},
		{
			name:   "apis prefix wins over pkg prefix",
			input:  "io.k8s.apimachinery.pkg.apis.meta.v1.Time",
			want:   Location{Path: "meta/v1.ts", Name: "Time"},
			wantOK: true,
		},
		{
			name:   "single module segment",
			input:  "io.k8s.apimachinery.pkg.version.Info",
			want:   Location{Path: "version.ts", Name: "Info"},
			wantOK: true,
		},
		{
			name:   "unknown namespace",
			input:  "io.k8s.kube-aggregator.pkg.apis.apiregistration.v1.APIService",
			wantOK: false,
		},
		{
			name:   "no module segment",
			input:  "io.k8s.api.Pod",
			wantOK: false,
		},
		{
			name:   "prefix only",
			input:  "io.k8s.api.",
			wantOK: false,
		},
		{
			name:   "empty segment",
			input:  "io.k8s.api.core..Pod",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NameToLocation(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNameToLocation_RoundTrip(t *testing.T) {
	// Test: for prefix + suffix the type name is the last suffix segment and the path is the
	// remaining segments joined with "/" plus the extension, on every call
	suffixes := []string{
		"core.v1.Pod",
		"apps.v1beta2.Deployment",
		"storage.v1alpha1.VolumeAttachment",
		"a.b.c.d.E",
	}

	for _, prefix := range namespacePrefixes {
		for _, suffix := range suffixes {
			segments := strings.Split(suffix, ".")
			want := Location{
				Path: strings.Join(segments[:len(segments)-1], "/") + ModuleExtension,
				Name: segments[len(segments)-1],
			}

			first, ok := NameToLocation(prefix + suffix)
			if !assert.True(t, ok, prefix+suffix) {
				continue
			}
			second, _ := NameToLocation(prefix + suffix)

			// Names under a later prefix may also start with an earlier one; only check
			// the ones where this prefix is the first match.
			if simplified, _ := SimplifyName(prefix + suffix); simplified == suffix {
				assert.Equal(t, want, first, prefix+suffix)
			}
			assert.Equal(t, first, second)
		}
	}
}

func TestSimplifyName(t *testing.T) {
	got, ok := SimplifyName("io.k8s.api.batch.v1.Job")
	assert.True(t, ok)
	assert.Equal(t, "batch.v1.Job", got)

	_, ok = SimplifyName("com.github.example.Job")
	assert.False(t, ok)
}
