package s3

import (
	"errors"
	"testing"

	"github.com/aws/smithy-go"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "invoicebatch/a.pdf", want: "invoicebatch/a.pdf"},
		{name: "simple prefix", prefix: "root", key: "invoicebatch/a.pdf", want: "root/invoicebatch/a.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "invoicebatch/a.pdf", want: "root/invoicebatch/a.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/invoicebatch/a.pdf", want: "root/invoicebatch/a.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "results/run-1/a.json", want: "root/sub/results/run-1/a.json"},
		{name: "container only", prefix: "root", key: "results/", want: "root/results"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestIsPreconditionFailed(t *testing.T) {
	t.Parallel()

	conflict := &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
	if !isPreconditionFailed(conflict) {
		t.Fatalf("expected PreconditionFailed to be detected")
	}
	other := &smithy.GenericAPIError{Code: "AccessDenied"}
	if isPreconditionFailed(other) {
		t.Fatalf("AccessDenied must not map to ErrExists")
	}
	if isPreconditionFailed(errors.New("network")) {
		t.Fatalf("plain errors must not map to ErrExists")
	}
}
