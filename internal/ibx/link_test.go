package ibx

import (
	"net/url"
	"testing"
)

func TestStandardizeLink(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://search.example.com/results?specialty=cardiology")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		href    string
		want    string
		wantErr bool
	}{
		{
			name: "absolute link passes through",
			href: "https://other.example.com/provider/1",
			want: "https://other.example.com/provider/1",
		},
		{
			name: "fragment link attaches to the base",
			href: "#/provider/123",
			want: "https://search.example.com/results?specialty=cardiology#/provider/123",
		},
		{
			name: "relative link resolves against the base",
			href: "provider/123",
			want: "https://search.example.com/provider/123",
		},
		{
			name: "rooted relative link resolves against the host",
			href: "/v2/provider/123",
			want: "https://search.example.com/v2/provider/123",
		},
		{
			name:    "empty link is an error",
			href:    "",
			wantErr: true,
		},
		{
			name:    "unparsable link is an error",
			href:    "http://%zz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := StandardizeLink(base, tt.href)
			if tt.wantErr {
				if err == nil {
					t.Errorf("StandardizeLink(%q) expected error, got %q", tt.href, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("StandardizeLink(%q) failed: %v", tt.href, err)
			}
			if got != tt.want {
				t.Errorf("StandardizeLink(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}

	t.Run("relative link without base is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := StandardizeLink(nil, "provider/1"); err == nil {
			t.Error("expected error for relative link with nil base")
		}
	})

	t.Run("fragment link without base is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := StandardizeLink(nil, "#/provider/1"); err == nil {
			t.Error("expected error for fragment link with nil base")
		}
	})
}
