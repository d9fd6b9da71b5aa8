package update

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNormalizeVersion(t *testing.T) {
	tests := map[string]string{
		"v1.2.3":   "1.2.3",
		" 1.2.3\n": "1.2.3",
		"dev":      "dev",
		"":         "",
	}
	for in, want := range tests {
		if got := NormalizeVersion(in); got != want {
			t.Errorf("NormalizeVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheckForUpdate_DevVersion(t *testing.T) {
	for _, v := range []string{"dev", "", "  "} {
		rel, err := CheckForUpdate(context.Background(), v)
		if !errors.Is(err, ErrDevVersion) {
			t.Errorf("CheckForUpdate(%q) error = %v, want ErrDevVersion", v, err)
		}
		if rel != nil {
			t.Errorf("CheckForUpdate(%q) release = %v, want nil", v, rel)
		}
	}
}

func TestApplyUpdate_NoRelease(t *testing.T) {
	if err := ApplyUpdate(context.Background(), nil); !errors.Is(err, ErrNoRelease) {
		t.Errorf("ApplyUpdate(nil) error = %v, want ErrNoRelease", err)
	}
	if err := ApplyUpdate(context.Background(), &Release{Version: "1.0.0"}); !errors.Is(err, ErrNoRelease) {
		t.Errorf("ApplyUpdate(empty) error = %v, want ErrNoRelease", err)
	}
}

func TestFailureHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		goos string
		want string
	}{
		{"nil", nil, "linux", ""},
		{"permission unix", errors.New("open /usr/local/bin/orl: permission denied"), "linux", "sudo orl update"},
		{"permission windows", errors.New("Access is denied."), "windows", "Administrator"},
		{"checksum", errors.New("checksum mismatch"), "darwin", ReleasesURL},
		{"other", errors.New("connection reset"), "linux", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FailureHint(tt.err, tt.goos)
			if tt.want == "" {
				if got != "" {
					t.Errorf("FailureHint() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("FailureHint() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
