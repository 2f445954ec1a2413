package viewer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSystemOpener_Command(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{goos: "darwin", wantName: "open", wantArgs: []string{"a.png"}},
		{goos: "linux", wantName: "xdg-open", wantArgs: []string{"a.png"}},
		{goos: "windows", wantName: "cmd", wantArgs: []string{"/c", "start", "", "a.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := (&SystemOpener{goos: tt.goos}).Command("a.png")
			if name != tt.wantName {
				t.Errorf("期待値 '%s', 実際の値 '%s'", tt.wantName, name)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("引数が一致しません (-want +got):\n%s", diff)
			}
		})
	}
}
