package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/babarot/tt/internal/config"
)

func TestNeedsRestoreConfirmation(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		yes      bool
		force    bool
		confirm  bool
		want     bool
	}{
		{"confirm enabled", 2, false, false, true, true},
		{"nothing selected", 0, false, false, true, false},
		{"yes flag skips", 2, true, false, true, false},
		{"force flag skips", 2, false, true, true, false},
		{"confirm disabled", 2, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLI{}
			c.option.Yes = tt.yes
			c.option.Rm.Force = tt.force
			c.config = config.Config{
				Core: config.Core{
					Restore: config.RestoreConfig{Confirm: tt.confirm},
				},
			}
			if got := c.needsRestoreConfirmation(tt.selected); got != tt.want {
				t.Errorf("needsRestoreConfirmation(%d) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestFormatErrors(t *testing.T) {
	if err := formatErrors(nil); err != nil {
		t.Errorf("formatErrors(nil) = %v, want nil", err)
	}

	single := errors.New("boom")
	if err := formatErrors([]error{single}); err != single {
		t.Errorf("formatErrors(single) = %v, want the error unchanged", err)
	}

	err := formatErrors([]error{errors.New("a"), errors.New("b")})
	if err == nil || !strings.Contains(err.Error(), "2 errors occurred") {
		t.Errorf("formatErrors(two) = %v", err)
	}
}
