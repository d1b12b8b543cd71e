// SPDX-License-Identifier: MPL-2.0

package present

import "testing"

func TestErrorStyleUsesPalette(t *testing.T) {
	t.Parallel()

	if got := ErrorStyle.GetForeground(); got != ColorError {
		t.Errorf("ErrorStyle foreground = %v, want %v", got, ColorError)
	}
	if !ErrorStyle.GetBold() {
		t.Error("ErrorStyle should be bold")
	}
	if got := headerStyle.GetForeground(); got != ColorPrimary {
		t.Errorf("header foreground = %v, want %v", got, ColorPrimary)
	}
}
