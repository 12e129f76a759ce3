package debug

import "testing"

func TestVerboseQuietToggles(t *testing.T) {
	t.Cleanup(func() {
		SetVerbose(false)
		SetQuiet(false)
	})

	SetVerbose(true)
	if !Enabled() {
		t.Error("Enabled() = false after SetVerbose(true)")
	}
	SetVerbose(false)

	SetQuiet(true)
	if !IsQuiet() {
		t.Error("IsQuiet() = false after SetQuiet(true)")
	}
	SetQuiet(false)
	if IsQuiet() {
		t.Error("IsQuiet() = true after SetQuiet(false)")
	}
}
