package appconfig

import "testing"

func TestExpandPathExpandsTilde(t *testing.T) {
	home := "/home/tester"
	t.Setenv("HOME", home)

	got := ExpandPath("~/logs/pipeweave.log")
	want := home + "/logs/pipeweave.log"
	if got != want {
		t.Fatalf("ExpandPath() = %q, want %q", got, want)
	}
}

func TestExpandPathLeavesOtherPathsUnchanged(t *testing.T) {
	if got := ExpandPath("/var/log/pipeweave.log"); got != "/var/log/pipeweave.log" {
		t.Fatalf("ExpandPath() = %q, want unchanged", got)
	}
	if got := ExpandPath("~user/logs"); got != "~user/logs" {
		t.Fatalf("ExpandPath() = %q, want unchanged for non-tilde-slash prefix", got)
	}
}
