package version

import "testing"

func TestDefaults(t *testing.T) {
	if Name() != "roomraider" {
		t.Fatalf("Name() = %q", Name())
	}

	if Version() == "" {
		t.Fatal("Version() is empty")
	}

	if Commit() == "" {
		t.Fatal("Commit() is empty")
	}
}

func TestOverrides(t *testing.T) {
	oldVersion, oldCommit := version, commit
	t.Cleanup(func() { version, commit = oldVersion, oldCommit })

	version, commit = "v1.2.3", "abc123"

	if Version() != "v1.2.3" || Commit() != "abc123" {
		t.Fatalf("got %q %q", Version(), Commit())
	}
}
