package catalog

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/doeshing/vox-go/internal/domain"
)

func TestProviderSnapshotIsStableAcrossRebuild(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "fs.yaml", fsCommands)
	provider := NewProvider(FromPaths([]string{path}, nil))

	before, err := provider.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}

	// Swap the source file contents and rebuild; the earlier snapshot
	// must keep serving the old catalog in full.
	if err := os.WriteFile(path, []byte(dbCommands), 0o644); err != nil {
		t.Fatalf("rewrite source: %v", err)
	}
	after, warnings := provider.Rebuild(context.Background())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if _, ok := before.Lookup("list_dir"); !ok {
		t.Fatal("old snapshot lost list_dir after rebuild")
	}
	if _, ok := after.Lookup("run_sql"); !ok {
		t.Fatal("new catalog missing run_sql")
	}

	current, err := provider.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if _, ok := current.Lookup("run_sql"); !ok {
		t.Fatal("provider not serving the rebuilt catalog")
	}
}

func TestProviderKeepsPreviousCatalogOnEmptyRebuild(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "fs.yaml", fsCommands)
	provider := NewProvider(FromPaths([]string{path}, nil))

	if _, err := provider.Snapshot(); err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove source: %v", err)
	}
	built, warnings := provider.Rebuild(context.Background())
	if built.Len() != 0 {
		t.Fatalf("expected empty build, got %d", built.Len())
	}
	if len(warnings) == 0 {
		t.Fatal("expected warnings for missing source")
	}

	current, err := provider.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if current.Len() == 0 {
		t.Fatal("empty rebuild must not clobber the previous snapshot")
	}
}

func TestProviderEmptyFirstBuild(t *testing.T) {
	provider := NewProvider(FromPaths([]string{"/nonexistent/commands.yaml"}, nil))
	_, err := provider.Snapshot()
	if !errors.Is(err, domain.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}
