package drift

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/domdrift/treemodel"
)

func TestLoadCatalogs_PartialOverride(t *testing.T) {
	// A file overriding only the feature list keeps the built-in landmark
	// and attribute catalogs.
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `features:
  - name: LoginForm
    role: form
    key_terms: [login, signin]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalogs(path)
	if err != nil {
		t.Fatalf("LoadCatalogs: %v", err)
	}
	if len(cat.Features) != 1 || cat.Features[0].Name != "LoginForm" {
		t.Errorf("features = %+v", cat.Features)
	}
	if cat.Features[0].Role != "form" || len(cat.Features[0].KeyTerms) != 2 {
		t.Errorf("feature fields = %+v", cat.Features[0])
	}
	def := DefaultCatalogs()
	if len(cat.Landmarks) != len(def.Landmarks) {
		t.Errorf("landmarks = %d, want default %d", len(cat.Landmarks), len(def.Landmarks))
	}
	if len(cat.Attributes) != len(def.Attributes) {
		t.Errorf("attributes = %v, want defaults", cat.Attributes)
	}
}

func TestLoadCatalogs_Missing(t *testing.T) {
	if _, err := LoadCatalogs(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultCatalogs_ValidSelectors(t *testing.T) {
	// Every built-in landmark selector must parse; a typo here would
	// silently disable a catalog entry.
	for _, lm := range DefaultCatalogs().Landmarks {
		if len(lm.Selectors) == 0 {
			t.Errorf("%s: no selectors", lm.Name)
		}
		for _, sel := range lm.Selectors {
			if !treemodel.ValidSelector(sel) {
				t.Errorf("%s: invalid selector %q", lm.Name, sel)
			}
		}
	}
}
