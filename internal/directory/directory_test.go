package directory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quickfix-labs/quickfix/internal/directory"
)

const fixture = `[
  {
    "id": 1,
    "name": "Amit Electricals",
    "imageUrl": "electrician.jpg",
    "location": "Delhi",
    "rating": 4.6,
    "about": "Expert in electrical wiring.",
    "serviceType": "electrical",
    "services": [{ "name": "Fan Installation", "price": "300" }],
    "reviews": [{ "user": "Rahul", "rating": 5, "comment": "Very professional" }]
  },
  {
    "id": 2,
    "name": "SparkPro Services",
    "imageUrl": "electrician2.jpg",
    "location": "Noida",
    "rating": 4.4,
    "about": "Fast electrical services.",
    "serviceType": "electrical",
    "services": [],
    "reviews": []
  },
  {
    "id": 3,
    "name": "FreshNest Cleaning",
    "imageUrl": "cleaning.jpg",
    "location": "Noida",
    "rating": 4.4,
    "about": "Deep cleaning.",
    "serviceType": "cleaning",
    "services": [],
    "reviews": []
  }
]`

func loadFixture(t *testing.T, body string) *directory.Directory {
	t.Helper()

	path := filepath.Join(t.TempDir(), "providers.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d, err := directory.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return d
}

func TestLoadAndGet(t *testing.T) {
	d := loadFixture(t, fixture)

	if got := len(d.All()); got != 3 {
		t.Fatalf("got %d providers, want 3", got)
	}

	p, ok := d.Get(1)
	if !ok {
		t.Fatal("provider 1 missing")
	}
	if p.Name != "Amit Electricals" || p.Rating != 4.6 {
		t.Fatalf("provider fields mangled: %+v", p)
	}
	if len(p.Services) != 1 || p.Services[0].Price.String() != "300" {
		t.Fatalf("nested services mangled: %+v", p.Services)
	}

	if _, ok := d.Get(99); ok {
		t.Fatal("unknown id returned a provider")
	}
}

func TestByServiceTypeLowersTheQuery(t *testing.T) {
	d := loadFixture(t, fixture)

	for _, q := range []string{"electrical", "Electrical", "ELECTRICAL"} {
		got := d.ByServiceType(q)
		if len(got) != 2 {
			t.Fatalf("query %q: got %d providers, want 2", q, len(got))
		}
	}

	if got := d.ByServiceType("plumbing"); len(got) != 0 {
		t.Fatalf("unknown type returned %d providers", len(got))
	}
}

func TestSimilarExcludesSelf(t *testing.T) {
	d := loadFixture(t, fixture)

	p, _ := d.Get(1)
	similar := d.Similar(p)

	if len(similar) != 1 || similar[0].ID != 2 {
		t.Fatalf("got %+v, want only provider 2", similar)
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.json")
	body := `[{"id":1,"name":"A","serviceType":"x"},{"id":1,"name":"B","serviceType":"y"}]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := directory.Load(path); err == nil {
		t.Fatal("duplicate ids accepted")
	}
}
