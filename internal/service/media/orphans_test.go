package media

import (
	"slices"
	"testing"

	"portfolio/internal/storage"
)

func TestOrphans(t *testing.T) {
	objects := []storage.Object{
		{Name: "b.png", ID: "2"},
		{Name: "a.png", ID: "1"},
		{Name: "used.jpg", ID: "3"},
		{Name: "nested", ID: ""}, // folder placeholder
	}
	referenced := []string{"portfolio/used.jpg", "other/a.png"}

	got := Orphans("portfolio", objects, referenced)
	want := []string{"portfolio/a.png", "portfolio/b.png"}
	if !slices.Equal(got, want) {
		t.Errorf("Orphans = %v, want %v", got, want)
	}
}

func TestOrphansNoneWhenAllReferenced(t *testing.T) {
	objects := []storage.Object{{Name: "x.gif", ID: "1"}}
	if got := Orphans("portfolio", objects, []string{"portfolio/x.gif"}); len(got) != 0 {
		t.Errorf("Orphans = %v, want none", got)
	}
}
