package mandelzoom

import "testing"

func TestFindLandmark(t *testing.T) {
	l, ok := FindLandmark("seahorse")
	if !ok {
		t.Fatal("seahorse landmark missing")
	}
	if l.CenterX != "-0.75" || l.CenterY != "0.1" {
		t.Errorf("seahorse center = (%s, %s), want (-0.75, 0.1)", l.CenterX, l.CenterY)
	}

	if _, ok := FindLandmark("atlantis"); ok {
		t.Error("FindLandmark invented a landmark")
	}
}

func TestLandmarksWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range Landmarks {
		if seen[l.Name] {
			t.Errorf("duplicate landmark name %q", l.Name)
		}
		seen[l.Name] = true

		for _, coord := range []string{l.CenterX, l.CenterY} {
			if _, err := ParseCoord(coord); err != nil {
				t.Errorf("landmark %q: %v", l.Name, err)
			}
		}
		z, err := ParseCoord(l.Zoom)
		if err != nil {
			t.Errorf("landmark %q: %v", l.Name, err)
			continue
		}
		if z.Sign() <= 0 {
			t.Errorf("landmark %q: non-positive zoom %s", l.Name, l.Zoom)
		}
		if l.MaxIter <= 0 {
			t.Errorf("landmark %q: non-positive iteration cap %d", l.Name, l.MaxIter)
		}
	}
}
