package geometry

import "testing"

func TestAreaLayout_1200x900(t *testing.T) {
	areas := AreaLayout(Bounds{Width: 1200, Height: 900})

	q, ok := AreaByKey(areas, 'q')
	if !ok {
		t.Fatal("no area for q")
	}
	if q.Center != Pt(200, 150) {
		t.Errorf("q center = %v, want (200,150)", q.Center)
	}
	e, _ := AreaByKey(areas, 'e')
	if e.Center != Pt(1000, 150) {
		t.Errorf("e center = %v, want (1000,150)", e.Center)
	}

	// Midpoint of top-left and top-right centers.
	if got := CombineAreas(q, e); got != Pt(600, 150) {
		t.Errorf("q+e = %v, want (600,150)", got)
	}
	// Same symbol twice reselects the region's own center.
	if got := CombineAreas(q, q); got != q.Center {
		t.Errorf("q+q = %v, want %v", got, q.Center)
	}
}

func TestAreaLayout_CentersInsideBounds(t *testing.T) {
	for _, b := range []Bounds{
		{Width: 1200, Height: 900},
		{Width: 1921, Height: 1081},
		{X: 1920, Y: -200, Width: 2560, Height: 1440},
	} {
		areas := AreaLayout(b)
		for _, a := range areas {
			if !a.Bounds.Contains(a.Center) {
				t.Errorf("bounds %v: area %s center %v outside %v", b, a.Symbol, a.Center, a.Bounds)
			}
		}
	}
}

func TestAreaLayout_ExactTiling(t *testing.T) {
	// 1000 and 901 are not divisible by 3; the last row/column absorbs the
	// remainder and the nine regions still cover everything exactly.
	b := Bounds{X: 7, Y: 11, Width: 1000, Height: 901}
	areas := AreaLayout(b)

	area := 0
	for _, a := range areas {
		area += a.Bounds.Width * a.Bounds.Height
	}
	if area != b.Width*b.Height {
		t.Errorf("area sum %d != bounds area %d", area, b.Width*b.Height)
	}
	for _, p := range []Position{
		{X: b.X, Y: b.Y},
		{X: b.X + b.Width - 1, Y: b.Y + b.Height - 1},
		b.Center(),
	} {
		owners := 0
		for _, a := range areas {
			if a.Bounds.Contains(p) {
				owners++
			}
		}
		if owners != 1 {
			t.Errorf("point %v owned by %d areas", p, owners)
		}
	}
}

func TestCombineAreas_Midpoint(t *testing.T) {
	areas := AreaLayout(Bounds{Width: 900, Height: 900})
	for _, first := range areas {
		for _, second := range areas {
			got := CombineAreas(first, second)
			if first.Key == second.Key {
				if got != first.Center {
					t.Errorf("%s+%s = %v, want own center %v", first.Symbol, second.Symbol, got, first.Center)
				}
				continue
			}
			want := Pt((first.Center.X+second.Center.X)/2, (first.Center.Y+second.Center.Y)/2)
			if got != want {
				t.Errorf("%s+%s = %v, want %v", first.Symbol, second.Symbol, got, want)
			}
		}
	}
}

func TestValidAreaSymbol(t *testing.T) {
	for _, r := range "qweasdzxc" {
		if !ValidAreaSymbol(r) {
			t.Errorf("%q should be valid", r)
		}
	}
	for _, r := range "rfvgb 1" {
		if ValidAreaSymbol(r) {
			t.Errorf("%q should not be valid", r)
		}
	}
}
