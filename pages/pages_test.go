package pages

import (
	"fmt"
	"testing"

	"github.com/tsawler/regmap/core"
)

// mockResolver is a mock ObjectResolver for testing
type mockResolver struct {
	objects map[int]core.Object
}

func newMockResolver() *mockResolver {
	return &mockResolver{objects: make(map[int]core.Object)}
}

func (m *mockResolver) Resolve(obj core.Object) (core.Object, error) {
	if ref, ok := obj.(core.IndirectRef); ok {
		return m.ResolveReference(ref)
	}
	return obj, nil
}

func (m *mockResolver) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	obj, ok := m.objects[ref.Number]
	if !ok {
		return nil, fmt.Errorf("object %d not found", ref.Number)
	}
	return obj, nil
}

func ref(n int) core.IndirectRef { return core.IndirectRef{Number: n} }

// TestNestedPageTree flattens two levels of /Pages into reading order.
func TestNestedPageTree(t *testing.T) {
	r := newMockResolver()
	r.objects[3] = core.Dict{"Type": core.Name("Page"), "Contents": ref(10)}
	r.objects[4] = core.Dict{"Type": core.Name("Page"), "Contents": ref(11)}
	r.objects[5] = core.Dict{"Type": core.Name("Page"), "Contents": ref(12)}
	r.objects[6] = core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(4), ref(5)}}
	root := core.Dict{"Type": core.Name("Pages"), "Count": core.Int(99), "Kids": core.Array{ref(3), ref(6)}}

	tree := NewPageTree(root, r)
	n, err := tree.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 pages, got %d", n)
	}

	page, err := tree.GetPage(2)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.dict["Contents"] != ref(12) {
		t.Errorf("page 2 is the wrong leaf: %v", page.dict)
	}

	if _, err := tree.GetPage(3); err == nil {
		t.Error("expected out of range error")
	}
}

// TestInheritedAttributes checks that grandparent attributes reach the leaf
// and that the page's own entries win.
func TestInheritedAttributes(t *testing.T) {
	r := newMockResolver()
	res := core.Dict{"Font": core.Dict{}}
	r.objects[3] = core.Dict{"Type": core.Name("Page"), "Rotate": core.Int(-90)}
	r.objects[4] = core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(3)}, "MediaBox": core.Array{core.Int(0), core.Int(0), core.Int(595), core.Real(842)}}
	root := core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(4)}, "Resources": res, "Rotate": core.Int(180)}

	page, err := NewPageTree(root, r).GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}

	got, err := page.Resources()
	if err != nil {
		t.Fatalf("Resources: %v", err)
	}
	if _, ok := got["Font"]; !ok {
		t.Error("resources were not inherited from the root")
	}

	w, _ := page.Width()
	h, _ := page.Height()
	if w != 595 || h != 842 {
		t.Errorf("expected 595x842, got %vx%v", w, h)
	}

	if rot := page.Rotate(); rot != 270 {
		t.Errorf("expected rotation 270, got %d", rot)
	}
}

// TestCyclicKids makes sure a /Kids loop does not recurse forever.
func TestCyclicKids(t *testing.T) {
	r := newMockResolver()
	r.objects[2] = core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(3), ref(2)}}
	r.objects[3] = core.Dict{"Type": core.Name("Page")}

	tree := NewPageTree(r.objects[2].(core.Dict), r)
	n, err := tree.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 page, got %d", n)
	}
}

func TestMissingTypeIsPage(t *testing.T) {
	r := newMockResolver()
	r.objects[3] = core.Dict{"Contents": ref(9)}
	root := core.Dict{"Kids": core.Array{ref(3)}}

	n, err := NewPageTree(root, r).Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 page, got %d", n)
	}
}

func TestContents(t *testing.T) {
	r := newMockResolver()
	s1 := &core.Stream{Dict: core.Dict{}, Data: []byte("BT ET")}
	s2 := &core.Stream{Dict: core.Dict{}, Data: []byte("q Q")}
	r.objects[10] = s1
	r.objects[11] = s2
	r.objects[12] = core.Array{ref(10), core.Int(7), ref(11)}

	single := NewPage(core.Dict{"Contents": ref(10)}, r)
	got, err := single.Contents()
	if err != nil {
		t.Fatalf("Contents: %v", err)
	}
	if len(got) != 1 || got[0] != s1 {
		t.Errorf("expected the single stream, got %v", got)
	}

	multi := NewPage(core.Dict{"Contents": ref(12)}, r)
	got, err = multi.Contents()
	if err != nil {
		t.Fatalf("Contents: %v", err)
	}
	if len(got) != 2 || got[0] != s1 || got[1] != s2 {
		t.Errorf("expected both streams in order, got %v", got)
	}

	empty := NewPage(core.Dict{}, r)
	if got, err := empty.Contents(); err != nil || got != nil {
		t.Errorf("expected no contents, got %v, %v", got, err)
	}
}

func TestDefaultBoxes(t *testing.T) {
	page := NewPage(core.Dict{}, newMockResolver())
	box, err := page.MediaBox()
	if err != nil {
		t.Fatalf("MediaBox: %v", err)
	}
	if box[2] != 612 || box[3] != 792 {
		t.Errorf("expected letter size default, got %v", box)
	}
	crop, _ := page.CropBox()
	if crop[2] != 612 {
		t.Errorf("expected crop box to default to media box, got %v", crop)
	}
}
