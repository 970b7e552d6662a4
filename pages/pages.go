package pages

import (
	"fmt"

	"github.com/tsawler/regmap/core"
)

// ObjectResolver resolves indirect references.
type ObjectResolver interface {
	Resolve(obj core.Object) (core.Object, error)
	ResolveReference(ref core.IndirectRef) (core.Object, error)
}

// inheritable page attributes
var inheritable = []string{"Resources", "MediaBox", "CropBox", "Rotate"}

// PageTree is a document's page tree flattened into reading order.
type PageTree struct {
	root     core.Dict
	resolver ObjectResolver
	pages    []*Page
}

// NewPageTree creates a page tree from the catalog's /Pages dictionary.
func NewPageTree(root core.Dict, resolver ObjectResolver) *PageTree {
	return &PageTree{root: root, resolver: resolver}
}

// Count returns the number of leaf pages actually reachable. /Count is
// not trusted because damaged files often get it wrong.
func (t *PageTree) Count() (int, error) {
	pages, err := t.Pages()
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// GetPage returns the page at the given index (0-based)
func (t *PageTree) GetPage(index int) (*Page, error) {
	pages, err := t.Pages()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(pages))
	}
	return pages[index], nil
}

// Pages returns every page in order.
func (t *PageTree) Pages() ([]*Page, error) {
	if t.pages != nil {
		return t.pages, nil
	}
	pages := []*Page{}
	visited := make(map[core.IndirectRef]bool)
	if err := t.walk(t.root, core.Dict{}, visited, &pages); err != nil {
		return nil, fmt.Errorf("failed to traverse page tree: %w", err)
	}
	t.pages = pages
	return pages, nil
}

func (t *PageTree) walk(node, inherited core.Dict, visited map[core.IndirectRef]bool, out *[]*Page) error {
	attrs := inherited
	for _, k := range inheritable {
		if v, ok := node[k]; ok {
			if len(attrs) == len(inherited) {
				attrs = copyDict(inherited)
			}
			attrs[k] = v
		}
	}

	kind, _ := node.GetName("Type")
	kidsObj, hasKids := node["Kids"]
	// Some writers omit /Type; the presence of /Kids decides.
	if kind == "Page" || (kind == "" && !hasKids) {
		*out = append(*out, &Page{dict: node, inherited: attrs, resolver: t.resolver})
		return nil
	}

	kidsResolved, err := t.resolver.Resolve(kidsObj)
	if err != nil {
		return fmt.Errorf("failed to resolve /Kids: %w", err)
	}
	kids, ok := kidsResolved.(core.Array)
	if !ok {
		return fmt.Errorf("invalid /Kids type: %T", kidsResolved)
	}
	for i, kid := range kids {
		if ref, ok := kid.(core.IndirectRef); ok {
			if visited[ref] {
				continue
			}
			visited[ref] = true
		}
		obj, err := t.resolver.Resolve(kid)
		if err != nil {
			return fmt.Errorf("failed to resolve kid %d: %w", i, err)
		}
		dict, ok := obj.(core.Dict)
		if !ok {
			continue
		}
		if err := t.walk(dict, attrs, visited, out); err != nil {
			return err
		}
	}
	return nil
}

func copyDict(d core.Dict) core.Dict {
	c := make(core.Dict, len(d)+1)
	for k, v := range d {
		c[k] = v
	}
	return c
}

// Page is a single leaf of the page tree.
type Page struct {
	dict      core.Dict
	inherited core.Dict // page attributes merged down from ancestors
	resolver  ObjectResolver
}

// NewPage creates a page with no inherited attributes.
func NewPage(dict core.Dict, resolver ObjectResolver) *Page {
	return &Page{dict: dict, inherited: core.Dict{}, resolver: resolver}
}

// attr looks a key up on the page, then in its ancestors.
func (p *Page) attr(key string) core.Object {
	if v, ok := p.dict[key]; ok {
		return v
	}
	return p.inherited[key]
}

// MediaBox returns the page media box [x1 y1 x2 y2], defaulting to US Letter.
func (p *Page) MediaBox() ([]float64, error) {
	box, err := p.box("MediaBox")
	if box == nil && err == nil {
		return []float64{0, 0, 612, 792}, nil
	}
	return box, err
}

// CropBox returns the crop box, or the media box when there is none.
func (p *Page) CropBox() ([]float64, error) {
	box, err := p.box("CropBox")
	if box == nil || err != nil {
		return p.MediaBox()
	}
	return box, nil
}

func (p *Page) box(name string) ([]float64, error) {
	obj := p.attr(name)
	if obj == nil {
		return nil, nil
	}
	resolved, err := p.resolver.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	arr, ok := resolved.(core.Array)
	if !ok || len(arr) != 4 {
		return nil, fmt.Errorf("invalid %s %s", name, resolved)
	}
	box := make([]float64, 4)
	for i, elem := range arr {
		switch v := elem.(type) {
		case core.Int:
			box[i] = float64(v)
		case core.Real:
			box[i] = float64(v)
		default:
			return nil, fmt.Errorf("invalid %s element type: %T", name, elem)
		}
	}
	return box, nil
}

// Resources returns the page resources, or an empty dictionary.
func (p *Page) Resources() (core.Dict, error) {
	obj := p.attr("Resources")
	if obj == nil {
		return core.Dict{}, nil
	}
	resolved, err := p.resolver.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Resources: %w", err)
	}
	dict, ok := resolved.(core.Dict)
	if !ok {
		return core.Dict{}, nil
	}
	return dict, nil
}

// Contents returns the page content streams in order. Entries that are
// not streams are skipped.
func (p *Page) Contents() ([]*core.Stream, error) {
	obj, ok := p.dict["Contents"]
	if !ok {
		return nil, nil
	}
	resolved, err := p.resolver.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Contents: %w", err)
	}

	var items core.Array
	switch v := resolved.(type) {
	case *core.Stream:
		return []*core.Stream{v}, nil
	case core.Array:
		items = v
	default:
		return nil, fmt.Errorf("invalid Contents type: %T", resolved)
	}

	streams := make([]*core.Stream, 0, len(items))
	for i, item := range items {
		r, err := p.resolver.Resolve(item)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve contents[%d]: %w", i, err)
		}
		if s, ok := r.(*core.Stream); ok {
			streams = append(streams, s)
		}
	}
	return streams, nil
}

// Rotate returns the page rotation normalized to 0, 90, 180 or 270.
func (p *Page) Rotate() int {
	r, _ := p.attr("Rotate").(core.Int)
	deg := int(r) % 360
	if deg < 0 {
		deg += 360
	}
	return deg / 90 * 90
}

// Width returns the page width (from MediaBox)
func (p *Page) Width() (float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, err
	}
	return box[2] - box[0], nil
}

// Height returns the page height (from MediaBox)
func (p *Page) Height() (float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, err
	}
	return box[3] - box[1], nil
}
