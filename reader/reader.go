package reader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/tsawler/regmap/core"
	"github.com/tsawler/regmap/pages"
	"github.com/tsawler/regmap/text"
)

// ErrEncrypted is returned for documents with an /Encrypt dictionary.
var ErrEncrypted = errors.New("encrypted PDF documents are not supported")

// maxResolveDepth stops reference chains that point back at themselves.
const maxResolveDepth = 32

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Reader gives object and page access to a PDF held in memory.
type Reader struct {
	data     []byte
	xref     *core.XRefTable
	version  PDFVersion
	rebuilt  bool
	objCache map[int]core.Object
	objStms  map[int]*core.ObjectStream
	loading  map[int]bool
	pageTree *pages.PageTree
}

var _ pages.ObjectResolver = (*Reader)(nil)

// Open reads a PDF file into memory.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return NewReader(data)
}

var headerRe = regexp.MustCompile(`%PDF-(\d+)\.(\d+)`)

// NewReader parses the header and cross-reference data of a PDF.
func NewReader(data []byte) (*Reader, error) {
	r := &Reader{
		data:     data,
		objCache: make(map[int]core.Object),
		objStms:  make(map[int]*core.ObjectStream),
		loading:  make(map[int]bool),
	}

	// The header may be preceded by junk; look in the first kilobyte.
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	m := headerRe.FindSubmatch(head)
	if m == nil {
		return nil, fmt.Errorf("invalid PDF header")
	}
	r.version.Major, _ = strconv.Atoi(string(m[1]))
	r.version.Minor, _ = strconv.Atoi(string(m[2]))

	xref, err := core.LoadXRef(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load xref: %w", err)
	}
	r.xref = xref
	if _, ok := xref.Trailer["Encrypt"]; ok {
		return nil, ErrEncrypted
	}
	return r, nil
}

// Close releases the file contents.
func (r *Reader) Close() error {
	r.data = nil
	r.objCache = nil
	r.objStms = nil
	return nil
}

// Version returns the PDF version
func (r *Reader) Version() PDFVersion { return r.version }

// Trailer returns the trailer dictionary
func (r *Reader) Trailer() core.Dict { return r.xref.Trailer }

// GetObject loads an object by number. Objects that are free or missing
// from the table resolve to null, as PDF requires.
func (r *Reader) GetObject(objNum int) (core.Object, error) {
	if obj, ok := r.objCache[objNum]; ok {
		return obj, nil
	}
	if r.loading[objNum] {
		return nil, fmt.Errorf("object %d refers to itself", objNum)
	}
	r.loading[objNum] = true
	defer delete(r.loading, objNum)

	obj, err := r.loadObject(objNum)
	if err != nil && !r.rebuilt {
		// A wrong offset usually means a stale xref; rebuild once and retry.
		if table, rerr := core.RebuildXRef(r.data); rerr == nil {
			r.rebuilt = true
			for n, e := range table.Entries {
				r.xref.Entries[n] = e
			}
			obj, err = r.loadObject(objNum)
		}
	}
	if err != nil {
		return nil, err
	}
	r.objCache[objNum] = obj
	return obj, nil
}

func (r *Reader) loadObject(objNum int) (core.Object, error) {
	entry, ok := r.xref.Get(objNum)
	if !ok || entry.Type == core.XRefEntryFree {
		return core.Null{}, nil
	}

	if entry.Type == core.XRefEntryCompressed {
		stm, err := r.objectStream(entry.StreamNum)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", objNum, err)
		}
		return stm.Object(objNum)
	}

	s := core.NewScanner(r.data)
	s.SetLengthResolver(r.resolveLength)
	s.Seek(int(entry.Offset))
	ind, err := s.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("failed to parse object %d: %w", objNum, err)
	}
	if ind.Ref.Number != objNum {
		return nil, fmt.Errorf("object number mismatch: expected %d, got %d", objNum, ind.Ref.Number)
	}
	return ind.Object, nil
}

func (r *Reader) objectStream(num int) (*core.ObjectStream, error) {
	if stm, ok := r.objStms[num]; ok {
		return stm, nil
	}
	obj, err := r.GetObject(num)
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return nil, fmt.Errorf("object stream %d is %T", num, obj)
	}
	stm, err := core.NewObjectStream(stream)
	if err != nil {
		return nil, err
	}
	r.objStms[num] = stm
	return stm, nil
}

func (r *Reader) resolveLength(ref core.IndirectRef) (int, bool) {
	obj, err := r.GetObject(ref.Number)
	if err != nil {
		return 0, false
	}
	n, ok := obj.(core.Int)
	return int(n), ok
}

// ResolveReference resolves an indirect reference
func (r *Reader) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	return r.GetObject(ref.Number)
}

// Resolve follows indirect references until a direct object is reached.
func (r *Reader) Resolve(obj core.Object) (core.Object, error) {
	for i := 0; i < maxResolveDepth; i++ {
		ref, ok := obj.(core.IndirectRef)
		if !ok {
			return obj, nil
		}
		var err error
		if obj, err = r.ResolveReference(ref); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("reference chain too deep")
}

// GetCatalog returns the document catalog (root object)
func (r *Reader) GetCatalog() (core.Dict, error) {
	root, ok := r.xref.Trailer["Root"]
	if !ok {
		return nil, fmt.Errorf("trailer missing /Root entry")
	}
	obj, err := r.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog: %w", err)
	}
	catalog, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("catalog is not a dictionary: %T", obj)
	}
	return catalog, nil
}

// PageCount returns the number of pages in the PDF
func (r *Reader) PageCount() (int, error) {
	if err := r.ensurePageTree(); err != nil {
		return 0, err
	}
	return r.pageTree.Count()
}

// GetPage returns the page at the given index (0-based)
func (r *Reader) GetPage(index int) (*pages.Page, error) {
	if err := r.ensurePageTree(); err != nil {
		return nil, err
	}
	return r.pageTree.GetPage(index)
}

func (r *Reader) ensurePageTree() error {
	if r.pageTree != nil {
		return nil
	}
	catalog, err := r.GetCatalog()
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}
	obj, err := r.Resolve(catalog.Get("Pages"))
	if err != nil {
		return fmt.Errorf("failed to resolve pages: %w", err)
	}
	root, ok := obj.(core.Dict)
	if !ok {
		return fmt.Errorf("catalog /Pages is %T, not a dictionary", obj)
	}
	r.pageTree = pages.NewPageTree(root, r)
	return nil
}

// ExtractTextFragments returns the positioned text painted by a page,
// including text inside Form XObjects.
func (r *Reader) ExtractTextFragments(page *pages.Page) ([]text.TextFragment, error) {
	contents, err := page.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to get contents: %w", err)
	}

	var buf bytes.Buffer
	for _, stream := range contents {
		data, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode content stream: %w", err)
		}
		buf.Write(data)
		// Streams are concatenated; a token may not span the boundary.
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return nil, nil
	}

	resources, err := page.Resources()
	if err != nil {
		return nil, err
	}
	extractor := text.NewExtractor()
	if err := extractor.RegisterFontsFromResources(resources, r.ResolveReference); err != nil {
		return nil, err
	}
	return extractor.ExtractFromBytes(buf.Bytes())
}
