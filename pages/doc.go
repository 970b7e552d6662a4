// Package pages walks a PDF page tree.
//
//	tree := pages.NewPageTree(pagesDict, resolver)
//	n, _ := tree.Count()
//	page, _ := tree.GetPage(0)
//
// The tree is flattened into reading order on first use. Resources,
// MediaBox, CropBox and Rotate are inherited from any ancestor node, and
// a page reachable twice through a cyclic /Kids array is visited once.
package pages
