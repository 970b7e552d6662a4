package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/regmap/extract"
)

// parsePages reads a page list such as "3,5,12-14". Pages are 1-indexed
// and at most extract.MaxPage.
func parsePages(s string) ([]int, error) {
	var pages []int
	if strings.TrimSpace(s) == "" {
		return pages, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || first < 1 {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		last := first
		if isRange {
			last, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || last < first {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if last > extract.MaxPage {
			return nil, fmt.Errorf("page %d in %q is beyond %d", last, part, extract.MaxPage)
		}
		for p := first; p <= last; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}
