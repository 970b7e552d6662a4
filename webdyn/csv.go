package webdyn

import (
	"strings"

	"github.com/tsawler/regmap/register"
)

// Render writes the definition file: the header values joined by ';', then
// one row per register, separated by '\n' with no trailing newline.
func Render(regs []register.Register, h Header) string {
	lines := make([]string, 0, len(regs)+1)
	lines = append(lines, strings.Join(h.Values(), ";"))
	for _, r := range regs {
		lines = append(lines, r.CSVRow())
	}
	return strings.Join(lines, "\n")
}

// unsafeName replaces the characters of a model that would leave the
// output directory or are not valid in a file name.
var unsafeName = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "\x00", "_")

// FileName suggests webdyn_def_{model}.csv, with "definition" standing in
// for a missing model. Path separators in the model become '_', so the
// name always stays in the directory it is joined to.
func FileName(h Header) string {
	model, ok := h.Get(KeyModel)
	if !ok {
		model = "definition"
	}
	return "webdyn_def_" + unsafeName.Replace(model) + ".csv"
}
