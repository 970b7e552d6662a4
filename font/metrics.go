package font

// asciiWidths holds the advance widths, in 1000ths of em, of codes 32
// through 126.
type asciiWidths [95]float64

func (w *asciiWidths) lookup(code int) (float64, bool) {
	if w == nil || code < 32 || code > 126 {
		return 0, false
	}
	return w[code-32], true
}

// withLetters copies base and replaces space and the letters.
func withLetters(base asciiWidths, space float64, upper, lower [26]float64) *asciiWidths {
	w := base
	w[0] = space
	copy(w['A'-32:], upper[:])
	copy(w['a'-32:], lower[:])
	return &w
}

var helvetica = asciiWidths{
	// space ! " # $ % & ' ( ) * + , - . /
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
	// 0-9
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556,
	// : ; < = > ? @
	278, 278, 584, 584, 584, 556, 1015,
	// A-Z
	667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833,
	722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611,
	// [ \ ] ^ _ `
	278, 278, 278, 469, 556, 333,
	// a-z
	556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833,
	556, 556, 556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500,
	// { | } ~
	334, 260, 334, 584,
}

var helveticaBold = withLetters(helvetica, 278,
	[26]float64{722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833,
		722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611},
	[26]float64{556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889,
		611, 611, 611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500},
)

var times = withLetters(helvetica, 250,
	[26]float64{722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889,
		722, 722, 556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611},
	[26]float64{444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778,
		500, 500, 500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444},
)

var timesBold = withLetters(helvetica, 250,
	[26]float64{722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944,
		722, 778, 611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667},
	[26]float64{500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833,
		556, 500, 556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444},
)

var courier = func() *asciiWidths {
	var w asciiWidths
	for i := range w {
		w[i] = 600
	}
	return &w
}()

// standardFonts maps the Standard 14 names, and the Arial names that
// datasheet generators substitute for Helvetica, to their metrics. Symbol
// and ZapfDingbats carry no register text and are left out.
var standardFonts = map[string]*asciiWidths{
	"Helvetica":             &helvetica,
	"Helvetica-Oblique":     &helvetica,
	"Helvetica-Bold":        helveticaBold,
	"Helvetica-BoldOblique": helveticaBold,
	"Arial":                 &helvetica,
	"ArialMT":               &helvetica,
	"Arial-BoldMT":          helveticaBold,
	"Times-Roman":           times,
	"Times-Italic":          times,
	"Times-Bold":            timesBold,
	"Times-BoldItalic":      timesBold,
	"Courier":               courier,
	"Courier-Oblique":       courier,
	"Courier-Bold":          courier,
	"Courier-BoldOblique":   courier,
}
