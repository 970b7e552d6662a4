package extract

// Section markers of a register definition document.
const (
	DefaultStartMarker = "3 Register Definitions"
	DefaultEndMarker   = "4 Customized Interfaces"
)

// MaxPage is the highest page number a page selection may name.
const MaxPage = 100000

// Recognizer turns an encoded page image into text. *ocr.Client
// satisfies it.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}

type options struct {
	startMarker string
	endMarker   string
	pages       []int // 1-indexed; nil means every page
	recognizer  Recognizer
}

func defaultOptions() options {
	return options{
		startMarker: DefaultStartMarker,
		endMarker:   DefaultEndMarker,
	}
}

// Option configures a source.
type Option func(*options)

// WithStartMarker sets the text that opens the register section.
func WithStartMarker(marker string) Option {
	return func(o *options) {
		if marker != "" {
			o.startMarker = marker
		}
	}
}

// WithEndMarker sets the text that closes the register section.
func WithEndMarker(marker string) Option {
	return func(o *options) {
		if marker != "" {
			o.endMarker = marker
		}
	}
}

// WithPages limits a document source to the given 1-indexed pages.
// Pages outside the document are ignored.
func WithPages(pages ...int) Option {
	return func(o *options) {
		o.pages = append([]int(nil), pages...)
	}
}

// WithOCR lets a document source fall back to recognizing page images
// when no page has a text layer containing the start marker.
func WithOCR(r Recognizer) Option {
	return func(o *options) {
		o.recognizer = r
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
