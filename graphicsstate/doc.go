// Package graphicsstate tracks the parts of the PDF graphics state needed to
// position text: the current transformation matrix, the q/Q state stack and
// the text state (font, spacing, scaling, leading, rise, text matrices).
//
// Example usage:
//
//	gs := graphicsstate.NewGraphicsState()
//	gs.Save()                  // q
//	gs.Transform(matrix)       // cm
//	gs.BeginText()             // BT
//	gs.SetFont("/F1", 9)       // Tf
//	gs.TranslateText(72, 700)  // Td
//	gs.ShowText("Power", w0)   // Tj, w0 taken from the font metrics
//	x, y := gs.GetTextPosition()
//	gs.Restore()               // Q
//
// Text advances follow the PDF rule
// tx = ((w0 - Tj/1000) * Tfs + Tc + Tw) * Th, applied through the text
// matrix so scaled Tm values move the pen by the right amount.
package graphicsstate
