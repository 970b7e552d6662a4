// Package contentstream tokenizes PDF content streams into operations.
//
//	ops, err := contentstream.NewParser(streamData).Parse()
//	for _, op := range ops {
//	    fmt.Println(op.Operator, op.Operands)
//	}
//
// Each [Operation] carries the operands that preceded its operator.
// Operands are core objects: numbers, strings, names, arrays and the odd
// dictionary. Inline images are skipped so their binary payload never
// reaches the tokenizer.
package contentstream
