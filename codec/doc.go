// Package codec is a capability suite for formatting a context into a
// string and parsing a context back from one. It is a call site of the
// framework, not part of the resolution mechanism: the suite declares the
// two capabilities, their provider interfaces, the consumer façade, and a
// set of JSON providers contexts can bind.
package codec
