// Package tagname parses tag-encoded snapshot filenames of the form
// o<O>-f<F>-l<L>-p<P>-a<A>.<ext>.
//
// Each dash-delimited segment carries a single leading tag character naming
// the field it holds. Parsing is deliberately naive: segments are split, the
// tag character is stripped, and nothing else is checked. The only rejected
// input is a name with fewer than five segments.
package tagname
