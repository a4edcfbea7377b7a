// Package patterns holds the keyword rules used to label transcript sentences.
//
// A Table is an ordered list of (regex, label) rules. Labels fall into two
// classes: rhetoric labels, a small fixed set flagging inflammatory sentence
// patterns, and topic labels for subject matter. Tables are immutable once
// built and are safe to share between goroutines.
package patterns
