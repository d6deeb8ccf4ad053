// Package dataset reads and writes the catalog document.
//
// A document is a JSON array of food records. Sources abstract where the
// bytes come from; Decode turns them into validated records and Describe
// computes the size and digest reported as load metadata.
package dataset
