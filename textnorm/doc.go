// Package textnorm turns free text into comparable tokens.
//
// Normalize folds case and Latin diacritics and strips everything that is not
// an ASCII letter, digit or space; Tokenize splits the result into words and
// can drop the Italian stopwords listed in ItalianStopwords.
//
// All functions are pure and safe for concurrent use.
package textnorm
