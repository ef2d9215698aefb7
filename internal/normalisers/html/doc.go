// Package html provides a Normaliser for HTML chapters, such as those
// exported from word processors. Tags are stripped with a bluemonday
// strict policy after block elements have been turned into paragraph breaks.
package html
