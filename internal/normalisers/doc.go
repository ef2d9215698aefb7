// Package normalisers turns chapter files into plain prose for analysis.
// Each sub-package handles one markup format; Registry selects between
// them by MIME type and priority.
package normalisers
