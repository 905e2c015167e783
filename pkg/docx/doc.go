// Package docx reads and rewrites the text runs of a WordprocessingML
// (.docx) package.
//
// Parts are parsed with encoding/xml into a light tree of stories,
// paragraphs, tables and runs, each run remembering its byte range in the
// original part. Saving splices only the runs whose text or formatting
// changed back into the part; everything else is written byte for byte, so
// markup this package does not understand (drawings, fields, bookmarks,
// proofing marks) survives untouched.
//
// Covered parts are word/document.xml and the header and footer parts
// referenced by the section properties of the document.
package docx
