package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// MaxInputBytes caps the size of a single input document
const MaxInputBytes = 2_000_000

// Format is the detected input format
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// Document is the plain text of one input
type Document struct {
	Source string
	Format Format
	Text   string
}

// Load reads a document from path; "-" reads stdin. HTML inputs are
// reduced to their visible text.
func Load(path string) (*Document, error) {
	if path == "-" {
		return FromReader(os.Stdin, "stdin")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	return FromReader(f, path)
}

// FromReader reads a document of at most MaxInputBytes from r
func FromReader(r io.Reader, source string) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if len(data) > MaxInputBytes {
		return nil, fmt.Errorf("read %s: input exceeds %d bytes", source, MaxInputBytes)
	}

	doc := &Document{Source: source, Format: FormatText, Text: string(data)}
	if IsHTML(source, data) {
		text, err := VisibleText(string(data))
		if err != nil {
			return nil, fmt.Errorf("extract text from %s: %w", source, err)
		}
		doc.Format = FormatHTML
		doc.Text = text
	}
	return doc, nil
}

// IsHTML decides by file extension, then by the leading markup
func IsHTML(name string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return true
	case ".txt", ".md", ".text":
		return false
	}

	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) ||
		bytes.HasPrefix(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<body"))
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "section": true,
	"article": true, "blockquote": true, "pre": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true, "footer": true,
	"title": true, "td": true, "dd": true, "dt": true,
}

// VisibleText returns the human-visible text of an HTML document. Block
// elements are separated by blank lines so headings and paragraphs do not
// run into each other.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var buf bytes.Buffer

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template", "svg":
				return
			}
		}

		if n.Type == html.TextNode {
			writeCollapsed(&buf, n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] && buf.Len() > 0 {
			buf.Truncate(len(bytes.TrimRight(buf.Bytes(), " \n")))
			buf.WriteString("\n\n")
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}

// writeCollapsed appends s with inner whitespace runs collapsed to one
// space, keeping a single space where s began or ended with whitespace
func writeCollapsed(buf *bytes.Buffer, s string) {
	fields := strings.Fields(s)
	leading := s != "" && unicode.IsSpace(rune(s[0]))
	trailing := s != "" && unicode.IsSpace(rune(s[len(s)-1]))

	if (leading || len(fields) == 0) && s != "" && !endsWithSpace(buf) {
		buf.WriteByte(' ')
	}
	if len(fields) == 0 {
		return
	}
	buf.WriteString(strings.Join(fields, " "))
	if trailing {
		buf.WriteByte(' ')
	}
}

func endsWithSpace(buf *bytes.Buffer) bool {
	b := buf.Bytes()
	if len(b) == 0 {
		return true
	}
	last := b[len(b)-1]
	return last == ' ' || last == '\n'
}
