package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, 0, &buffer)
	return buffer.String()
}

// skip names an element whose subtree is left out, 0 keeps everything.
func getTextRecursive(node *html.Node, skip atom.Atom, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		if skip == 0 || child.Type != html.ElementNode || child.DataAtom != skip {
			getTextRecursive(child, skip, buffer)
		}
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText trims the text, drops non-printable runes and collapses runs of
// whitespace into a single space.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// NodeText is CleanText over the full text content of a node.
func NodeText(node *html.Node) string {
	return CleanText(GetText(node))
}

// OwnText is NodeText without the contents of any descendant element of the
// given tag, so nested blocks are not counted twice.
func OwnText(node *html.Node, except atom.Atom) string {
	var buffer bytes.Buffer
	getTextRecursive(node, except, &buffer)
	return CleanText(buffer.String())
}

// FindTextNode returns the first text node (in document order) under root
// whose contents contain marker. Script and style contents are not searched.
func FindTextNode(root *html.Node, marker string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.TextNode && strings.Contains(root.Data, marker) {
		return root
	}
	if root.Type == html.ElementNode && (root.DataAtom == atom.Script || root.DataAtom == atom.Style) {
		return nil
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := FindTextNode(child, marker); found != nil {
			return found
		}
	}
	return nil
}

// ClosestAncestor returns the nearest ancestor of node (excluding node) that is
// an element of the given tag.
func ClosestAncestor(node *html.Node, tag atom.Atom) *html.Node {
	if node == nil {
		return nil
	}
	for cur := node.Parent; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && cur.DataAtom == tag {
			return cur
		}
	}
	return nil
}

// NextElement returns the first element of the given tag that follows node in
// document order. Descendants of node come first, since they follow its start tag.
func NextElement(node *html.Node, tag atom.Atom) *html.Node {
	if node == nil {
		return nil
	}
	cur := next(node)
	for cur != nil {
		if cur.Type == html.ElementNode && cur.DataAtom == tag {
			return cur
		}
		cur = next(cur)
	}
	return nil
}

// next steps one node forward in a pre-order walk.
func next(node *html.Node) *html.Node {
	if node.FirstChild != nil {
		return node.FirstChild
	}
	for cur := node; cur != nil; cur = cur.Parent {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
	}
	return nil
}

// HasClassContaining reports whether any class of the element contains substr.
func HasClassContaining(node *html.Node, substr string) bool {
	if node == nil {
		return false
	}
	for _, a := range node.Attr {
		if a.Key != "class" {
			continue
		}
		for _, cls := range strings.Fields(a.Val) {
			if strings.Contains(cls, substr) {
				return true
			}
		}
	}
	return false
}
