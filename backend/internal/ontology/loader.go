package ontology

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"

	apperrors "boardgame-advisor/backend/pkg/errors"
)

var (
	errNoRootElement   = errors.New("document has no root element")
	errSecondRoot      = errors.New("content after the root element")
	errTextOutsideRoot = errors.New("text outside the root element")
)

// xmlNamespace is what the decoder resolves the reserved xml prefix to.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// element is a generic XML subtree. Individuals are small, so each one is
// read whole and then walked.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr
	Children []element
}

func (e *element) attr(space, local string) string {
	for _, a := range e.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// walk visits every descendant of e in document order, not e itself.
func (e *element) walk(fn func(*element)) {
	for i := range e.Children {
		child := &e.Children[i]
		fn(child)
		child.walk(fn)
	}
}

func (e *element) isNamedIndividual() bool {
	return isNamedIndividual(e.XMLName)
}

func isNamedIndividual(name xml.Name) bool {
	return name.Space == NamespaceOWL && name.Local == "NamedIndividual"
}

// Load reads and parses the ontology document at path. A missing or
// unreadable file yields *errors.ErrOntologyAccess, malformed markup
// *errors.ErrOntologyFormat. Nothing is returned on failure.
func Load(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewOntologyAccess(path, err)
	}

	ont, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewOntologyFormat(path, err)
	}
	ont.Source = path
	return ont, nil
}

// Parse parses an ontology document from r.
func Parse(r io.Reader) (*Ontology, error) {
	ont, err := decode(r)
	if err != nil {
		return nil, apperrors.NewOntologyFormat("<stream>", err)
	}
	return ont, nil
}

// nsScope holds the namespace URIs bound on each open element. The decoder
// leaves an unbound prefix in Name.Space as is, so a space that no
// enclosing declaration binds means the document used an undeclared prefix.
type nsScope []map[string]struct{}

func (s *nsScope) push(start xml.StartElement) error {
	bound := map[string]struct{}{}
	for _, a := range start.Attr {
		if isNamespaceDecl(a.Name) {
			bound[a.Value] = struct{}{}
		}
	}
	*s = append(*s, bound)

	if !s.resolved(start.Name.Space) {
		return fmt.Errorf("undeclared namespace prefix %q on element %s", start.Name.Space, start.Name.Local)
	}
	for _, a := range start.Attr {
		if !isNamespaceDecl(a.Name) && !s.resolved(a.Name.Space) {
			return fmt.Errorf("undeclared namespace prefix %q on attribute %s", a.Name.Space, a.Name.Local)
		}
	}
	return nil
}

func (s *nsScope) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s nsScope) resolved(space string) bool {
	if space == "" || space == xmlNamespace {
		return true
	}
	for i := len(s) - 1; i >= 0; i-- {
		if _, ok := s[i][space]; ok {
			return true
		}
	}
	return false
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

func decode(r io.Reader) (*Ontology, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	ont := &Ontology{Individuals: []Individual{}}
	var scope nsScope
	depth := 0
	sawRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && sawRoot {
				return nil, errSecondRoot
			}
			sawRoot = true
			if err := scope.push(t); err != nil {
				return nil, err
			}

			if !isNamedIndividual(t.Name) {
				depth++
				continue
			}
			el, err := readElement(dec, t, &scope)
			if err != nil {
				return nil, err
			}
			collect(ont, el)

		case xml.EndElement:
			scope.pop()
			depth--

		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, errTextOutsideRoot
			}
		}
	}

	if !sawRoot {
		return nil, errNoRootElement
	}
	return ont, nil
}

// readElement reads the subtree opened by start, which must already be
// pushed onto scope, up to and including its end tag.
func readElement(dec *xml.Decoder, start xml.StartElement, scope *nsScope) (*element, error) {
	el := &element{XMLName: start.Name, Attrs: start.Copy().Attr}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := scope.push(t); err != nil {
				return nil, err
			}
			child, err := readElement(dec, t, scope)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, *child)
		case xml.EndElement:
			scope.pop()
			return el, nil
		}
	}
}

// collect appends the individual el describes, then any individuals nested
// inside it. Types and relations are gathered from all descendants.
func collect(ont *Ontology, el *element) {
	if about := el.attr(NamespaceRDF, "about"); about != "" {
		ont.Individuals = append(ont.Individuals, individualFrom(LocalName(about), el))
	}

	el.walk(func(child *element) {
		if child.isNamedIndividual() {
			if about := child.attr(NamespaceRDF, "about"); about != "" {
				ont.Individuals = append(ont.Individuals, individualFrom(LocalName(about), child))
			}
		}
	})
}

func individualFrom(id string, el *element) Individual {
	ind := Individual{ID: id, Types: []string{}, Relations: []Relation{}}

	el.walk(func(child *element) {
		resource := child.attr(NamespaceRDF, "resource")
		if resource == "" {
			return
		}
		if child.XMLName.Space == NamespaceRDF && child.XMLName.Local == "type" {
			ind.Types = append(ind.Types, LocalName(resource))
			return
		}
		if label, ok := relationElements[child.XMLName.Local]; ok {
			ind.Relations = append(ind.Relations, Relation{Label: label, Target: LocalName(resource)})
		}
	})

	return ind
}
