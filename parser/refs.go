package parser

import (
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/erraggy/oastypes/internal/pathutil"
	"github.com/erraggy/oastypes/oaserrors"
	"go.yaml.in/yaml/v4"
)

// refType classifies a $ref as "local", "file" or "http" relative to the referencing
// document.
func refType(from *rawDoc, ref string) string {
	loc, _ := pathutil.SplitRef(ref)
	switch {
	case loc == "":
		return "local"
	case pathutil.IsHTTPRef(loc) || from.url != "":
		return "http"
	default:
		return "file"
	}
}

// locate finds the node a $ref points at, loading its document if needed, and returns
// the canonical pointer of the target.
func (l *loader) locate(from *rawDoc, ref string) (*rawDoc, pathutil.Pointer, *yaml.Node, error) {
	loc, frag := pathutil.SplitRef(ref)
	doc := from
	if loc != "" {
		var err error
		if doc, err = l.document(from, ref, loc); err != nil {
			return nil, pathutil.Pointer{}, nil, err
		}
	}

	tokens, err := pathutil.ParseFragment(frag)
	if err != nil {
		return nil, pathutil.Pointer{}, nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: refType(from, ref),
			Message: "malformed JSON pointer",
			Cause:   err,
		}
	}

	n := doc.root
	ptr := pathutil.NewPointer(doc.location)
	for _, tok := range tokens {
		switch {
		case isMapping(n):
			n = child(n, tok)
		case n != nil && n.Kind == yaml.SequenceNode:
			idx, err := strconv.Atoi(tok)
			elems := items(n)
			if err != nil || idx < 0 || idx >= len(elems) {
				n = nil
			} else {
				n = elems[idx]
			}
		default:
			n = nil
		}
		if n == nil {
			return nil, pathutil.Pointer{}, nil, &oaserrors.ReferenceError{
				Ref:     ref,
				RefType: refType(from, ref),
				Message: "target not found",
			}
		}
		ptr = ptr.Append(tok)
	}
	return doc, ptr, n, nil
}

// document loads (or returns the cached) external document named by loc.
func (l *loader) document(from *rawDoc, ref, loc string) (*rawDoc, error) {
	if pathutil.IsHTTPRef(loc) || from.url != "" {
		return l.remoteDocument(from, ref, loc)
	}

	path := filepath.FromSlash(loc)
	if !filepath.IsAbs(path) {
		path = filepath.Join(from.dir, path)
	}
	path = filepath.Clean(path)
	if path == l.root.file {
		return l.root, nil
	}
	if !pathutil.WithinBase(l.root.dir, path) {
		return nil, &oaserrors.ReferenceError{
			Ref:             ref,
			RefType:         "file",
			IsPathTraversal: true,
			Message:         "resolves outside " + l.root.dir,
		}
	}
	rel, err := filepath.Rel(l.root.dir, path)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "file", Cause: err}
	}
	key := filepath.ToSlash(rel)
	if d, ok := l.docs[key]; ok {
		return d, nil
	}
	if err := l.checkCache(); err != nil {
		return nil, err
	}

	data, err := l.p.readFile(path)
	if err != nil {
		if isFatal(err) {
			return nil, err
		}
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "file", Message: "cannot read document", Cause: err}
	}
	root, err := l.p.decodeNode(data, detectFormatFromPath(path), path)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "file", Message: "cannot decode document", Cause: err}
	}
	d := &rawDoc{location: key, root: root, dir: filepath.Dir(path)}
	l.docs[key] = d
	l.p.log().Debug("loaded external document", "location", key)
	return d, nil
}

func (l *loader) remoteDocument(from *rawDoc, ref, loc string) (*rawDoc, error) {
	if !l.p.ResolveHTTPRefs {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: "http",
			Message: "HTTP references are disabled (enable ResolveHTTPRefs)",
		}
	}
	abs := loc
	if from.url != "" {
		base, err := url.Parse(from.url)
		if err != nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "http", Cause: err}
		}
		rel, err := url.Parse(loc)
		if err != nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "http", Cause: err}
		}
		abs = base.ResolveReference(rel).String()
	}
	if abs == l.root.url {
		return l.root, nil
	}
	if d, ok := l.docs[abs]; ok {
		return d, nil
	}
	if err := l.checkCache(); err != nil {
		return nil, err
	}

	data, contentType, err := l.p.fetchURL(l.ctx, abs)
	if err != nil {
		if isFatal(err) {
			return nil, err
		}
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "http", Message: "cannot fetch document", Cause: err}
	}
	root, err := l.p.decodeNode(data, detectFormatFromURL(abs, contentType), abs)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "http", Message: "cannot decode document", Cause: err}
	}
	d := &rawDoc{location: abs, root: root, url: abs}
	l.docs[abs] = d
	l.p.log().Debug("loaded remote document", "url", abs)
	return d, nil
}

func (l *loader) checkCache() error {
	// The root document does not count against the limit.
	if loaded := len(l.docs) - 1; loaded >= l.p.maxCachedDocuments() {
		return &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        int64(l.p.maxCachedDocuments()),
			Actual:       int64(loaded + 1),
		}
	}
	return nil
}
