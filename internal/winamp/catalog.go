package winamp

import (
	"fmt"
)

// CatalogItem is one node of the media library tree. Handle is only
// meaningful to the target and only until the target next changes its
// tree, so it is never cached across ListChildren calls.
type CatalogItem struct {
	Label  string
	Handle uint32
}

// ListChildren walks the media library tree along path, a list of labels
// from the root, and returns the children of the last node. An empty path
// lists the top level.
//
// At each level the whole sibling run is fetched and labelled before the
// next label is matched. A missing label fails with *CatalogNotFoundError;
// a matched node without children fails with *NoChildrenError and nothing
// more is sent to the target.
func (s *Session) ListChildren(path []string) ([]CatalogItem, error) {
	rc, err := s.channel.library(0, mlIPCTreeItemGetRoot)
	if err != nil {
		return nil, err
	}
	handle := uint32(rc)

	for {
		siblings, err := s.siblings(handle)
		if err != nil {
			return nil, err
		}
		if len(path) == 0 {
			return siblings, nil
		}

		label := path[0]
		path = path[1:]

		match, ok := findLabel(siblings, label)
		if !ok {
			return nil, &CatalogNotFoundError{Label: label}
		}

		rc, err := s.channel.library(uintptr(match), mlIPCTreeItemGetChild)
		if err != nil {
			return nil, err
		}
		if rc == 0 {
			return nil, &NoChildrenError{Label: label}
		}
		handle = uint32(rc)
	}
}

func findLabel(items []CatalogItem, label string) (uint32, bool) {
	for _, it := range items {
		if it.Label == label {
			return it.Handle, true
		}
	}
	return 0, false
}

// siblings returns first and every following sibling, in tree order.
func (s *Session) siblings(first uint32) ([]CatalogItem, error) {
	var items []CatalogItem
	for h := first; h != 0; {
		label, err := s.label(h)
		if err != nil {
			return nil, err
		}
		items = append(items, CatalogItem{Label: label, Handle: h})

		rc, err := s.channel.library(uintptr(h), mlIPCTreeItemGetNext)
		if err != nil {
			return nil, err
		}
		h = uint32(rc)
	}
	return items, nil
}

// label asks the target to fill a pre-allocated title buffer for handle.
func (s *Session) label(handle uint32) (title string, err error) {
	buf, err := s.marsh.WriteZeroed(maxPath)
	if err != nil {
		return "", fmt.Errorf("catalog label: %w", err)
	}
	defer release(buf, &err)

	info := NewRecord(TreeItemInfoShape)
	info.SetUint32("item.size", uint32(TreeItemShape.Size()))
	info.SetPointer("item.title", buf.Addr)
	info.SetUint32("item.title_len", maxPath-1)
	info.SetUint32("mask", mltiText)
	info.SetUint32("handle", handle)

	env, err := s.marsh.WriteRecord(info)
	if err != nil {
		return "", fmt.Errorf("catalog label: %w", err)
	}
	defer release(env, &err)

	rc, err := s.channel.library(uintptr(env.Addr), mlIPCTreeItemGetInfo)
	if err != nil {
		return "", err
	}
	if rc != 1 {
		return "", &ReplyError{Op: fmt.Sprintf("catalog item %d info", handle), Code: rc}
	}

	return s.marsh.ReadString(buf.Addr, BoundedString{Max: maxPath})
}
