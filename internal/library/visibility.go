// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import "github.com/shelfmark/shelfmark/pkg/slice"

// FilterForViewer returns the subset of entries the viewer is allowed to see.
//
// Owners always see everything, including private entries; any other viewer
// (including anonymous, viewerID == "") sees only public entries. The filter
// is applied at read time on every cross-user listing and never mutates the
// underlying data.
func FilterForViewer(entries []*Entry, viewerID, ownerID string) []*Entry {
	if viewerID == ownerID {
		return entries
	}

	return slice.Filter(entries, func(entry *Entry) bool {
		return entry.IsPublic
	})
}
