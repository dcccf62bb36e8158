package store

import "strings"

// AddTag registers a tag under the next palette color. The name is trimmed
// first; empty and duplicate names are no-ops.
func (d *Document) AddTag(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if _, ok := d.FindTag(name); ok {
		return false
	}
	d.Tags = append(d.Tags, Tag{Name: name, Color: TagColor(len(d.Tags))})
	return true
}

// RemoveTag deletes the tag and cascades to every range carrying it.
func (d *Document) RemoveTag(name string) bool {
	name = strings.TrimSpace(name)
	idx := -1
	for i, t := range d.Tags {
		if t.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	d.Tags = append(d.Tags[:idx], d.Tags[idx+1:]...)
	kept := d.TaggedRanges[:0]
	for _, r := range d.TaggedRanges {
		if r.TagName == name {
			continue
		}
		kept = append(kept, r)
	}
	d.TaggedRanges = kept
	return true
}

// RecolorTag sets the display color of an existing tag.
func (d *Document) RecolorTag(name string, c RGB) bool {
	name = strings.TrimSpace(name)
	for i, t := range d.Tags {
		if t.Name == name {
			d.Tags[i].Color = c
			return true
		}
	}
	return false
}
