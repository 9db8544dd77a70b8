package pipeline

// FindSegment maps a location — a single label or a "/"-joined path — to
// the nearest matching segment instance. The search starts at the caller
// (its parent for a processor) and expands outward one ancestor at a time,
// so of all segments whose path ends in the location, the one closest to
// the caller wins. Within a subtree, descendants are preferred over the
// node itself, so a deeper match shadows a self match. An exact full path
// from the root always disambiguates.
func (in *Instance) FindSegment(location string) (*Instance, bool) {
	labels := ParsePath(location).Split()
	if len(labels) == 0 {
		return nil, false
	}

	start := in
	if start.kind != KindContainer && start.parent != nil {
		start = start.parent
	}
	for node := start; node != nil; node = node.parent {
		if m := node.descendant(labels); m != nil {
			return m, true
		}
	}
	return nil, false
}

// descendant searches this node's subtree for the labelled path: a direct
// child match first, then grandchildren depth-first, then the node itself.
func (in *Instance) descendant(labels []string) *Instance {
	if len(labels) == 0 {
		return nil
	}

	if c, ok := in.directory[labels[0]]; ok {
		if len(labels) == 1 {
			return c
		}
		if m := c.descendant(labels[1:]); m != nil {
			return m
		}
	}

	for _, c := range in.children {
		if m := c.descendant(labels); m != nil {
			return m
		}
	}

	if in.label == labels[0] {
		if len(labels) == 1 {
			return in
		}
		if m := in.descendant(labels[1:]); m != nil {
			return m
		}
	}
	return nil
}
