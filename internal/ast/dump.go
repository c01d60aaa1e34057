package ast

// Dump converts a markup sequence into a plain tree of maps and slices
// suitable for encoding as JSON or YAML. Opaque token streams are rendered
// back to source-like text.
func Dump(markups []Markup) []any {
	out := make([]any, 0, len(markups))
	for _, m := range markups {
		out = append(out, dumpMarkup(m))
	}
	return out
}

func dumpMarkup(m Markup) any {
	switch m := m.(type) {
	case *Literal:
		return map[string]any{"literal": m.Content}
	case *Splice:
		return map[string]any{"splice": m.Expr.String()}
	case *Element:
		node := map[string]any{"element": m.Name.String()}
		if attrs := dumpAttrs(m.Attrs); len(attrs) > 0 {
			node["attrs"] = attrs
		}
		if m.Body != nil {
			node["body"] = dumpMarkup(m.Body)
		} else {
			node["void"] = true
		}
		return node
	case *Block:
		return map[string]any{"block": Dump(m.Markups)}
	case *Special:
		return map[string]any{"head": m.Head.String(), "body": Dump(m.Body.Markups)}
	case *If:
		segments := make([]any, 0, len(m.Segments))
		for i := range m.Segments {
			segments = append(segments, dumpMarkup(&m.Segments[i]))
		}
		return map[string]any{"if": segments}
	case *Match:
		arms := make([]any, 0, len(m.Arms))
		for i := range m.Arms {
			arms = append(arms, dumpMarkup(&m.Arms[i]))
		}
		return map[string]any{"match": m.Head.String(), "arms": arms}
	case *Let:
		return map[string]any{"let": m.Tokens.String()}
	}
	return nil
}

func dumpAttrs(attrs Attrs) map[string]any {
	out := map[string]any{}
	if len(attrs.ClassesStatic) > 0 {
		classes := make([]any, 0, len(attrs.ClassesStatic))
		for _, c := range attrs.ClassesStatic {
			classes = append(classes, c.String())
		}
		out["classes"] = classes
	}
	if len(attrs.ClassesToggled) > 0 {
		toggled := make([]any, 0, len(attrs.ClassesToggled))
		for _, c := range attrs.ClassesToggled {
			toggled = append(toggled, map[string]any{
				"class": c.Name.String(),
				"if":    c.Toggler.Cond.String(),
			})
		}
		out["classes-toggled"] = toggled
	}
	if len(attrs.IDs) > 0 {
		ids := make([]any, 0, len(attrs.IDs))
		for _, id := range attrs.IDs {
			ids = append(ids, id.String())
		}
		out["ids"] = ids
	}
	if len(attrs.Attributes) > 0 {
		list := make([]any, 0, len(attrs.Attributes))
		for _, a := range attrs.Attributes {
			node := map[string]any{"name": a.Name.String()}
			switch a.Kind {
			case AttrNormal:
				node["value"] = dumpMarkup(a.Value)
			case AttrEmpty:
				node["empty"] = true
				if a.Toggler != nil {
					node["if"] = a.Toggler.Cond.String()
				}
			}
			list = append(list, node)
		}
		out["attributes"] = list
	}
	return out
}
