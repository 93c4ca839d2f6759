package document

import "github.com/roach88/fbxport/internal/fbx"

// props70 appends P records to a Properties70 node. Every record is
//
//	P: S name, S type, S label, S flags, values...
//
// Compound groups are a P record of type "Compound" followed by records
// named "Group|Field".
type props70 struct {
	node *fbx.Node
}

func newProps70(parent *fbx.Node) props70 {
	return props70{node: parent.AddChild(fbx.NewNode("Properties70"))}
}

func (p props70) add(name, typ, label, flags string, values ...*fbx.Property) props70 {
	rec := fbx.NewNode("P",
		fbx.String(name),
		fbx.String(typ),
		fbx.String(label),
		fbx.String(flags),
	)
	rec.AddProperties(values...)
	p.node.AddChild(rec)
	return p
}

func (p props70) integer(name string, v int32) props70 {
	return p.add(name, "int", "Integer", "", fbx.Int32(v))
}

func (p props70) boolean(name string, v bool) props70 {
	var i int32
	if v {
		i = 1
	}
	return p.add(name, "bool", "", "", fbx.Int32(i))
}

func (p props70) enum(name string, v int32) props70 {
	return p.add(name, "enum", "", "", fbx.Int32(v))
}

func (p props70) double(name string, v float64) props70 {
	return p.add(name, "double", "Number", "", fbx.Float64(v))
}

func (p props70) vector(name string, x, y, z float64) props70 {
	return p.add(name, "Vector3D", "Vector", "", fbx.Float64(x), fbx.Float64(y), fbx.Float64(z))
}

func (p props70) color(name string, r, g, b float64) props70 {
	return p.add(name, "ColorRGB", "Color", "", fbx.Float64(r), fbx.Float64(g), fbx.Float64(b))
}

func (p props70) kstring(name, v string) props70 {
	return p.add(name, "KString", "", "", fbx.String(v))
}

func (p props70) url(name, v string) props70 {
	return p.add(name, "KString", "Url", "", fbx.String(v))
}

func (p props70) dateTime(name, v string) props70 {
	return p.add(name, "DateTime", "", "", fbx.String(v))
}

func (p props70) ktime(name string, v int64) props70 {
	return p.add(name, "KTime", "Time", "", fbx.Int64(v))
}

func (p props70) compound(name string) props70 {
	return p.add(name, "Compound", "", "")
}

func (p props70) object(name string) props70 {
	return p.add(name, "object", "", "")
}

// animatable adds a P record flagged "A" whose type and label share name.
func (p props70) animatable(name string, values ...float64) props70 {
	props := make([]*fbx.Property, len(values))
	for i, v := range values {
		props[i] = fbx.Float64(v)
	}
	return p.add(name, name, "", "A", props...)
}

// group returns a helper adding "group|field" records.
func (p props70) group(name string) props70Group {
	p.compound(name)
	return props70Group{p: p, prefix: name + "|"}
}

type props70Group struct {
	p      props70
	prefix string
}

func (g props70Group) kstring(field, v string) props70Group {
	g.p.kstring(g.prefix+field, v)
	return g
}

func (g props70Group) dateTime(field, v string) props70Group {
	g.p.dateTime(g.prefix+field, v)
	return g
}
