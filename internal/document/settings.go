package document

import "github.com/roach88/fbxport/internal/fbx"

const (
	settingsVersion    = 1000
	definitionsVersion = 100

	// timeMode 11 is 24 frames per second.
	timeMode = 11

	// timeSpanStop is 1 second in KTime units (1/46186158000 s).
	timeSpanStop = 46186158000
)

func globalSettings() *fbx.Node {
	gs := fbx.NewNode("GlobalSettings")
	gs.AddChild(fbx.NewNode("Version", fbx.Int32(settingsVersion)))

	newProps70(gs).
		integer("UpAxis", 1).
		integer("UpAxisSign", 1).
		integer("FrontAxis", 2).
		integer("FrontAxisSign", 1).
		integer("CoordAxis", 0).
		integer("CoordAxisSign", 1).
		integer("OriginalUpAxis", -1).
		integer("OriginalUpAxisSign", 1).
		double("UnitScaleFactor", 1).
		double("OriginalUnitScaleFactor", 1).
		color("AmbientColor", 0, 0, 0).
		kstring("DefaultCamera", "Producer Perspective").
		enum("TimeMode", timeMode).
		ktime("TimeSpanStart", 0).
		ktime("TimeSpanStop", timeSpanStop).
		double("CustomFrameRate", -1)
	return gs
}

// definitions declares the object types the file may contain, with the
// property template readers use to fill in omitted properties.
func definitions() *fbx.Node {
	d := fbx.NewNode("Definitions")
	d.AddChild(fbx.NewNode("Version", fbx.Int32(definitionsVersion)))
	d.AddChild(fbx.NewNode("Count", fbx.Int32(3)))

	objectType(d, "GlobalSettings", 1)
	meshTemplate(objectType(d, "Geometry", 1))
	nodeTemplate(objectType(d, "Model", 1))
	return d
}

func objectType(defs *fbx.Node, name string, count int32) *fbx.Node {
	ot := defs.AddChild(fbx.NewNode("ObjectType", fbx.String(name)))
	ot.AddChild(fbx.NewNode("Count", fbx.Int32(count)))
	return ot
}

func meshTemplate(ot *fbx.Node) {
	tmpl := ot.AddChild(fbx.NewNode("PropertyTemplate", fbx.String("FbxMesh")))
	newProps70(tmpl).
		color("Color", 0.8, 0.8, 0.8).
		vector("BBoxMin", 0, 0, 0).
		vector("BBoxMax", 0, 0, 0).
		boolean("Primary Visibility", true).
		boolean("Casts Shadows", true).
		boolean("Receive Shadows", true)
}

func nodeTemplate(ot *fbx.Node) {
	tmpl := ot.AddChild(fbx.NewNode("PropertyTemplate", fbx.String("FbxNode")))
	p := newProps70(tmpl)

	p.enum("QuaternionInterpolate", 0).
		vector("RotationOffset", 0, 0, 0).
		vector("RotationPivot", 0, 0, 0).
		vector("ScalingOffset", 0, 0, 0).
		vector("ScalingPivot", 0, 0, 0)

	limits(p, "Translation", 0)
	p.enum("RotationOrder", 0).
		boolean("RotationSpaceForLimitOnly", false)
	for _, axis := range axes {
		p.double("RotationStiffness"+axis, 0)
	}
	p.double("AxisLen", 10).
		vector("PreRotation", 0, 0, 0).
		vector("PostRotation", 0, 0, 0)
	limits(p, "Rotation", 0)
	p.enum("InheritType", 0)
	limits(p, "Scaling", 1)

	p.vector("GeometricTranslation", 0, 0, 0).
		vector("GeometricRotation", 0, 0, 0).
		vector("GeometricScaling", 1, 1, 1)
	for _, prefix := range []string{"MinDampRange", "MaxDampRange", "MinDampStrength", "MaxDampStrength", "PreferedAngle"} {
		for _, axis := range axes {
			p.double(prefix+axis, 0)
		}
	}

	p.object("LookAtProperty").
		object("UpVectorProperty").
		boolean("Show", true).
		boolean("NegativePercentShapeSupport", true).
		integer("DefaultAttributeIndex", -1).
		boolean("Freeze", false).
		boolean("LODBox", false).
		animatable("Lcl Translation", 0, 0, 0).
		animatable("Lcl Rotation", 0, 0, 0).
		animatable("Lcl Scaling", 1, 1, 1).
		animatable("Visibility", 1).
		add("Visibility Inheritance", "Visibility Inheritance", "", "", fbx.Int32(1))
}

var axes = []string{"X", "Y", "Z"}

// limits adds the <kind>Active/Min/Max block with per-axis toggles.
// upper is the default maximum on every axis.
func limits(p props70, kind string, upper float64) {
	p.boolean(kind+"Active", false).
		vector(kind+"Min", 0, 0, 0).
		vector(kind+"Max", upper, upper, upper)
	for _, bound := range []string{"Min", "Max"} {
		for _, axis := range axes {
			p.boolean(kind+bound+axis, false)
		}
	}
}
