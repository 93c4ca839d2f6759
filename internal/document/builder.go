package document

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/fbxport/internal/fbx"
)

// AppInfo identifies the application writing the file. It replaces any
// lookup of process-wide version state.
type AppInfo struct {
	Vendor  string
	Name    string
	Version string
	// Flavor is the build flavor, e.g. "release" or "win-x64".
	Flavor string
}

// Creator renders the creator string, "Name Version (Flavor)".
// Empty parts are left out.
func (a AppInfo) Creator() string {
	s := strings.TrimSpace(a.Name + " " + a.Version)
	if a.Flavor != "" {
		s = strings.TrimSpace(s + " (" + a.Flavor + ")")
	}
	return s
}

func (a AppInfo) normalized() AppInfo {
	return AppInfo{
		Vendor:  norm.NFC.String(a.Vendor),
		Name:    norm.NFC.String(a.Name),
		Version: norm.NFC.String(a.Version),
		Flavor:  norm.NFC.String(a.Flavor),
	}
}

// Options configures Build.
type Options struct {
	App AppInfo

	// DocumentURL is recorded as the document and original file name,
	// usually the destination path.
	DocumentURL string

	// Now defaults to time.Now. It is called exactly once per Build.
	Now func() time.Time

	// FileIDs defaults to RandomFileIDs.
	FileIDs FileIDGenerator
}

// Document is a built skeleton.
type Document struct {
	// Roots holds the top-level records in file order.
	Roots []*fbx.Node

	// Objects and Connections are the (empty) scene sections, exposed so
	// geometry and model records can be attached before marshalling.
	Objects     *fbx.Node
	Connections *fbx.Node

	FileID    FileID
	CreatedAt time.Time
	Creator   string
}

// Marshal encodes the document with the 7.4 preamble.
func (d *Document) Marshal() ([]byte, error) {
	return fbx.Marshal(fbx.Version7400, d.Roots)
}

// Build assembles the document skeleton.
func Build(opts Options) *Document {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FileIDs == nil {
		opts.FileIDs = RandomFileIDs{}
	}
	app := opts.App.normalized()
	url := norm.NFC.String(opts.DocumentURL)
	now := opts.Now()
	id := opts.FileIDs.Generate()

	doc := &Document{
		Objects:     fbx.NewNode("Objects"),
		Connections: fbx.NewNode("Connections"),
		FileID:      id,
		CreatedAt:   now,
		Creator:     app.Creator(),
	}
	doc.Roots = []*fbx.Node{
		headerExtension(app, url, now),
		fbx.NewNode("FileId", fbx.Binary(id[:])),
		fbx.NewNode("CreationTime", fbx.String(creationTime(now))),
		fbx.NewNode("Creator", fbx.String(app.Creator())),
		globalSettings(),
		fbx.NewNode("Documents"),
		fbx.NewNode("References"),
		definitions(),
		doc.Objects,
		doc.Connections,
		takes(),
	}
	return doc
}

// creationTime formats t as "YYYY-MM-DD HH:MM:SS:mmm".
func creationTime(t time.Time) string {
	return fmt.Sprintf("%s:%03d", t.Format("2006-01-02 15:04:05"), t.Nanosecond()/int(time.Millisecond))
}

// gmtDateTime formats t in UTC as "DD/MM/YYYY HH:MM:SS.mmm".
func gmtDateTime(t time.Time) string {
	return t.UTC().Format("02/01/2006 15:04:05.000")
}

func takes() *fbx.Node {
	n := fbx.NewNode("Takes")
	n.AddChild(fbx.NewNode("Current", fbx.String("")))
	return n
}
