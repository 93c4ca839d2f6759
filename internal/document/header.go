package document

import (
	"time"

	"github.com/roach88/fbxport/internal/fbx"
)

const (
	headerVersion    = 1003
	timestampVersion = 1000
	sceneInfoVersion = 100

	// sceneInfoName is "GlobalInfo" and "SceneInfo" joined by the
	// name/class separator used in binary files.
	sceneInfoName = "GlobalInfo\x00\x01SceneInfo"
)

func headerExtension(app AppInfo, url string, now time.Time) *fbx.Node {
	h := fbx.NewNode("FBXHeaderExtension")
	h.AddChild(fbx.NewNode("FBXHeaderVersion", fbx.Int32(headerVersion)))
	h.AddChild(fbx.NewNode("FBXVersion", fbx.Int32(int32(fbx.Version7400))))
	h.AddChild(fbx.NewNode("EncryptionType", fbx.Int32(0)))

	ts := h.AddChild(fbx.NewNode("CreationTimeStamp"))
	ts.AddChild(fbx.NewNode("Version", fbx.Int32(timestampVersion)))
	ts.AddChild(fbx.NewNode("Year", fbx.Int32(int32(now.Year()))))
	ts.AddChild(fbx.NewNode("Month", fbx.Int32(int32(now.Month()))))
	ts.AddChild(fbx.NewNode("Day", fbx.Int32(int32(now.Day()))))
	ts.AddChild(fbx.NewNode("Hour", fbx.Int32(int32(now.Hour()))))
	ts.AddChild(fbx.NewNode("Minute", fbx.Int32(int32(now.Minute()))))
	ts.AddChild(fbx.NewNode("Second", fbx.Int32(int32(now.Second()))))
	ts.AddChild(fbx.NewNode("Millisecond", fbx.Int32(int32(now.Nanosecond()/int(time.Millisecond)))))

	h.AddChild(fbx.NewNode("Creator", fbx.String(app.Creator())))
	h.AddChild(sceneInfo(app, url, now))
	return h
}

func sceneInfo(app AppInfo, url string, now time.Time) *fbx.Node {
	si := fbx.NewNode("SceneInfo", fbx.String(sceneInfoName), fbx.String("UserData"))
	si.AddChild(fbx.NewNode("Type", fbx.String("UserData")))
	si.AddChild(fbx.NewNode("Version", fbx.Int32(sceneInfoVersion)))

	meta := si.AddChild(fbx.NewNode("MetaData"))
	meta.AddChild(fbx.NewNode("Version", fbx.Int32(sceneInfoVersion)))
	for _, field := range []string{"Title", "Subject", "Author", "Keywords", "Revision", "Comment"} {
		meta.AddChild(fbx.NewNode(field, fbx.String("")))
	}

	gmt := gmtDateTime(now)
	p := newProps70(si)
	p.url("DocumentUrl", url).url("SrcDocumentUrl", url)
	p.group("Original").
		kstring("ApplicationVendor", app.Vendor).
		kstring("ApplicationName", app.Name).
		kstring("ApplicationVersion", app.Version).
		dateTime("DateTime_GMT", gmt).
		kstring("FileName", url)
	p.group("LastSaved").
		kstring("ApplicationVendor", app.Vendor).
		kstring("ApplicationName", app.Name).
		kstring("ApplicationVersion", app.Version).
		dateTime("DateTime_GMT", gmt)
	return si
}
