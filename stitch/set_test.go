package stitch_test

import (
	"bytes"
	"context"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/viant/stitcher/ast"
	"github.com/viant/stitcher/bundle"
	"github.com/viant/stitcher/stitch"
	"go.uber.org/goleak"
	"testing"
)

type entry struct {
	name string
	data []byte
}

func page(t *testing.T, fileID ast.FileID, targets ...string) entry {
	var children []*ast.Node
	for _, id := range targets {
		children = append(children, ast.NewNode(&ast.Target{Domain: "std", Name: "label", Children: []*ast.Node{
			ast.NewNode(&ast.TargetIdentifier{IDs: []string{id}}, 1),
		}}, 1))
	}
	refRole := &ast.RefRole{Role: ast.Role{Domain: "std", Name: "label", Target: "intro"}}
	refRole.Resolve("index", "std-label-intro")
	children = append(children, ast.NewNode(refRole, 2))
	doc := &ast.Document{
		PageID:   fileID.WithoutKnownSuffix(),
		Filename: fileID,
		AST:      ast.NewNode(&ast.Root{FileID: fileID, Children: children}, 0),
	}
	data, err := doc.Encode()
	assert.Nil(t, err)
	return entry{name: "documents/" + fileID.WithoutKnownSuffix() + ".bson", data: data}
}

func diagnostics(t *testing.T, name string) entry {
	data, err := bundle.DiagnosticsData{{Severity: bundle.SeverityError, Start: 3, Message: "broken"}}.Encode()
	assert.Nil(t, err)
	return entry{name: "diagnostics/" + name, data: data}
}

func asset(hash string, content string) entry {
	return entry{name: "assets/" + hash, data: []byte(content)}
}

func newBundle(t *testing.T, project, branch string, entries ...entry) *bundle.Bundle {
	buffer := &bytes.Buffer{}
	writer := bundle.NewWriter(buffer)
	assert.Nil(t, writer.WriteSite(bundle.NewSiteMetadata(project, branch)))
	for _, item := range entries {
		assert.Nil(t, writer.WriteEntry(item.name, item.data))
	}
	assert.Nil(t, writer.Close())
	ret, err := bundle.Load(project+".zip", buffer.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return ret
}

func TestSet_Link(t *testing.T) {
	defer goleak.VerifyNone(t)
	set := stitch.New([]*bundle.Bundle{
		newBundle(t, "docs", "master", page(t, "index.txt", "intro", "install"), page(t, "tutorial/install.txt", "install")),
		newBundle(t, "compass", "beta", page(t, "index.txt", "intro")),
	}, stitch.WithWorkers(2))
	if !assert.Nil(t, set.Link(context.Background())) {
		return
	}
	db := set.Database()
	assert.Equal(t, []string{"std:label:install", "std:label:intro"}, db.Keys())

	var htmlIDs = map[string]bool{}
	for _, key := range db.Keys() {
		for _, result := range db.Get(key) {
			assert.False(t, htmlIDs[result.HTMLID], result.HTMLID)
			htmlIDs[result.HTMLID] = true
		}
	}
	assert.Equal(t, map[string]bool{
		"std-label-install":   true,
		"std-label-install-1": true,
		"std-label-intro":     true,
		"std-label-intro-1":   true,
	}, htmlIDs)
}

func TestSet_Link_SharedAnchorAcrossBundles(t *testing.T) {
	defer goleak.VerifyNone(t)
	set := stitch.New([]*bundle.Bundle{
		newBundle(t, "docs", "master", page(t, "index.txt", "intro")),
		newBundle(t, "compass", "beta", page(t, "index.txt", "intro")),
	}, stitch.WithWorkers(1))
	if !assert.Nil(t, set.Link(context.Background())) {
		return
	}
	results := set.Database().Get("std:label:intro")
	if !assert.Len(t, results, 2) {
		return
	}
	assert.Equal(t, "std-label-intro", results[0].HTMLID)
	assert.Equal(t, "std-label-intro-1", results[1].HTMLID)
}

func TestSet_Splice(t *testing.T) {
	defer goleak.VerifyNone(t)
	set := stitch.New([]*bundle.Bundle{
		newBundle(t, "docs", "master",
			page(t, "index.txt", "intro"),
			asset("9f2c", "png"),
			diagnostics(t, "index.bson"),
		),
		newBundle(t, "compass", "beta",
			page(t, "index.txt", "intro"),
			asset("9f2c", "png"),
			asset("77ab", "svg"),
		),
	})
	output := &bytes.Buffer{}
	if !assert.Nil(t, set.Splice(context.Background(), bundle.NewSiteMetadata("mongodb", "main"), output)) {
		return
	}
	assert.Equal(t, stitch.Report{Documents: 2, Diagnostics: 1, Assets: 2, DuplicateAssets: 1}, set.LastReport())

	spliced, err := bundle.Load("out.zip", output.Bytes())
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "mongodb/main", spliced.Namespace())
	var paths = map[string]bool{}
	for element, err := range spliced.Elements() {
		if !assert.Nil(t, err) {
			return
		}
		paths[element.FullPath()] = true
		doc, ok := element.Document()
		if !ok {
			continue
		}
		namespace := "docs/master"
		if element.Name == "compass/beta/index.bson" {
			namespace = "compass/beta"
		}
		assert.Equal(t, namespace+"/index", doc.PageID)
		assert.EqualValues(t, namespace+"/index.txt", doc.AST.Data.(*ast.Root).FileID)
		ast.ForEach(doc.AST, func(node *ast.Node) {
			if refRole, ok := node.Data.(*ast.RefRole); ok {
				fileID, htmlID, _ := refRole.Resolved()
				assert.Equal(t, namespace+"/index", fileID)
				assert.Equal(t, "std-label-intro", htmlID)
			}
		})
	}
	// entries are laid out as category/namespace/name
	assert.Equal(t, map[string]bool{
		"documents/docs/master/index.bson":   true,
		"documents/compass/beta/index.bson":  true,
		"diagnostics/docs/master/index.bson": true,
		"assets/9f2c":                        true,
		"assets/77ab":                        true,
	}, paths)
}

func TestSet_Splice_AssetConflict(t *testing.T) {
	defer goleak.VerifyNone(t)
	set := stitch.New([]*bundle.Bundle{
		newBundle(t, "a", "main", asset("9f2c", "png")),
		newBundle(t, "b", "main", asset("9f2c", "jpg")),
	}, stitch.WithWorkers(1))
	if !assert.Nil(t, set.Splice(context.Background(), bundle.NewSiteMetadata("mongodb", "main"), &bytes.Buffer{})) {
		return
	}
	assert.Equal(t, stitch.Report{Assets: 1, DuplicateAssets: 1, ConflictingAssets: 1}, set.LastReport())
}

func TestSet_Splice_Counts(t *testing.T) {
	defer goleak.VerifyNone(t)
	var testCases = []struct {
		description string
		bundles     int
		pages       int
		workers     int
		queueSize   int
	}{
		{description: "single bundle", bundles: 1, pages: 3, workers: 1, queueSize: 1},
		{description: "more bundles than workers", bundles: 8, pages: 5, workers: 2, queueSize: 1},
		{description: "default queue", bundles: 4, pages: 20, workers: 4},
		{description: "no bundles", bundles: 0, workers: 1},
	}
	for _, testCase := range testCases {
		var bundles []*bundle.Bundle
		for i := 0; i < testCase.bundles; i++ {
			var entries = []entry{asset("shared", "logo")}
			for j := 0; j < testCase.pages; j++ {
				entries = append(entries, page(t, ast.FileID(fmt.Sprintf("page%d.txt", j))))
			}
			bundles = append(bundles, newBundle(t, fmt.Sprintf("p%d", i), "main", entries...))
		}
		set := stitch.New(bundles, stitch.WithWorkers(testCase.workers), stitch.WithQueueSize(testCase.queueSize))
		output := &bytes.Buffer{}
		if !assert.Nil(t, set.Splice(context.Background(), bundle.NewSiteMetadata("mongodb", "main"), output), testCase.description) {
			continue
		}
		report := set.LastReport()
		assert.Equal(t, testCase.bundles*testCase.pages, report.Documents, testCase.description)
		assert.Equal(t, min(1, testCase.bundles), report.Assets, testCase.description)
		assert.Equal(t, max(0, testCase.bundles-1), report.DuplicateAssets, testCase.description)

		spliced, err := bundle.Load("out.zip", output.Bytes())
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		var count int
		for _, err := range spliced.Elements() {
			assert.Nil(t, err, testCase.description)
			count++
		}
		assert.Equal(t, report.Entries()-1, count, testCase.description)
	}
}

func TestSet_MalformedDocument(t *testing.T) {
	defer goleak.VerifyNone(t)
	bundles := []*bundle.Bundle{
		newBundle(t, "docs", "master", page(t, "index.txt", "intro")),
		newBundle(t, "broken", "master", entry{name: "documents/index.bson", data: []byte("garbage")}),
	}
	set := stitch.New(bundles, stitch.WithQueueSize(1))
	assert.NotNil(t, set.Link(context.Background()))
	assert.NotNil(t, set.Splice(context.Background(), bundle.NewSiteMetadata("mongodb", "main"), &bytes.Buffer{}))
	assert.Equal(t, stitch.Report{}, set.LastReport())
}

func TestSet_Splice_InvalidSite(t *testing.T) {
	set := stitch.New(nil)
	assert.NotNil(t, set.Splice(context.Background(), bundle.NewSiteMetadata("mongodb", ""), &bytes.Buffer{}))
}

func TestSet_Splice_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	var entries []entry
	for j := 0; j < 50; j++ {
		entries = append(entries, page(t, ast.FileID(fmt.Sprintf("page%d.txt", j))))
	}
	set := stitch.New([]*bundle.Bundle{newBundle(t, "docs", "master", entries...)}, stitch.WithQueueSize(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NotNil(t, set.Splice(ctx, bundle.NewSiteMetadata("mongodb", "main"), &bytes.Buffer{}))
}
