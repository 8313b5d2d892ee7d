package stitch_test

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/stitcher/bundle"
	"github.com/viant/stitcher/stitch"
	"os"
	"path/filepath"
	"testing"
)

func TestSet_SpliceToURL(t *testing.T) {
	var testCases = []struct {
		description string
		bundles     func(t *testing.T) []*bundle.Bundle
		expectErr   bool
	}{
		{
			description: "written",
			bundles: func(t *testing.T) []*bundle.Bundle {
				return []*bundle.Bundle{newBundle(t, "docs", "master", page(t, "index.txt", "intro"))}
			},
		},
		{
			description: "partial output removed",
			bundles: func(t *testing.T) []*bundle.Bundle {
				return []*bundle.Bundle{newBundle(t, "broken", "master", entry{name: "documents/index.bson", data: []byte("garbage")})}
			},
			expectErr: true,
		},
	}
	for _, testCase := range testCases {
		location := filepath.Join(t.TempDir(), "site.zip")
		set := stitch.New(testCase.bundles(t))
		err := set.SpliceToURL(context.Background(), afs.New(), bundle.NewSiteMetadata("mongodb", "main"), location)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			_, statErr := os.Stat(location)
			assert.True(t, os.IsNotExist(statErr), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		spliced, err := bundle.Open(context.Background(), location)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, "mongodb/main", spliced.Namespace(), testCase.description)
		assert.Equal(t, 1, set.LastReport().Documents, testCase.description)
		assert.Nil(t, spliced.Close(), testCase.description)
	}
}
