// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package manifest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/blobmover/sdk/config"
	"github.com/scc-digitalhub/blobmover/sdk/services/manifest"
)

func TestParseText(t *testing.T) {
	in := strings.Join([]string{
		"fre-mczbv-78d/audio/1.mp3 : images",
		"",
		"broken line without separator",
		`  fre-mczbv-78d/audio/2 b.mp3 : "hin-pqwrk-23h"  `,
		"a : b : c",
	}, "\n")

	entries, bad, err := manifest.ParseText(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []manifest.Entry{
		{Line: 1, Source: "fre-mczbv-78d/audio/1.mp3", Target: "images"},
		{Line: 4, Source: "fre-mczbv-78d/audio/2 b.mp3", Target: `"hin-pqwrk-23h"`},
	}, entries)

	require.Len(t, bad, 2)
	assert.Equal(t, 3, bad[0].Line)
	assert.Equal(t, 5, bad[1].Line)
	assert.True(t, errors.Is(bad[0], manifest.ErrNoSeparator))
}

func TestParsePairedStopsAtShorterList(t *testing.T) {
	sources := "fre/images/a.png\nfre/images/b.png\nfre/images/c.png\n"
	destinations := "archive/2024\n\n"

	entries, err := manifest.ParsePaired(strings.NewReader(sources), strings.NewReader(destinations))
	require.NoError(t, err)
	assert.Equal(t, []manifest.Entry{
		{Line: 1, Source: "fre/images/a.png", Target: "archive/2024"},
		{Line: 2, Source: "fre/images/b.png", Target: ""},
	}, entries)
}

func TestLoadTextMissingFile(t *testing.T) {
	_, _, err := manifest.LoadText(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = manifest.LoadPaired(filepath.Join(t.TempDir(), "a.txt"), filepath.Join(t.TempDir(), "b.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRecordsSingleJSON(t *testing.T) {
	recs, bad, err := manifest.ParseRecords("r.json", []byte(`{"langId":"hin-pqwrk-23h","images":["x/y/pic.png"]}`))
	require.NoError(t, err)
	assert.Empty(t, bad)
	require.Len(t, recs, 1)
	assert.Equal(t, "hin-pqwrk-23h", recs[0].LangID)
	assert.Equal(t, "r.json", recs[0].Origin)
	assert.Equal(t, []manifest.AssetGroup{{Type: "images", Paths: []string{"x/y/pic.png"}}}, recs[0].Assets)
}

func TestParseRecordsOrdersCategories(t *testing.T) {
	data := `[
	  {"langId": "a", "zines": ["z/1"], "documents": ["d/1"], "audio": ["au/1"], "images": ["i/1", "i/2"], "count": 3},
	  {"langId": "b", "videos": ["v/1"]}
	]`
	recs, bad, err := manifest.ParseRecords("many.json", []byte(data))
	require.NoError(t, err)
	assert.Empty(t, bad)
	require.Len(t, recs, 2)

	var types []string
	for _, g := range recs[0].Assets {
		types = append(types, g.Type)
	}
	assert.Equal(t, []string{"images", "documents", "audio", "zines"}, types)
	assert.Equal(t, []string{"i/1", "i/2", "d/1", "au/1", "z/1"}, recs[0].Paths())
	assert.Equal(t, "many.json", recs[1].Origin)
}

func TestParseRecordsYAML(t *testing.T) {
	data := "- langId: fre-mczbv-78d\n  videos:\n    - a/videos/v.mp4\n"
	recs, _, err := manifest.ParseRecords("r.yaml", []byte(data))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"a/videos/v.mp4"}, recs[0].Paths())
}

func TestParseRecordsErrors(t *testing.T) {
	_, _, err := manifest.ParseRecords("bad.json", []byte(`{"images": ["a/b"]}`))
	assert.ErrorContains(t, err, "missing langId")

	_, _, err = manifest.ParseRecords("bad.json", []byte(`{"langId": 4}`))
	assert.ErrorContains(t, err, "bad.json")

	_, _, err = manifest.ParseRecords("bad.json", []byte(`{"langId": "x", `))
	assert.Error(t, err)

	recs, _, err := manifest.ParseRecords("empty.json", nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestParseRecordsKeepsValidElements(t *testing.T) {
	data := `[
	  {"langId": "hin-pqwrk-23h", "images": ["x/y/pic.png"]},
	  {"images": ["x/y/pic.png"]},
	  "not a record",
	  {"langId": "fre-mczbv-78d", "videos": ["a/videos/v.mp4"]}
	]`
	recs, bad, err := manifest.ParseRecords("mixed.json", []byte(data))
	require.NoError(t, err)

	require.Len(t, recs, 2)
	assert.Equal(t, "hin-pqwrk-23h", recs[0].LangID)
	assert.Equal(t, "fre-mczbv-78d", recs[1].LangID)
	assert.Equal(t, "mixed.json", recs[1].Origin)

	require.Len(t, bad, 2)
	assert.Equal(t, 1, bad[0].Index)
	assert.Equal(t, 2, bad[1].Index)
	assert.ErrorContains(t, bad[0], "mixed.json: record 1: missing langId")

	_, _, err = manifest.ParseRecords("notarray.json", []byte(`[1, 2`))
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	store := config.NewMemoryStore()
	store.Put("meta", "records/one.json", []byte(`{"langId":"hin-pqwrk-23h","images":["x/y/pic.png"]}`))
	store.Put("meta", "records/two.yml", []byte("langId: fre-mczbv-78d\ndocuments: [a/documents/d.pdf]\n"))
	store.Put("meta", "records/broken.json", []byte(`{"langId":`))
	store.Put("meta", "records/readme.txt", []byte("ignored"))
	store.Put("meta", "records/zmixed.json", []byte(`[{"langId":"x","images":["a/images/b.png"]},{"langId":7}]`))
	store.Put("meta", "other/three.json", []byte(`{"langId":"x"}`))

	recs, bad, err := manifest.Discover(context.Background(), store, "meta", "records/")
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "records/one.json", recs[0].Origin)
	assert.Equal(t, "records/two.yml", recs[1].Origin)
	assert.Equal(t, "records/zmixed.json", recs[2].Origin)
	require.Len(t, bad, 2)
	assert.ErrorContains(t, bad[0], "records/broken.json")
	assert.ErrorContains(t, bad[1], "records/zmixed.json: record 1")
}

func TestIsRecordFile(t *testing.T) {
	assert.True(t, manifest.IsRecordFile("a/B.JSON"))
	assert.True(t, manifest.IsRecordFile("a.yaml"))
	assert.False(t, manifest.IsRecordFile("a.json.bak"))
}
