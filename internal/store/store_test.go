package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scivis/internal/identity"
	"scivis/internal/logging"
	"scivis/pkg/colorutil"
)

func writeStore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colors.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func names(c *Collection) []string {
	var out []string
	for _, r := range c.Records() {
		out = append(out, r.Name)
	}
	return out
}

func TestLegacyEntry(t *testing.T) {
	s := New(writeStore(t, `{"myred": [1, 0, 0]}`))

	byID, err := s.Load(LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	require.NoError(t, err)
	r, ok := byID.Get("ff000000ffff")
	require.True(t, ok)
	assert.Equal(t, "myred", r.Name)
	assert.Equal(t, colorutil.RGB(1, 0, 0), r.Color)

	byName, err := s.Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, KeyByName, byName.Mode())
	assert.Equal(t, map[string]colorutil.Color{"myred": colorutil.RGB(1, 0, 0)}, byName.Colors())
}

func TestMixedShapes(t *testing.T) {
	path := writeStore(t, `{
		"legacy": [0, 0, 1],
		"00ff0055ffff": {"color": [0, 1, 0], "name": "leaf"},
		"sun": {"color": [1, 1, 0], "id": "custom-id"},
		"ff000000ffff": {"color": [1, 0, 0]},
		"plain": {"color": [0.5, 0.5, 0.5]},
		"both": {"color": [0, 1, 1], "id": "cyan-id", "name": "ignored"},
		"nocolor": {"name": "x"},
		"bad": "string",
		"range": [2, 0, 0]
	}`)
	var logBuf bytes.Buffer
	s := New(path, WithLogger(logging.New("debug", &logBuf)))

	c, err := s.Load(LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	require.NoError(t, err)

	want := []Record{
		{ID: "0000ffaaffff", Color: colorutil.RGB(0, 0, 1), Name: "legacy"},
		{ID: "00ff0055ffff", Color: colorutil.RGB(0, 1, 0), Name: "leaf"},
		{ID: "custom-id", Color: colorutil.RGB(1, 1, 0), Name: "sun"},
		{ID: "ff000000ffff", Color: colorutil.RGB(1, 0, 0), Name: "color_ff0000"},
		{ID: "7f7f7f00007f", Color: colorutil.RGB(0.5, 0.5, 0.5), Name: "plain"},
		{ID: "cyan-id", Color: colorutil.RGB(0, 1, 1), Name: "both"},
	}
	if diff := cmp.Diff(want, c.Records()); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	out := logBuf.String()
	for _, key := range []string{"nocolor", "bad", "range"} {
		assert.Contains(t, out, key)
	}
}

func TestRoundTripAllViews(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "colors.json")
	s := New(path)
	want := []Record{
		NewRecord("zeta", colorutil.RGB(0.2, 0.4, 0.6)),
		NewRecord("alpha", colorutil.RGB(1, 0.5, 0)),
		NewRecord("mid", colorutil.RGB(0.5, 0.5, 0.5)),
	}
	for _, r := range want {
		id, err := s.AddColor(r.Name, r.Color)
		require.NoError(t, err)
		assert.Equal(t, r.ID, id)
	}

	for _, useID := range []bool{true, false} {
		require.NoError(t, s.Save(CollectionOf(KeyByID, want...), useID))
		for _, opts := range []LoadOptions{{}, {IncludeMeta: true}, {UseIDAsKey: true}, {IncludeMeta: true, UseIDAsKey: true}} {
			c, err := s.Load(opts)
			require.NoError(t, err)
			assert.Equal(t, keyMode(opts), c.Mode())
			if diff := cmp.Diff(want, c.Records()); diff != "" {
				t.Errorf("useID=%v opts=%+v (-want +got):\n%s", useID, opts, diff)
			}
		}
	}
}

func TestSaveShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.json")
	s := New(path)
	c := CollectionOf(KeyByName, NewRecord("b", colorutil.Red), NewRecord("a", colorutil.Blue))

	require.NoError(t, s.Save(c, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
  "ff000000ffff": {
    "color": [
      1,
      0,
      0
    ],
    "name": "b"
  },
  "0000ffaaffff": {
    "color": [
      0,
      0,
      1
    ],
    "name": "a"
  }
}
`, string(data))

	require.NoError(t, s.Save(c, false))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]nameKeyedValue
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "ff000000ffff", doc["b"].ID)
	assert.Equal(t, colorutil.Blue, doc["a"].Color)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestAddColorUpserts(t *testing.T) {
	s := New(writeStore(t, `{}`))
	_, err := s.AddColor("first", colorutil.Red)
	require.NoError(t, err)
	_, err = s.AddColor("other", colorutil.Blue)
	require.NoError(t, err)
	_, err = s.AddColor("renamed", colorutil.Red)
	require.NoError(t, err)

	c, err := s.Load(LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"renamed", "other"}, names(c))
}

func TestMissingFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	c, err := New(path).Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, defaultNames, names(c))

	_, err = New(path, WithStrict(true)).Load(LoadOptions{})
	var readErr *StoreReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, path, readErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNonObjectFile(t *testing.T) {
	for _, content := range []string{`[1, 2, 3]`, `not json`, `{"a": [1, 0, 0]} trailing`} {
		path := writeStore(t, content)
		c, err := New(path).Load(LoadOptions{})
		require.NoError(t, err, content)
		assert.Equal(t, len(defaultNames), c.Len(), content)

		_, err = New(path, WithStrict(true)).Load(LoadOptions{})
		var readErr *StoreReadError
		assert.ErrorAs(t, err, &readErr, content)
	}
}

func TestEmptyObjectIsEmptyStore(t *testing.T) {
	c, err := New(writeStore(t, `{}`)).Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestGetColor(t *testing.T) {
	s := New(writeStore(t, `{
		"ff000000ffff": {"color": [1, 0, 0], "name": "fire"},
		"ocean": [0, 0, 1]
	}`))

	c, err := s.GetColor("ff000000ffff")
	require.NoError(t, err)
	assert.Equal(t, colorutil.Red, c)

	c, err = s.GetColor("ocean")
	require.NoError(t, err)
	assert.Equal(t, colorutil.Blue, c)

	c, err = s.GetColor("fire")
	require.NoError(t, err)
	assert.Equal(t, colorutil.Red, c)

	_, err = s.GetColor("nothing")
	var nf *ColorNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nothing", nf.Key)

	dup := New(writeStore(t, `{
		"ff000000ffff": {"color": [1, 0, 0], "name": "x"},
		"0000ffaaffff": {"color": [0, 0, 1], "name": "x"}
	}`))
	c, err = dup.GetColor("x")
	require.NoError(t, err)
	assert.Equal(t, colorutil.Red, c, "first record with the name wins")
}

func TestGetColorWithoutPath(t *testing.T) {
	s := New("")
	c, err := s.GetColor("purple")
	require.NoError(t, err)
	assert.Equal(t, colorutil.RGB(0.5, 0, 0.5), c)

	c, err = s.GetColor(identity.GenerateID(colorutil.RGB(1, 0.5, 0)))
	require.NoError(t, err)
	assert.Equal(t, colorutil.RGB(1, 0.5, 0), c)

	_, err = s.GetColor("salmon")
	var nf *ColorNotFoundError
	assert.ErrorAs(t, err, &nf)

	assert.Error(t, s.Save(NewCollection(KeyByID), true))
}

func TestGetColorByID(t *testing.T) {
	s := New(writeStore(t, `{
		"ff000000ffff": {"color": [1, 0, 0], "name": "fire"},
		"ff000011aaaa": {"color": [1, 0, 0.001], "name": "ember"}
	}`))

	r, err := s.GetColorByID("ff000011aaaa")
	require.NoError(t, err)
	assert.Equal(t, "ember", r.Name)

	r, err = s.GetColorByID("ff0000999999")
	require.NoError(t, err)
	assert.Equal(t, "fire", r.Name, "prefix fallback takes the first match")

	_, err = s.GetColorByID("123456000000")
	var nf *ColorNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestConvert(t *testing.T) {
	src := writeStore(t, `{"sky": [0.2, 0.4, 0.6], "night": {"color": [0, 0, 0], "id": "000000000000"}}`)

	dst, n, err := Convert(src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, filepath.Join(filepath.Dir(src), "colors_id_based.json"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	var doc map[string]idKeyedValue
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "sky", doc["33669994aa99"].Name)
	assert.Equal(t, "night", doc["000000000000"].Name)

	_, _, err = Convert(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	c, skipped, err := Normalize([]byte(`{"a": [1, 0, 0], "b": [1, 0, 0], "c": 5}`))
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	var ee *EntryError
	require.ErrorAs(t, skipped[0], &ee)
	assert.Equal(t, "c", ee.Key)
	assert.Equal(t, []string{"b"}, names(c), "same ID collapses to the later entry")

	_, _, err = Normalize([]byte(`"nope"`))
	assert.Error(t, err)
}

func TestFamilies(t *testing.T) {
	c := CollectionOf(KeyByID,
		Record{ID: "aaaaaa000001", Name: "lone"},
		Record{ID: "ff0000000001", Name: "r1"},
		Record{ID: "ff0000000002", Name: "r2"},
		Record{ID: "bbbbbb000001", Name: "other"},
	)
	fams := Families(c)
	require.Len(t, fams, 3)
	assert.Equal(t, "ff0000", fams[0].Prefix)
	assert.Len(t, fams[0].Records, 2)
	assert.Equal(t, "aaaaaa", fams[1].Prefix)
	assert.Equal(t, "bbbbbb", fams[2].Prefix)
}

func TestBasicCollection(t *testing.T) {
	c := BasicCollection()
	assert.Equal(t, 34, c.Len(), "light_gray and silver share an ID")
	r, ok := c.Get(identity.GenerateID(colorutil.RGB(0.75, 0.75, 0.75)))
	require.True(t, ok)
	assert.Equal(t, "silver", r.Name)
}

func TestCollectionPutKeepsPosition(t *testing.T) {
	c := NewCollection(KeyByName)
	c.Put(NewRecord("a", colorutil.Red))
	c.Put(NewRecord("b", colorutil.Green))
	c.Put(NewRecord("a", colorutil.Blue))
	assert.Equal(t, []string{"a", "b"}, names(c))
	r, _ := c.Get("a")
	assert.Equal(t, colorutil.Blue, r.Color)

	byID := c.Rekey(KeyByID)
	assert.Equal(t, KeyByID, byID.Mode())
	_, ok := byID.Get(identity.GenerateID(colorutil.Green))
	assert.True(t, ok)
}

func TestNeedsUpgrade(t *testing.T) {
	check := func(doc string, want bool) {
		t.Helper()
		got, err := NeedsUpgrade([]byte(doc))
		require.NoError(t, err, doc)
		assert.Equal(t, want, got, doc)
	}
	check(`{}`, false)
	check(`{"sky": [0.2, 0.4, 0.6]}`, true)
	check(`{"33669994aa99": {"color": [0.2, 0.4, 0.6], "name": "sky"}}`, false)
	check(`{"33669994aa99": {"color": [0.2, 0.4, 0.6], "id": "x"}}`, true)

	_, err := NeedsUpgrade([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestUpgrade(t *testing.T) {
	legacy := `{"sky": [0.2, 0.4, 0.6]}`
	src := writeStore(t, legacy)

	backup, n, err := Upgrade(src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, filepath.Join(filepath.Dir(src), "colors.json.bak"), backup)

	saved, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, legacy, string(saved))

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	var doc map[string]idKeyedValue
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "sky", doc["33669994aa99"].Name)

	backup, n, err = Upgrade(src)
	require.NoError(t, err)
	assert.Empty(t, backup, "already ID-keyed")
	assert.Zero(t, n)
}
