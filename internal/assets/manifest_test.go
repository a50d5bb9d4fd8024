package assets

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func TestBuild(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "models/assets.txt", []byte(`
# meshes
meshes/cube.obj

  textures\wall.png
missing.bin
`), filePerm))
	require.NoError(t, afero.WriteFile(fs, "models/meshes/cube.obj", []byte("v 0 0 0\n"), filePerm))
	require.NoError(t, afero.WriteFile(fs, "models/textures/wall.png", []byte{0x89, 'P', 'N', 'G'}, filePerm))

	m, err := Build(fs, "models/assets.txt")
	require.NoError(t, err)

	assert.Equal(t, []Asset{
		{Path: "meshes/cube.obj", Hash: xxh3.HashString("v 0 0 0\n")},
		{Path: "textures/wall.png", Hash: xxh3.Hash([]byte{0x89, 'P', 'N', 'G'})},
	}, m.Assets)
	assert.Equal(t, []string{"models/missing.bin"}, m.Missing)
}

func TestBuild_XXH3Digest(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "list.txt", []byte("empty.bin\n"), filePerm))
	require.NoError(t, afero.WriteFile(fs, "empty.bin", nil, filePerm))

	m, err := Build(fs, "list.txt")
	require.NoError(t, err)
	require.Len(t, m.Assets, 1)

	// XXH3_64bits("") with seed 0.
	assert.Equal(t, uint64(0x2d06800538d394c2), m.Assets[0].Hash)
}

func TestBuild_SkipsDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "list.txt", []byte("sub\n"), filePerm))
	require.NoError(t, fs.MkdirAll("sub", dirPerm))

	m, err := Build(fs, "list.txt")
	require.NoError(t, err)
	assert.Empty(t, m.Assets)
	assert.Len(t, m.Missing, 1)
}

func TestBuild_MissingList(t *testing.T) {
	_, err := Build(afero.NewMemMapFs(), "nope.txt")
	require.ErrorContains(t, err, "reading asset list")
}

func TestManifest_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := &Manifest{Assets: []Asset{{Path: "a.obj", Hash: 18446744073709551615}}}

	require.NoError(t, m.Write(fs, "out/hashes.json"))

	got, err := afero.ReadFile(fs, "out/hashes.json")
	require.NoError(t, err)
	assert.Equal(t, `{
  "assets": [
    {
      "path": "a.obj",
      "hash": 18446744073709551615
    }
  ]
}`, string(got))
}

func TestManifest_WriteEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()

	m, err := Build(fs, "missing-list.txt")
	require.Error(t, err)
	assert.Nil(t, m)

	require.NoError(t, (&Manifest{Assets: []Asset{}}).Write(fs, "hashes.json"))

	got, err := afero.ReadFile(fs, "hashes.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"assets": []}`, string(got))
}
