package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReleases serves a GitHub-shaped API and download host from one
// test server. Paths missing from files answer 404.
type fakeReleases struct {
	latest string
	files  map[string][]byte
	hits   []string
}

func (f *fakeReleases) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.hits = append(f.hits, r.URL.Path)
	if r.URL.Path == "/repos/abhisek/speakflow/releases/latest" {
		_, _ = w.Write([]byte(`{"tag_name":"` + f.latest + `","html_url":"https://example.com/` + f.latest + `"}`))
		return
	}
	body, ok := f.files[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write(body)
}

// publish adds a release archive and its checksums.txt for tag.
func (f *fakeReleases) publish(tag, asset string, archive []byte, digest string) {
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	prefix := "/abhisek/speakflow/releases/download/" + tag + "/"
	f.files[prefix+asset] = archive
	f.files[prefix+"checksums.txt"] = []byte(digest + "  *" + asset + "\n" + strings.Repeat("0", 64) + "  unrelated.tar.gz\n")
}

func newFakeReleases(t *testing.T, latest string) (*fakeReleases, *Checker, string) {
	t.Helper()
	f := &fakeReleases{latest: latest}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	exe := filepath.Join(t.TempDir(), binaryName)
	require.NoError(t, os.WriteFile(exe, []byte("old build"), 0o755))

	c := NewChecker(
		WithBaseURL(srv.URL),
		WithDownloadBaseURL(srv.URL),
		withExecPath(func() (string, error) { return exe, nil }),
	)
	return f, c, exe
}

func sha(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func tarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "dist/" + name, Size: int64(len(content)), Mode: 0o755, Typeflag: tar.TypeReg}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestAssetNameFor(t *testing.T) {
	want := map[[2]string]string{
		{"darwin", "amd64"}:  "speakflow_Darwin_all.tar.gz",
		{"darwin", "arm64"}:  "speakflow_Darwin_all.tar.gz",
		{"linux", "amd64"}:   "speakflow_Linux_x86_64.tar.gz",
		{"linux", "arm64"}:   "speakflow_Linux_arm64.tar.gz",
		{"linux", "386"}:     "speakflow_Linux_i386.tar.gz",
		{"windows", "amd64"}: "speakflow_Windows_x86_64.zip",
		{"freebsd", "amd64"}: "",
		{"linux", "mips"}:    "",
	}
	for platform, name := range want {
		got, err := assetNameFor(platform[0], platform[1])
		if name == "" {
			assert.Error(t, err, platform)
			continue
		}
		require.NoError(t, err, platform)
		assert.Equal(t, name, got, platform)
	}
}

func TestParseChecksums(t *testing.T) {
	sums, err := parseChecksums(strings.NewReader(
		"abc123  speakflow_Linux_x86_64.tar.gz\n" +
			"def456 *speakflow_Windows_x86_64.zip\n" +
			"garbage\n\n" +
			"a b c\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"speakflow_Linux_x86_64.tar.gz": "abc123",
		"speakflow_Windows_x86_64.zip":  "def456",
	}, sums)
}

func TestUnpack(t *testing.T) {
	dir := t.TempDir()
	content := []byte("#!/bin/sh\necho 你好")

	cases := []struct {
		name    string
		asset   string
		archive []byte
		wantErr string
	}{
		{"tar.gz", "a.tar.gz", tarGz(t, "speakflow", content), ""},
		{"zip", "a.zip", zipped(t, "speakflow.exe", content), ""},
		{"tar.gz without binary", "b.tar.gz", tarGz(t, "README.md", content), "not found"},
		{"zip without binary", "b.zip", zipped(t, "speakflow", content), "not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			archive := filepath.Join(dir, tc.asset)
			require.NoError(t, os.WriteFile(archive, tc.archive, 0o600))
			dst := filepath.Join(dir, tc.name+".out")

			err := unpack(archive, dst)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			got, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, content, got)
		})
	}
}

func TestInstallKeepsMode(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "speakflow")
	staged := filepath.Join(dir, "speakflow.new")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o751))
	require.NoError(t, os.WriteFile(staged, []byte("new"), 0o600))

	require.NoError(t, install(staged, target))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	info, err := os.Stat(target)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o751), info.Mode().Perm())
	}
	assert.NoFileExists(t, staged)
}

func TestUpdate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("release fixtures are tar.gz")
	}
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skip(err)
	}
	build := []byte("speakflow v2")
	archive := tarGz(t, binaryName, build)

	t.Run("latest", func(t *testing.T) {
		f, c, exe := newFakeReleases(t, "v2.0.0")
		f.publish("v2.0.0", asset, archive, sha(archive))

		var stages []Stage
		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.4.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(exe)
		require.NoError(t, err)
		assert.Equal(t, build, got)
		assert.Equal(t, []Stage{StageResolve, StageDownload, StageVerify, StageInstall, StageDone}, stages)

		leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(exe), ".speakflow-update-*"))
		assert.Empty(t, leftovers, "scratch dir should be removed")
	})

	t.Run("pinned tag skips the lookup", func(t *testing.T) {
		f, c, exe := newFakeReleases(t, "v3.0.0")
		f.publish("v2.1.0", asset, archive, sha(archive))

		require.NoError(t, c.Update(context.Background(), &UpdateInput{CurrentVersion: "v2.5.0", TargetVersion: "v2.1.0"}, nil))
		got, _ := os.ReadFile(exe)
		assert.Equal(t, build, got)
		assert.NotContains(t, f.hits, "/repos/abhisek/speakflow/releases/latest")
	})

	t.Run("development build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, nil)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		_, c, _ := newFakeReleases(t, "v1.0.0")
		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("digest mismatch leaves the binary alone", func(t *testing.T) {
		f, c, exe := newFakeReleases(t, "v2.0.0")
		f.publish("v2.0.0", asset, archive, strings.Repeat("f", 64))

		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrChecksum)
		got, _ := os.ReadFile(exe)
		assert.Equal(t, "old build", string(got))
	})

	t.Run("asset missing from checksums", func(t *testing.T) {
		f, c, _ := newFakeReleases(t, "v2.0.0")
		f.publish("v2.0.0", "speakflow_Plan9_all.tar.gz", archive, sha(archive))

		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("archive missing", func(t *testing.T) {
		f, c, _ := newFakeReleases(t, "v2.0.0")
		f.publish("v2.0.0", asset, archive, sha(archive))
		delete(f.files, "/abhisek/speakflow/releases/download/v2.0.0/"+asset)

		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}
