package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const binaryName = "speakflow"

// Stage names a step of Update.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// UpdateInput selects the release to install. An empty TargetVersion
// means the latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported as each stage begins.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// Update installs a release over the running binary. The archive is
// streamed into a scratch directory next to the executable, hashed on
// the way in and compared with the release's checksums.txt before the
// binary is unpacked and renamed into place.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if progress == nil {
		progress = func(UpdateProgress) {}
	}
	if input.CurrentVersion == "" || input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := input.TargetVersion
	if tag == "" {
		progress(UpdateProgress{StageResolve, "Looking up the latest release..."})
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	exe, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	scratch, err := os.MkdirTemp(filepath.Dir(exe), "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	progress(UpdateProgress{StageDownload, fmt.Sprintf("Downloading %s (%s)...", tag, asset)})
	sums, err := c.fetchChecksums(ctx, tag)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := sums[asset]
	if !ok {
		return fmt.Errorf("%w: checksums.txt has no entry for %s", ErrChecksum, asset)
	}
	archive := filepath.Join(scratch, asset)
	got, err := c.download(ctx, c.assetURL(tag, asset), archive)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{StageVerify, "Verifying checksum..."})
	if !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: %s has sha256 %s, release lists %s", ErrChecksum, asset, got, want)
	}

	progress(UpdateProgress{StageInstall, "Installing..."})
	staged := filepath.Join(scratch, binaryName+".new")
	if err := unpack(archive, staged); err != nil {
		return fmt.Errorf("unpack %s: %w", asset, err)
	}
	if err := install(staged, exe); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	progress(UpdateProgress{StageDone, fmt.Sprintf("Updated to %s", tag)})
	return nil
}

// releaseArch maps GOARCH to the names used in release archives.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		// macOS ships a universal binary.
		return binaryName + "_Darwin_all.tar.gz", nil
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	}
	return "", fmt.Errorf("unsupported operating system: %s", goos)
}

func (c *Checker) assetURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

func (c *Checker) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// download writes url to path and returns the hex sha256 of the body.
func (c *Checker) download(ctx context.Context, url, path string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(f, h), body); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Checker) fetchChecksums(ctx context.Context, tag string) (map[string]string, error) {
	body, err := c.get(ctx, c.assetURL(tag, "checksums.txt"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()
	return parseChecksums(body)
}

// parseChecksums reads sha256sum output. Lines that are not exactly a
// digest and a file name are skipped.
func parseChecksums(r io.Reader) (map[string]string, error) {
	sums := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		// "*" marks binary mode in sha256sum output.
		sums[strings.TrimPrefix(fields[1], "*")] = fields[0]
	}
	return sums, sc.Err()
}

// unpack extracts the speakflow binary from archive into dst.
func unpack(archive, dst string) error {
	if strings.HasSuffix(archive, ".zip") {
		return unpackZip(archive, binaryName+".exe", dst)
	}
	return unpackTarGz(archive, binaryName, dst)
}

func unpackTarGz(archive, name, dst string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return writeFile(dst, tr)
		}
	}
}

func unpackZip(archive, name, dst string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if filepath.Base(f.Name) != name || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		return writeFile(dst, rc)
	}
	return fmt.Errorf("binary %q not found in archive", name)
}

func writeFile(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o700)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// install moves staged over target, keeping target's permission bits.
// staged must live on the same filesystem as target.
func install(staged, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if err := os.Chmod(staged, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(staged, target)
}
