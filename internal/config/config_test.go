package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	watermark "github.com/gcslaoli/text-watermark-go"
)

// chdir moves into a fresh directory so stray twatermark.yaml or .env files
// do not leak into the test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"WATERMARK_TEXT", "WATERMARK_FONT_SIZE", "WATERMARK_CORNER", "WATERMARK_JPEG_QUALITY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t)
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, watermark.DefaultParams(), cfg.Params())
}

func TestLoadYAML(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
watermark:
  text: "© ACME"
  font_size: 48
  corner: Top Left
output:
  jpeg_quality: 90
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Watermark = WatermarkConfig{Text: "© ACME", FontSize: 48, Corner: watermark.TopLeft}
	want.Output.JPEGQuality = 90
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	cases := map[string]string{
		"font size": "watermark:\n  font_size: 5\n",
		"corner":    "watermark:\n  corner: middle\n",
		"quality":   "output:\n  jpeg_quality: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("environment beats file", func(t *testing.T) {
		dir := chdir(t)
		clearEnv(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("watermark:\n  text: file\n  font_size: 20\n"), 0o644))
		t.Setenv("WATERMARK_TEXT", "env")
		t.Setenv("WATERMARK_CORNER", "tr")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "env", cfg.Watermark.Text)
		assert.Equal(t, 20, cfg.Watermark.FontSize)
		assert.Equal(t, watermark.TopRight, cfg.Watermark.Corner)
	})

	t.Run(".env file is read", func(t *testing.T) {
		dir := chdir(t)
		clearEnv(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WATERMARK_FONT_SIZE=64\n"), 0o644))
		t.Cleanup(func() { os.Unsetenv("WATERMARK_FONT_SIZE") })

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.Watermark.FontSize)
	})

	t.Run("malformed number", func(t *testing.T) {
		chdir(t)
		clearEnv(t)
		t.Setenv("WATERMARK_JPEG_QUALITY", "high")

		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("photos", "cat_watermarked.png"), cfg.OutputPath(filepath.Join("photos", "cat.jpg")))
	assert.Equal(t, "watermarked.png", cfg.OutputPath(""))

	cfg.Output.Suffix = "-wm"
	assert.Equal(t, "cat-wm.png", cfg.OutputPath("cat.bmp"))
}
