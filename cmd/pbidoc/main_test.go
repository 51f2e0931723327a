package main_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/pbidoc"
	main "github.com/fwojciec/pbidoc/cmd/pbidoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

const contentTypes = `<?xml version="1.0" encoding="utf-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="json" ContentType="application/json"/>
<Override PartName="/Report/Layout" ContentType="application/json"/>
<Override PartName="/DataModelSchema" ContentType="application/json"/>
</Types>`

const modelSchema = `{"model":{"tables":[
{"name":"Sales","columns":[{"name":"Amount","dataType":"double"},{"name":"Margin","dataType":"double","type":"calculated"}]},
{"name":"LocalDateTable_1a2b","columns":[{"name":"Date","dataType":"dateTime"}]}
]}}`

func utf16(t *testing.T, s string) []byte {
	t.Helper()
	data, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return data
}

func layoutDescriptor(t *testing.T) string {
	t.Helper()
	config := `{"singleVisual":{"visualType":"barChart","projections":{"Category":[{"queryRef":"Sales.Region"}],"Y":[{"queryRef":"Sales.Total"}]}},"layouts":[{"position":{"x":10,"y":20,"height":100,"width":200}}]}`
	quoted, err := json.Marshal(config)
	require.NoError(t, err)
	return fmt.Sprintf(`{"sections":[{"displayName":"Overview","visualContainers":[{"config":%s},{"config":"{not json"}]},{"displayName":"Details","visualContainers":[]}]}`, quoted)
}

// writePackage creates dir/Sales.pbit containing UTF-16LE descriptors.
func writePackage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "Sales.pbit")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	entries := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypes)},
		{"Version", utf16(t, "1.28")},
		{"Report/Layout", utf16(t, layoutDescriptor(t))},
		{"DataModelSchema", utf16(t, modelSchema)},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write(e.data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func newMain() *main.Main {
	m := main.NewMain()
	m.Now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return m
}

func generateArgs(pkgDir, docDir string, extra ...string) []string {
	args := []string{"generate",
		"--config", filepath.Join(pkgDir, "missing.yaml"),
		"--package-dir", pkgDir,
		"--doc-dir", docDir,
		"--title", "Sales Dashboard",
	}
	return append(args, extra...)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	err := newMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "generate")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	err := newMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "Usage")
}

func TestCmdGenerate(t *testing.T) {
	t.Parallel()

	t.Run("writes an HTML report", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		docDir := t.TempDir()
		writePackage(t, pkgDir)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(), generateArgs(pkgDir, docDir), stdout, stderr)

		require.NoError(t, err, stderr.String())
		out := filepath.Join(docDir, "Sales_doc.html")
		assert.Contains(t, stdout.String(), "Wrote "+out)
		assert.Contains(t, stdout.String(), "2 pages, 2 visuals, 2 columns")
		assert.Contains(t, stdout.String(), "1 warning(s)")

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		html := string(data)
		assert.Contains(t, html, "Power BI Report Documentation")
		assert.Contains(t, html, "19/10/2026")
		assert.Contains(t, html, "Sales Dashboard")
		assert.Contains(t, html, "<td>barChart</td>")
		assert.Contains(t, html, "<td>Sales.Region, Sales.Total</td>")
		assert.Contains(t, html, "<td>no measures used</td>")
		assert.NotContains(t, html, "LocalDateTable")

		assert.FileExists(t, filepath.Join(pkgDir, "Sales.pbit.zip"))
		assert.NoFileExists(t, filepath.Join(pkgDir, "Sales.pbit"))
		assert.FileExists(t, filepath.Join(pkgDir, "Report", "Layout"))
		assert.FileExists(t, filepath.Join(pkgDir, "DataModelSchema"))
	})

	t.Run("versions repeated runs", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		docDir := t.TempDir()
		writePackage(t, pkgDir)

		for i := 0; i < 3; i++ {
			stderr := &bytes.Buffer{}
			err := newMain().Run(context.Background(), generateArgs(pkgDir, docDir), &bytes.Buffer{}, stderr)
			require.NoError(t, err, stderr.String())
		}

		assert.FileExists(t, filepath.Join(docDir, "Sales_doc.html"))
		assert.FileExists(t, filepath.Join(docDir, "Sales_doc_version_02.html"))
		assert.FileExists(t, filepath.Join(docDir, "Sales_doc_version_03.html"))
	})

	t.Run("writes each supported format", func(t *testing.T) {
		t.Parallel()

		for format, ext := range map[string]string{"markdown": ".md", "xlsx": ".xlsx", "sqlite": ".sqlite"} {
			pkgDir := t.TempDir()
			docDir := t.TempDir()
			writePackage(t, pkgDir)

			stderr := &bytes.Buffer{}
			err := newMain().Run(context.Background(), generateArgs(pkgDir, docDir, "--format", format), &bytes.Buffer{}, stderr)

			require.NoError(t, err, stderr.String())
			assert.FileExists(t, filepath.Join(docDir, "Sales_doc"+ext), format)
		}
	})

	t.Run("uses a custom template", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		docDir := t.TempDir()
		tmplDir := t.TempDir()
		writePackage(t, pkgDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmplDir, "custom.tmpl"), []byte(`{{.Title}}{{range .Sections}}|{{.ID}}{{end}}`), 0644))

		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(),
			generateArgs(pkgDir, docDir, "--template-path", tmplDir, "--template-file", "custom.tmpl"),
			&bytes.Buffer{}, stderr)

		require.NoError(t, err, stderr.String())
		data, err := os.ReadFile(filepath.Join(docDir, "Sales_doc.html"))
		require.NoError(t, err)
		assert.Equal(t, "Sales Dashboard|pages|visuals|columns", string(data))
	})

	t.Run("reads settings from the config file", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		docDir := t.TempDir()
		writePackage(t, pkgDir)
		cfgPath := filepath.Join(t.TempDir(), "pbidoc.yaml")
		content := fmt.Sprintf("package_directory: %s\ndocumentation_directory: %s\nformat: markdown\n", pkgDir, docDir)
		require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(), []string{"generate", "-c", cfgPath}, &bytes.Buffer{}, stderr)

		require.NoError(t, err, stderr.String())
		assert.FileExists(t, filepath.Join(docDir, "Sales_doc.md"))
	})

	t.Run("flags override the config file", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		docDir := t.TempDir()
		writePackage(t, pkgDir)
		cfgPath := filepath.Join(t.TempDir(), "pbidoc.yaml")
		content := fmt.Sprintf("package_directory: %s\ndocumentation_directory: %s\nformat: markdown\n", pkgDir, docDir)
		require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(), []string{"generate", "-c", cfgPath, "--format", "html"}, &bytes.Buffer{}, stderr)

		require.NoError(t, err, stderr.String())
		assert.FileExists(t, filepath.Join(docDir, "Sales_doc.html"))
	})

	t.Run("fails when no package exists", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(), generateArgs(t.TempDir(), t.TempDir()), &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, pbidoc.ENOTFOUND, pbidoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: LOCATE_PACKAGE: no .pbit file found")
	})

	t.Run("fails when a descriptor entry is missing", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		f, err := os.Create(filepath.Join(pkgDir, "Broken.pbit"))
		require.NoError(t, err)
		zw := zip.NewWriter(f)
		w, err := zw.Create("Report/Layout")
		require.NoError(t, err)
		_, err = w.Write(utf16(t, `{"sections":[]}`))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, f.Close())

		docDir := t.TempDir()
		stderr := &bytes.Buffer{}
		err = newMain().Run(context.Background(), generateArgs(pkgDir, docDir), &bytes.Buffer{}, stderr)

		require.Error(t, err)
		var stageErr *pbidoc.StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, pbidoc.StageExtractEntries, stageErr.Stage)
		assert.Contains(t, stderr.String(), "DataModelSchema")
		entries, err := os.ReadDir(docDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(), generateArgs(t.TempDir(), t.TempDir(), "--format", "docx"), &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, pbidoc.EINVALID, pbidoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), `error: unsupported format "docx"`)
	})

	t.Run("logs stages when verbose", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		writePackage(t, pkgDir)

		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(), generateArgs(pkgDir, t.TempDir(), "-v"), &bytes.Buffer{}, stderr)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stderr.String(), "stage=BUILD_DATASETS")
		assert.Contains(t, stderr.String(), "render report")
	})
}

func TestCmdInspect(t *testing.T) {
	t.Parallel()

	t.Run("summarizes a generated report", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		docDir := t.TempDir()
		writePackage(t, pkgDir)
		require.NoError(t, newMain().Run(context.Background(), generateArgs(pkgDir, docDir), &bytes.Buffer{}, &bytes.Buffer{}))

		stdout := &bytes.Buffer{}
		err := newMain().Run(context.Background(), []string{"inspect", filepath.Join(docDir, "Sales_doc.html")}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Report name: Sales Dashboard")
		assert.Contains(t, out, "Documentation date: 19/10/2026")
		assert.Contains(t, out, "Pages: 2 rows, 1 columns")
		assert.Contains(t, out, "Visuals: 2 rows, 7 columns")
		assert.Contains(t, out, "Tables: 2 rows, 4 columns")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		pkgDir := t.TempDir()
		docDir := t.TempDir()
		writePackage(t, pkgDir)
		require.NoError(t, newMain().Run(context.Background(), generateArgs(pkgDir, docDir), &bytes.Buffer{}, &bytes.Buffer{}))

		stdout := &bytes.Buffer{}
		err := newMain().Run(context.Background(), []string{"inspect", "--json", filepath.Join(docDir, "Sales_doc.html")}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var summary pbidoc.ReportSummary
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
		assert.Equal(t, "Sales Dashboard", summary.ReportName)
		assert.Len(t, summary.Sections, 3)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(), []string{"inspect", filepath.Join(t.TempDir(), "missing.html")}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, pbidoc.ENOTFOUND, pbidoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: report")
	})
}

func TestCmdParts(t *testing.T) {
	t.Parallel()

	pkg := writePackage(t, t.TempDir())

	stdout := &bytes.Buffer{}
	err := newMain().Run(context.Background(), []string{"parts", pkg}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Report/Layout")
	assert.Contains(t, out, "DataModelSchema")
	assert.Contains(t, out, "application/json")
}

func TestCmdInit(t *testing.T) {
	t.Parallel()

	t.Run("writes a default config", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pbidoc.yaml")
		stdout := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"init", path}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote "+path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "format: html")
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pbidoc.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

		stderr := &bytes.Buffer{}
		err := newMain().Run(context.Background(), []string{"init", path}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "already exists")
	})
}
