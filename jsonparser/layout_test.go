package jsonparser_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/pbidoc"
	"github.com/fwojciec/pbidoc/jsonparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// visualContainer encodes config as a JSON string, the way Power BI stores it.
func visualContainer(t *testing.T, config string) string {
	t.Helper()
	b, err := json.Marshal(config)
	require.NoError(t, err)
	return `{"x":0,"y":0,"config":` + string(b) + `}`
}

func section(name string, containers ...string) string {
	return `{"displayName":"` + name + `","visualContainers":[` + strings.Join(containers, ",") + `]}`
}

func layout(sections ...string) pbidoc.Descriptor {
	return pbidoc.Descriptor(`{"id":0,"sections":[` + strings.Join(sections, ",") + `]}`)
}

const barChartConfig = `{"singleVisual":{"visualType":"barChart","projections":{"Category":[{"queryRef":"Sales.Region"}],"Values":[{"queryRef":"Sales.Total"}]}}, "layouts":[{"position":{"x":"10","y":"20","height":"100","width":"200"}}]}`

func TestLayoutExtractor_ExtractPages(t *testing.T) {
	t.Parallel()

	t.Run("emits one record per section in order", func(t *testing.T) {
		t.Parallel()

		doc := layout(section("Overview"), section("Details"), section("Appendix"))

		pages := jsonparser.NewLayoutExtractor().ExtractPages(doc)

		assert.Equal(t, []pbidoc.PageRecord{
			{PageName: "Overview"},
			{PageName: "Details"},
			{PageName: "Appendix"},
		}, pages)
	})

	t.Run("missing display name yields empty name", func(t *testing.T) {
		t.Parallel()

		doc := pbidoc.Descriptor(`{"sections":[{"visualContainers":[]}]}`)

		pages := jsonparser.NewLayoutExtractor().ExtractPages(doc)

		assert.Equal(t, []pbidoc.PageRecord{{PageName: ""}}, pages)
	})

	t.Run("empty document yields no pages", func(t *testing.T) {
		t.Parallel()

		pages := jsonparser.NewLayoutExtractor().ExtractPages(pbidoc.EmptyDescriptor)

		assert.Empty(t, pages)
	})
}

func TestLayoutExtractor_ExtractVisuals(t *testing.T) {
	t.Parallel()

	t.Run("flattens bar chart config", func(t *testing.T) {
		t.Parallel()

		doc := layout(section("Overview", visualContainer(t, barChartConfig)))

		visuals, errs := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		assert.Empty(t, errs)
		require.Len(t, visuals, 1)
		assert.Equal(t, pbidoc.VisualRecord{
			PageName:     "Overview",
			X:            10,
			Y:            20,
			Height:       100,
			Width:        200,
			VisualType:   "barChart",
			MeasuresUsed: pbidoc.Measures{"Sales.Region", "Sales.Total"},
		}, visuals[0])
	})

	t.Run("empty projections report sentinel", func(t *testing.T) {
		t.Parallel()

		config := `{"singleVisual":{"visualType":"textbox","projections":{}},"layouts":[{"position":{"x":1,"y":2,"height":3,"width":4}}]}`
		doc := layout(section("Overview", visualContainer(t, config)))

		visuals, errs := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		assert.Empty(t, errs)
		require.Len(t, visuals, 1)
		assert.Empty(t, visuals[0].MeasuresUsed)
		assert.Equal(t, "no measures used", visuals[0].MeasuresUsed.String())
	})

	t.Run("collects query refs across roles in document order keeping duplicates", func(t *testing.T) {
		t.Parallel()

		config := `{"singleVisual":{"visualType":"lineChart","projections":{
			"Y":[{"queryRef":"Sum(Sales.Total)"},{"queryRef":"Sales.Margin"}],
			"Category":[{"queryRef":"Date.Month"},{"active":true}],
			"Tooltips":[{"queryRef":"Sales.Margin"}]
		}}}`
		doc := layout(section("Trends", visualContainer(t, config)))

		visuals, _ := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		require.Len(t, visuals, 1)
		assert.Equal(t, pbidoc.Measures{"Sum(Sales.Total)", "Sales.Margin", "Date.Month", "Sales.Margin"}, visuals[0].MeasuresUsed)
	})

	t.Run("uses only the first layout entry", func(t *testing.T) {
		t.Parallel()

		config := `{"layouts":[{"id":0,"position":{"x":5.9,"y":6,"height":7,"width":8}},{"id":1,"position":{"x":500,"y":600,"height":700,"width":800}}]}`
		doc := layout(section("Mobile", visualContainer(t, config)))

		visuals, _ := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		require.Len(t, visuals, 1)
		assert.Equal(t, 5, visuals[0].X)
		assert.Equal(t, 6, visuals[0].Y)
		assert.Equal(t, 7, visuals[0].Height)
		assert.Equal(t, 8, visuals[0].Width)
	})

	t.Run("non-numeric positions default to zero", func(t *testing.T) {
		t.Parallel()

		config := `{"layouts":[{"position":{"x":"left","y":null,"height":true}}]}`
		doc := layout(section("Overview", visualContainer(t, config)))

		visuals, _ := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		require.Len(t, visuals, 1)
		assert.Zero(t, visuals[0].X)
		assert.Zero(t, visuals[0].Y)
		assert.Zero(t, visuals[0].Height)
		assert.Zero(t, visuals[0].Width)
	})

	t.Run("malformed config keeps record with zero fields and reports error", func(t *testing.T) {
		t.Parallel()

		doc := layout(section("Overview",
			visualContainer(t, `{"singleVisual":`),
			visualContainer(t, barChartConfig),
		))

		visuals, errs := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), `page "Overview" visual 0`)
		require.Len(t, visuals, 2)
		assert.Equal(t, pbidoc.VisualRecord{PageName: "Overview"}, visuals[0])
		assert.Equal(t, "barChart", visuals[1].VisualType)
	})

	t.Run("container without config yields empty record", func(t *testing.T) {
		t.Parallel()

		doc := layout(section("Overview", `{"x":1}`))

		visuals, errs := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		assert.Empty(t, errs)
		assert.Equal(t, []pbidoc.VisualRecord{{PageName: "Overview"}}, visuals)
	})

	t.Run("section without display name is labelled", func(t *testing.T) {
		t.Parallel()

		doc := pbidoc.Descriptor(`{"sections":[{"visualContainers":[{"config":"{}"}]}]}`)

		visuals, _ := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		require.Len(t, visuals, 1)
		assert.Equal(t, jsonparser.UnnamedPage, visuals[0].PageName)
	})

	t.Run("visuals across sections keep page order", func(t *testing.T) {
		t.Parallel()

		doc := layout(
			section("First", visualContainer(t, `{"singleVisual":{"visualType":"card"}}`)),
			section("Second",
				visualContainer(t, `{"singleVisual":{"visualType":"slicer"}}`),
				visualContainer(t, `{"singleVisual":{"visualType":"table"}}`),
			),
		)

		visuals, _ := jsonparser.NewLayoutExtractor().ExtractVisuals(doc)

		require.Len(t, visuals, 3)
		assert.Equal(t, "First", visuals[0].PageName)
		assert.Equal(t, "slicer", visuals[1].VisualType)
		assert.Equal(t, "Second", visuals[2].PageName)
	})

	t.Run("empty sections yield empty datasets", func(t *testing.T) {
		t.Parallel()

		doc := pbidoc.Descriptor(`{"sections":[]}`)
		e := jsonparser.NewLayoutExtractor()

		visuals, errs := e.ExtractVisuals(doc)

		assert.Empty(t, errs)
		assert.NotNil(t, visuals)
		assert.Empty(t, visuals)
		assert.Empty(t, e.ExtractPages(doc))
	})

	t.Run("invalid descriptor yields empty datasets", func(t *testing.T) {
		t.Parallel()

		visuals, errs := jsonparser.NewLayoutExtractor().ExtractVisuals(pbidoc.Descriptor("{"))

		assert.Empty(t, errs)
		assert.Empty(t, visuals)
	})
}
