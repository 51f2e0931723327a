package pbidoc_test

import (
	"testing"

	"github.com/fwojciec/pbidoc"
	"github.com/stretchr/testify/assert"
)

func TestNewReport(t *testing.T) {
	t.Parallel()

	t.Run("builds datasets in rendering order", func(t *testing.T) {
		t.Parallel()

		r := pbidoc.NewReport("Sales Dashboard", "Sales",
			[]pbidoc.PageRecord{{PageName: "Overview"}},
			[]pbidoc.VisualRecord{{PageName: "Overview", VisualType: "card"}},
			[]pbidoc.ColumnRecord{{TableName: "Sales", ColumnName: "Amount"}},
		)

		assert.Equal(t, "Sales Dashboard", r.Title)
		assert.Equal(t, "Sales", r.PackageName)
		names := make([]string, 0, 3)
		for _, d := range r.Datasets() {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{pbidoc.DatasetPages, pbidoc.DatasetVisuals, pbidoc.DatasetColumns}, names)
	})

	t.Run("empty records give empty datasets", func(t *testing.T) {
		t.Parallel()

		r := pbidoc.NewReport("Empty", "Empty", nil, nil, nil)

		for _, d := range r.Datasets() {
			assert.Zero(t, d.Len(), d.Name)
			assert.NotEmpty(t, d.Headers(), d.Name)
		}
	})
}

func TestReport_Datasets(t *testing.T) {
	t.Parallel()

	r := &pbidoc.Report{Columns: pbidoc.NewColumnDataset(nil)}

	datasets := r.Datasets()

	assert.Len(t, datasets, 1)
	assert.Equal(t, pbidoc.DatasetColumns, datasets[0].Name)
}
