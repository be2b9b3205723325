package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hooplab/internal/adapters/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReadCSV(t *testing.T) {
	Convey("Given a csv table with a short row and a blank line", t, func() {
		in := "PLAYER_NAME,TEAM_ABBREVIATION,PTS,AST\nAnn Guard,BOS,800,300\n\nBob Big,NYK,600\n"

		ds, err := dataset.ReadCSV(strings.NewReader(in))
		So(err, ShouldBeNil)

		Convey("Then headers are kept and short rows padded", func() {
			So(ds.Headers, ShouldResemble, []string{"PLAYER_NAME", "TEAM_ABBREVIATION", "PTS", "AST"})
			So(ds.Len(), ShouldEqual, 2)
			So(ds.Rows[1], ShouldHaveLength, 4)
			So(ds.Cell(1, "AST"), ShouldEqual, "")
			So(ds.Cell(0, "PTS"), ShouldEqual, "800")
		})
	})

	Convey("Given an empty input", t, func() {
		_, err := dataset.ReadCSV(strings.NewReader(""))
		So(errors.Is(err, dataset.ErrNoHeader), ShouldBeTrue)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a workbook on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "season.xlsx")
		f := excelize.NewFile()
		_, _ = f.NewSheet("Totals")
		So(f.SetSheetRow("Totals", "A1", &[]any{"PLAYER_NAME", "PTS", "FG_PCT"}), ShouldBeNil)
		So(f.SetSheetRow("Totals", "A2", &[]any{"Ann Guard", 800, 0.45}), ShouldBeNil)
		So(f.SetSheetRow("Totals", "A3", &[]any{"Bob Big", 600}), ShouldBeNil)
		So(f.SaveAs(path), ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		Convey("When loading the named sheet", func() {
			ds, err := dataset.Load(context.Background(), path, "Totals")
			So(err, ShouldBeNil)
			So(ds.Headers, ShouldResemble, []string{"PLAYER_NAME", "PTS", "FG_PCT"})
			So(ds.Cell(0, "PTS"), ShouldEqual, "800")
			So(ds.Cell(0, "FG_PCT"), ShouldEqual, "0.45")
			So(ds.Cell(1, "FG_PCT"), ShouldEqual, "")
		})

		Convey("When the sheet does not exist", func() {
			_, err := dataset.Load(context.Background(), path, "Nope")
			So(errors.Is(err, dataset.ErrSheetNotFound), ShouldBeTrue)
		})

		Convey("When loading a csv file", func() {
			csvPath := filepath.Join(dir, "season.csv")
			So(os.WriteFile(csvPath, []byte("PLAYER_NAME,PTS\nAnn Guard,800\n"), 0o600), ShouldBeNil)
			ds, err := dataset.Load(context.Background(), csvPath, "")
			So(err, ShouldBeNil)
			So(ds.Len(), ShouldEqual, 1)
		})

		Convey("When the extension is unknown", func() {
			_, err := dataset.Load(context.Background(), filepath.Join(dir, "season.json"), "")
			So(errors.Is(err, dataset.ErrUnsupportedFormat), ShouldBeTrue)
		})
	})
}
