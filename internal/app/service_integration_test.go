package service_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/hooplab/internal/adapters/dataset"
	"github.com/okian/hooplab/internal/adapters/report"
	service "github.com/okian/hooplab/internal/app"
	"github.com/okian/hooplab/internal/config"
	"github.com/okian/hooplab/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a csv season table on disk and the default configuration", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		var b strings.Builder
		ds := fixtureDataset()
		b.WriteString(strings.Join(ds.Headers, ",") + "\n")
		for _, row := range ds.Rows {
			b.WriteString(strings.Join(row, ",") + "\n")
		}
		path := filepath.Join(dir, "season.csv")
		So(os.WriteFile(path, []byte(b.String()), 0o600), ShouldBeNil)

		cfg := config.New(ctx)
		cfg.ClusterCount = 3
		cfg.ReportDir = filepath.Join(dir, "reports")
		svc := service.New(service.OptionsFromConfig(cfg, nil)...)

		Convey("When loading, clustering and exporting", func() {
			loaded, err := dataset.Load(ctx, path, "")
			So(err, ShouldBeNil)
			run, err := svc.Run(ctx, loaded)
			So(err, ShouldBeNil)

			Convey("Then absent default columns are skipped", func() {
				So(run.Columns, ShouldResemble, []string{"MIN", "FG_PCT", "REB", "AST", "BLK", "TOV", "PTS", "GP"})
				So(len(run.Warnings), ShouldEqual, len(cfg.StatColumns)-len(run.Columns))
			})

			Convey("Then the workbook and the player report are written", func() {
				xlsx := filepath.Join(cfg.ReportDir, report.MeansFileName)
				So(report.WriteClusterMeans(xlsx, run.Profile, run.Roles, catalog.Default()), ShouldBeNil)
				_, err := os.Stat(xlsx)
				So(err, ShouldBeNil)

				a, err := svc.Analyze(ctx, "Eli Rim")
				So(err, ShouldBeNil)
				out := filepath.Join(cfg.ReportDir, "eli_rim.json")
				So(report.SaveJSON(out, a), ShouldBeNil)

				raw, err := os.ReadFile(out)
				So(err, ShouldBeNil)
				var decoded map[string]any
				So(json.Unmarshal(raw, &decoded), ShouldBeNil)
				So(decoded["name"], ShouldEqual, "Eli Rim")
				So(decoded, ShouldContainKey, "radar")
			})
		})
	})
}
