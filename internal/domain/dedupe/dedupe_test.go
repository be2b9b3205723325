package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/hooplab/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	Convey("Given a new deduper", t, func() {
		ctx := context.Background()
		d := dedupe.New(dedupe.WithCapacity(8))

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
			So(d.Seen(ctx, "a"), ShouldBeFalse)
		})

		Convey("When a key is recorded twice", func() {
			first := d.SeenAndRecord(ctx, "lebron james|2023-24|LAL")
			second := d.SeenAndRecord(ctx, "lebron james|2023-24|LAL")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
				So(d.Seen(ctx, "lebron james|2023-24|LAL"), ShouldBeTrue)
			})
		})

		Convey("When keys differ only by case without folding", func() {
			d.SeenAndRecord(ctx, "A")
			So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 2)
		})
	})

	Convey("Given a case folding deduper", t, func() {
		ctx := context.Background()
		d := dedupe.New(dedupe.WithCaseFolding())

		Convey("Then case and padding are ignored", func() {
			So(d.SeenAndRecord(ctx, " Luka Doncic "), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "luka doncic"), ShouldBeTrue)
		})
	})
}

func TestDeduperConcurrent(t *testing.T) {
	Convey("Given concurrent writers", t, func() {
		ctx := context.Background()
		d := dedupe.New()
		var wg sync.WaitGroup
		var mu sync.Mutex
		fresh := 0

		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					if !d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i)) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then each key is fresh exactly once", func() {
			So(fresh, ShouldEqual, 100)
			So(d.Size(), ShouldEqual, 100)
		})
	})
}
