package registry_test

import (
	"testing"

	"github.com/okian/kaizolist/internal/domain/model"
	"github.com/okian/kaizolist/internal/domain/registry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry_New(t *testing.T) {
	Convey("Given a list collection and a challenge collection", t, func() {
		levels := []model.Entry{
			{ID: "1", Name: "Tidal Wave", Verifier: "Zoink", KLP: 500},
			{ID: "2", Name: "Acheron", Verifier: "Zoink", KLP: 300},
		}
		challenges := []model.Entry{
			{ID: "c1", Name: "Ouroboros", Verifier: "Doggie", KLP: 80},
			{ID: "c2", Name: "Acheron", Verifier: "Trusta", KLP: 320},
		}
		reg := registry.New(levels, challenges)

		Convey("Then names are unique and first-seen order is kept", func() {
			So(reg.Len(), ShouldEqual, 3)
			names := []string{}
			for _, e := range reg.All() {
				names = append(names, e.Name)
			}
			So(names, ShouldResemble, []string{"Tidal Wave", "Acheron", "Ouroboros"})
		})

		Convey("Then a later duplicate name wins on value", func() {
			e, ok := reg.Lookup("Acheron")
			So(ok, ShouldBeTrue)
			So(e.Verifier, ShouldEqual, "Trusta")
			So(e.KLP, ShouldEqual, 320)
		})

		Convey("Then unknown names are not found", func() {
			_, ok := reg.Lookup("Bloodbath")
			So(ok, ShouldBeFalse)
		})

		Convey("Then All returns a copy", func() {
			all := reg.All()
			all[0].KLP = 1
			e, _ := reg.Lookup("Tidal Wave")
			So(e.KLP, ShouldEqual, 500)
		})

		Convey("Then totals and filters work over the merged view", func() {
			So(reg.TotalKLP(), ShouldEqual, 900)
			So(len(reg.ByVerifier("Zoink")), ShouldEqual, 1)
		})
	})

	Convey("Given no sources", t, func() {
		reg := registry.New()

		Convey("Then the registry is empty but usable", func() {
			So(reg.Len(), ShouldEqual, 0)
			So(reg.All(), ShouldBeEmpty)
			So(reg.TotalKLP(), ShouldEqual, 0)
		})
	})

	Convey("Given a negative point value", t, func() {
		reg := registry.New([]model.Entry{{Name: "Broken", KLP: -40}})

		Convey("Then it is normalized to zero", func() {
			e, _ := reg.Lookup("Broken")
			So(e.KLP, ShouldEqual, 0)
		})
	})

	Convey("Given records without a name", t, func() {
		reg := registry.New([]model.Entry{
			{ID: "1", Verifier: "A", KLP: 100},
			{ID: "2", Name: "Acheron", Verifier: "C", KLP: 300},
			{ID: "3", Name: "  ", Verifier: "B", KLP: 200},
		})

		Convey("Then they are dropped and counted", func() {
			So(reg.Len(), ShouldEqual, 1)
			So(reg.Dropped(), ShouldEqual, 2)
			So(reg.ByVerifier("A"), ShouldBeEmpty)
			So(reg.ByVerifier("B"), ShouldBeEmpty)
			_, ok := reg.Lookup("")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRegistry_ByCreator(t *testing.T) {
	Convey("Given entries with shared creators", t, func() {
		reg := registry.New([]model.Entry{
			{Name: "A", Creator: "Riot, Knobbelboy"},
			{Name: "B", Creator: "Knobbelboy"},
			{Name: "C", Creator: "Riotous"},
		})

		Convey("Then creator matching is by whole name", func() {
			So(len(reg.ByCreator("Knobbelboy")), ShouldEqual, 2)
			So(len(reg.ByCreator("Riot")), ShouldEqual, 1)
		})
	})
}

func TestParseEntries(t *testing.T) {
	Convey("Given a heterogeneous entry document", t, func() {
		doc := []byte(`[
			{"id": 12, "name": "Tidal Wave", "creator": "OniLink", "verifier": " Zoink ", "klp": 500},
			{"id": "c-3", "name": "Acheron", "verifier": "Zoink", "klp": "312.5"},
			{"name": "No Points", "verifier": "Trusta", "klp": "lots"},
			{"name": "Negative", "klp": -10},
			{"name": "Null", "klp": null, "creator": null},
			"garbage"
		]`)
		entries := registry.ParseEntries(doc)

		Convey("Then every element becomes an entry", func() {
			So(len(entries), ShouldEqual, 6)
		})

		Convey("Then ids accept numbers and strings", func() {
			So(entries[0].ID, ShouldEqual, "12")
			So(entries[1].ID, ShouldEqual, "c-3")
		})

		Convey("Then missing ids default to the 1-based position", func() {
			So(entries[2].ID, ShouldEqual, "3")
			So(entries[5].ID, ShouldEqual, "6")
		})

		Convey("Then verifiers are trimmed", func() {
			So(entries[0].Verifier, ShouldEqual, "Zoink")
		})

		Convey("Then klp is coerced or defaulted", func() {
			So(entries[0].KLP, ShouldEqual, 500)
			So(entries[1].KLP, ShouldEqual, 312.5)
			So(entries[2].KLP, ShouldEqual, 0)
			So(entries[3].KLP, ShouldEqual, 0)
			So(entries[4].KLP, ShouldEqual, 0)
		})

		Convey("Then missing text fields are empty", func() {
			So(entries[1].Creator, ShouldEqual, "")
			So(entries[4].Creator, ShouldEqual, "")
			So(entries[5].Name, ShouldEqual, "")
		})
	})

	Convey("Given documents that are not arrays", t, func() {
		So(registry.ParseEntries([]byte(`{"name":"x"}`)), ShouldBeEmpty)
		So(registry.ParseEntries(nil), ShouldBeEmpty)
		So(registry.ParseEntries([]byte(`not json`)), ShouldBeEmpty)
	})
}

func TestParseVictors(t *testing.T) {
	Convey("Given a victors document", t, func() {
		doc := []byte(`{
			"Doggie": ["Tidal Wave", "Acheron"],
			"Trusta": ["Acheron", 7, ""],
			"Broken": "Tidal Wave"
		}`)
		victors := registry.ParseVictors(doc)

		Convey("Then array values map to entry names", func() {
			So(victors["Doggie"], ShouldResemble, []string{"Tidal Wave", "Acheron"})
			So(victors["Trusta"], ShouldResemble, []string{"Acheron"})
		})

		Convey("Then non-array values are skipped", func() {
			_, ok := victors["Broken"]
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given an invalid victors document", t, func() {
		So(registry.ParseVictors([]byte(`[]`)), ShouldBeEmpty)
	})
}

func TestRankEntries(t *testing.T) {
	Convey("Given unordered entries with a KLP tie", t, func() {
		in := []model.Entry{
			{Name: "Low", KLP: 10},
			{Name: "Beta", KLP: 50},
			{Name: "Alpha", KLP: 50},
			{Name: "Top", KLP: 90},
		}
		ranked := registry.RankEntries(in)

		Convey("Then they are ordered by KLP then name", func() {
			So(ranked[0].Name, ShouldEqual, "Top")
			So(ranked[1].Name, ShouldEqual, "Alpha")
			So(ranked[2].Name, ShouldEqual, "Beta")
			So(ranked[3].Name, ShouldEqual, "Low")
			for i, r := range ranked {
				So(r.Rank, ShouldEqual, i+1)
			}
		})

		Convey("Then the input order is untouched", func() {
			So(in[0].Name, ShouldEqual, "Low")
		})
	})
}
