package registry

import (
	"strconv"
	"strings"

	"github.com/okian/kaizolist/internal/domain/model"
	"github.com/tidwall/gjson"
)

// ParseEntries reads a JSON array of entry records. It never fails: a
// document that is not an array yields no entries, and a malformed record
// becomes an entry with defaulted fields.
func ParseEntries(data []byte) []model.Entry {
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil
	}
	var out []model.Entry
	idx := 0
	doc.ForEach(func(_, v gjson.Result) bool {
		idx++
		out = append(out, parseEntry(v, idx))
		return true
	})
	return out
}

func parseEntry(v gjson.Result, idx int) model.Entry {
	e := model.Entry{ID: strconv.Itoa(idx)}
	if !v.IsObject() {
		return e
	}
	if id := v.Get("id"); id.Exists() && id.Type != gjson.Null && id.String() != "" {
		e.ID = id.String()
	}
	e.Name = text(v.Get("name"))
	e.Creator = text(v.Get("creator"))
	e.Verifier = strings.TrimSpace(text(v.Get("verifier")))
	e.KLP = model.NormalizeKLP(number(v.Get("klp")))
	return e
}

// text returns string and number values as text; anything else is empty.
func text(v gjson.Result) string {
	switch v.Type {
	case gjson.String, gjson.Number:
		return v.String()
	default:
		return ""
	}
}

// number accepts numbers and numeric strings; anything else is 0.
func number(v gjson.Result) float64 {
	switch v.Type {
	case gjson.Number:
		return v.Float()
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ParseVictors reads the player -> cleared entry names mapping. Players whose
// value is not an array and names that are not strings are skipped.
func ParseVictors(data []byte) map[string][]string {
	out := make(map[string][]string)
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return out
	}
	doc.ForEach(func(player, names gjson.Result) bool {
		if !names.IsArray() {
			return true
		}
		var list []string
		names.ForEach(func(_, n gjson.Result) bool {
			if n.Type == gjson.String && n.Str != "" {
				list = append(list, n.Str)
			}
			return true
		})
		out[player.String()] = list
		return true
	})
	return out
}
