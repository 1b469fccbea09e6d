package tables

import (
	"reflect"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/tsawler/finscan/model"
)

// statementLine builds one row with a lowercase description, so it never
// matches a keyword, and cols figures with two decimals.
func statementLine(f *gofakeit.Faker, cols int) (string, model.Row) {
	var words []string
	for range f.Number(1, 4) {
		w := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) {
				return unicode.ToLower(r)
			}
			return -1
		}, f.Word())
		if w == "" {
			w = "item"
		}
		words = append(words, w)
	}

	row := model.Row{Description: strings.Join(words, " ")}
	parts := []string{row.Description}
	for range cols {
		v := float64(f.Number(0, 10_000_000)) / 100
		if f.Bool() {
			v = -v
		}
		row.Values = append(row.Values, v)
		parts = append(parts, strconv.FormatFloat(v, 'f', 2, 64))
	}
	return strings.Join(parts, "    "), row
}

func TestKeywordDetector_GeneratedStatements(t *testing.T) {
	d := NewKeywordDetector()

	for seed := int64(1); seed <= 25; seed++ {
		f := gofakeit.New(seed)
		n := f.Number(1, 30)
		cols := f.Number(1, 3)

		lines := []string{"Balance Sheet"}
		want := model.Table{Name: "Balance Sheet", Page: int(seed)}
		for range n {
			line, row := statementLine(f, cols)
			lines = append(lines, line)
			want.Data = append(want.Data, row)
		}
		text := strings.Join(lines, "\n")

		got := d.Detect(text, int(seed))
		if len(got) != 1 {
			t.Fatalf("seed %d: got %d tables, want 1", seed, len(got))
		}
		if !reflect.DeepEqual(got[0], want) {
			t.Errorf("seed %d: Detect() = %+v, want %+v", seed, got[0], want)
		}

		if again := d.Detect(text, int(seed)); !reflect.DeepEqual(again, got) {
			t.Errorf("seed %d: second Detect() differs", seed)
		}
	}
}

func TestParseRow_GeneratedLines(t *testing.T) {
	f := gofakeit.New(42)
	for range 200 {
		line, want := statementLine(f, f.Number(1, 4))
		got, ok := ParseRow(line)
		if !ok {
			t.Fatalf("ParseRow(%q) rejected a generated row", line)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ParseRow(%q) = %+v, want %+v", line, got, want)
		}
	}
}
