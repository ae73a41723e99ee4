package sample

import (
	"strings"
	"time"

	"office-pump/internal/catalog"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// Values produces column values from a seeded faker, so runs are repeatable.
type Values struct {
	f *gofakeit.Faker
}

// NewValues returns a generator; seed 0 picks a random seed.
func NewValues(seed int64) *Values {
	return &Values{f: gofakeit.New(seed)}
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}

// Value generates a value for col. The column's meaning picks realistic text;
// otherwise the storage kind decides.
func (v *Values) Value(col catalog.Column) any {
	meaning := Meaning(col.Name)

	switch col.Type {
	case catalog.Text:
		return truncate(v.text(meaning), col.Size)
	case catalog.Memo:
		return v.f.Paragraph(2, 4, 12, "\n")
	case catalog.Boolean:
		// 0/1 binds on every driver, BIT and NUMBER(1) included
		if v.f.Bool() {
			return 1
		}
		return 0
	case catalog.Byte:
		return v.f.Number(0, 255)
	case catalog.Integer:
		return v.f.Number(1, 30000)
	case catalog.Long, catalog.BigInt:
		if strings.Contains(meaning, "year") {
			return 2000 + v.f.Number(0, 25)
		}
		return v.f.Number(1, 50000)
	case catalog.Single, catalog.Double:
		return v.f.Float64Range(0, 1)
	case catalog.Currency, catalog.Decimal:
		return decimal.NewFromFloat(v.f.Price(-5000, 25000)).Round(2)
	case catalog.Date:
		now := time.Now().UTC().Truncate(time.Second)
		return v.f.DateRange(now.AddDate(-1, 0, 0), now)
	case catalog.LongBinary, catalog.Binary, catalog.Attachment:
		n := col.Size
		if n <= 0 {
			n = v.f.Number(256, 2048)
		}
		return []byte(v.f.LetterN(uint(n)))
	default:
		return nil
	}
}

func (v *Values) text(meaning string) string {
	switch {
	case strings.Contains(meaning, "email"):
		return v.f.Email()
	case strings.Contains(meaning, "phone"):
		return v.f.Phone()
	case strings.Contains(meaning, "company"):
		return v.f.Company()
	case strings.Contains(meaning, "name"):
		return v.f.Name()
	case strings.Contains(meaning, "address"):
		return v.f.Street()
	case strings.Contains(meaning, "city"):
		return v.f.City()
	case strings.Contains(meaning, "country"):
		return v.f.Country()
	case strings.Contains(meaning, "currency"):
		return v.f.CurrencyShort()
	case strings.Contains(meaning, "account"), strings.Contains(meaning, "code"), strings.Contains(meaning, "number"):
		return v.f.Numerify("########")
	case strings.Contains(meaning, "status"):
		return v.f.RandomString([]string{"OPEN", "PAID", "VOID"})
	case strings.Contains(meaning, "yesno"), strings.Contains(meaning, "flag"):
		return v.f.RandomString([]string{"Y", "N"})
	default:
		return v.f.Sentence(6)
	}
}
